package together

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ecooyster/prediction-service/internal/config"
	"github.com/ecooyster/prediction-service/internal/domain"
	"github.com/ecooyster/prediction-service/internal/observability"
)

const providerName = "together"

// Client implements domain.Advisor using the Together AI chat completions API.
// The API is OpenAI-compatible, so the wire types below follow that shape.
type Client struct {
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	baseURL     string
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates a Together AI completion client.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey:      cfg.LLMAPIKey,
		model:       cfg.LLMModel,
		temperature: cfg.LLMTemperature,
		maxTokens:   cfg.LLMMaxTokens,
		httpClient: &http.Client{
			Timeout: cfg.LLMTimeout,
		},
		baseURL: "https://api.together.xyz/v1/chat/completions",
		metrics: metrics,
		logger:  logger,
	}
}

// Advise submits the prompt as a chat completion and returns the reply text.
func (c *Client) Advise(ctx context.Context, prompt domain.Prompt) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.AdvisorDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.AdvisorRequests.WithLabelValues(providerName, "error").Inc()
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.metrics.AdvisorRequests.WithLabelValues(providerName, "error").Inc()
		return "", fmt.Errorf("together API error: status %d: %s", resp.StatusCode, respBody)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		c.metrics.AdvisorRequests.WithLabelValues(providerName, "error").Inc()
		return "", fmt.Errorf("decode completion response: %w", err)
	}

	if completion.Error != nil {
		c.metrics.AdvisorRequests.WithLabelValues(providerName, "error").Inc()
		return "", fmt.Errorf("together API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		c.metrics.AdvisorRequests.WithLabelValues(providerName, "error").Inc()
		return "", errors.New("no choices in completion response")
	}

	c.metrics.AdvisorRequests.WithLabelValues(providerName, "success").Inc()
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	c.logger.Debug("completion received", "model", c.model, "chars", len(text))
	return text, nil
}

// Together AI wire types (OpenAI chat completions shape).

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
