package anthropicai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ecooyster/prediction-service/internal/config"
	"github.com/ecooyster/prediction-service/internal/domain"
	"github.com/ecooyster/prediction-service/internal/observability"
)

const providerName = "anthropic"

// Client implements domain.Advisor using the Anthropic Messages API.
type Client struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates an Anthropic completion client.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		client:      anthropic.NewClient(option.WithAPIKey(cfg.LLMAPIKey)),
		model:       cfg.LLMModel,
		temperature: cfg.LLMTemperature,
		maxTokens:   cfg.LLMMaxTokens,
		timeout:     cfg.LLMTimeout,
		metrics:     metrics,
		logger:      logger,
	}
}

// Advise submits the prompt as a messages request and returns the reply text.
func (c *Client) Advise(ctx context.Context, prompt domain.Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(c.maxTokens),
		Temperature: anthropic.Float(c.temperature),
		System: []anthropic.TextBlockParam{
			{Text: prompt.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
	})
	c.metrics.AdvisorDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.AdvisorRequests.WithLabelValues(providerName, "error").Inc()
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			c.metrics.AdvisorRequests.WithLabelValues(providerName, "success").Inc()
			c.logger.Debug("completion received", "model", c.model, "chars", len(block.Text),
				"tokens_in", message.Usage.InputTokens, "tokens_out", message.Usage.OutputTokens)
			return block.Text, nil
		}
	}

	c.metrics.AdvisorRequests.WithLabelValues(providerName, "error").Inc()
	return "", errors.New("no text content in completion response")
}
