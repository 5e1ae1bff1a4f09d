package anthropicai

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ecooyster/prediction-service/internal/domain"
	"github.com/ecooyster/prediction-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ domain.Advisor = (*Client)(nil)

func testClient(baseURL string) *Client {
	return &Client{
		client: anthropic.NewClient(
			option.WithAPIKey("test-key"),
			option.WithBaseURL(baseURL),
			option.WithMaxRetries(0),
		),
		model:       "claude-sonnet-4-5-20250929",
		temperature: 0.3,
		maxTokens:   500,
		timeout:     5 * time.Second,
		metrics:     observability.NewMetricsForTesting(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_Advise_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_test",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5-20250929",
			"content": [{"type": "text", "text": "**A**\n• do x"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 8}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.Advise(context.Background(), domain.Prompt{System: "be brief", User: "advise"})
	require.NoError(t, err)
	assert.Equal(t, "**A**\n• do x", got)
}

func TestClient_Advise_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Advise(context.Background(), domain.Prompt{User: "advise"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic API error")
}

func TestClient_Advise_NoTextContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_test",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5-20250929",
			"content": [],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 0}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Advise(context.Background(), domain.Prompt{User: "advise"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}
