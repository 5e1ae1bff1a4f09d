package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ecooyster/prediction-service/internal/domain"
)

// Requester turns a prediction into recommendation text. It fails soft: every
// path returns a string, so a provider outage degrades the response instead of
// failing it. Prediction is the primary value; recommendations are best-effort.
type Requester struct {
	advisor   domain.Advisor
	sanitizer *domain.Sanitizer
	logger    *slog.Logger
}

// New creates a Requester. A nil advisor is allowed and yields the
// provider-disabled error text on every call.
func New(advisor domain.Advisor, sanitizer *domain.Sanitizer, logger *slog.Logger) *Requester {
	return &Requester{
		advisor:   advisor,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// Recommendations builds the prompt, asks the advisor, and sanitizes the reply.
func (r *Requester) Recommendations(ctx context.Context, in domain.PredictionInput, estimate float64) string {
	if r.advisor == nil {
		return errorText(fmt.Errorf("no language-model provider is configured"))
	}

	prompt := BuildPrompt(in, estimate)

	reply, err := r.advisor.Advise(ctx, prompt)
	if err != nil {
		r.logger.Error("recommendation request failed", "error", err)
		return errorText(err)
	}

	return r.sanitizer.Sanitize(strings.TrimSpace(reply))
}

func errorText(err error) string {
	return fmt.Sprintf("Error generating recommendations: %s", err)
}
