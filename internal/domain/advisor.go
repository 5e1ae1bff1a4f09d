package domain

import "context"

// Prompt is one chat-completion request: a system instruction plus the user text.
type Prompt struct {
	System string
	User   string
}

// Advisor generates free-text farming recommendations via a language model.
type Advisor interface {
	// Advise submits the prompt and returns the raw completion text.
	Advise(ctx context.Context, prompt Prompt) (string, error)
}
