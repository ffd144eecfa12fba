package ports

import (
	"context"

	"github.com/zhairen/AItaluo/internal/domain"
)

// Generator produces a text completion from a single, fixed model.
type Generator interface {
	// Generate returns the completion text for prompt. An empty string with a
	// nil error means the model answered successfully but produced no usable
	// text; callers decide how to present that.
	Generate(ctx context.Context, prompt string) (string, error)

	// Model names the underlying model, for logs and metrics.
	Model() string
}

// Reader is the reading-request capability the session depends on. The result
// is always a displayable string; failures are absorbed by the implementation.
type Reader interface {
	RequestReading(ctx context.Context, question string, cards []domain.Card) string
}
