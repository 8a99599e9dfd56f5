package llm

import (
	"context"
	"iter"
)

// Generator sends prompts to a chat model.
type Generator interface {
	// Generate returns the complete response.
	Generate(ctx context.Context, req Request) (string, error)
	// Stream returns the response as it is produced. The sequence is single
	// use and must be ranged over to release the underlying stream. A broken
	// stream ends with a non-nil error.
	Stream(ctx context.Context, req Request) (iter.Seq2[string, error], error)
	// CheckConnection reports whether the backend answers at all.
	CheckConnection(ctx context.Context) bool
	// CheckModelAvailable reports whether model can be served.
	CheckModelAvailable(ctx context.Context, model string) bool
}

// Request is one prompt. Empty Model means the client default.
type Request struct {
	Prompt string
	System string
	Model  string
}
