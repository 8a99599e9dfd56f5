package validator

import "context"

// Validator checks media inputs before any backend call.
type Validator interface {
	ValidateAudio(ctx context.Context, path string) error
	ValidateImage(ctx context.Context, path string) error
}
