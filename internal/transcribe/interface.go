package transcribe

import "context"

// Transcriber converts an audio file into a time-aligned transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts Options) (*Result, error)
}
