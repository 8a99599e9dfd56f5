// Package backend declares the capabilities the orchestration layer needs
// from a model-serving API. SDK-specific adapters live in subpackages.
package backend

import "context"

// ModelLister reports the models a backend can serve.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// TextGenerator runs chat-style text generation.
type TextGenerator interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
	ChatStream(ctx context.Context, req ChatRequest) (ChatStream, error)
}

// ChatStream yields generated fragments. Recv returns io.EOF once the
// stream has finished cleanly.
type ChatStream interface {
	Recv() (string, error)
	Close() error
}

// ImageDescriber answers a prompt about a single image.
type ImageDescriber interface {
	DescribeImage(ctx context.Context, req ImageRequest) (string, error)
}

// SpeechToText turns an audio file into timed segments.
type SpeechToText interface {
	LoadModel(ctx context.Context, model string) error
	Transcribe(ctx context.Context, req TranscriptionRequest) (*Transcription, error)
}

// Provider bundles every capability of one backend.
type Provider interface {
	ModelLister
	TextGenerator
	ImageDescriber
	SpeechToText
	Name() string
}
