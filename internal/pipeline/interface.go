package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/genai-workshop/internal/formatter"
	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
)

// Audio transcribes a recording and optionally summarizes it.
type Audio interface {
	// Process fails only when transcription fails. Summary and action item
	// failures are replaced by placeholder text.
	Process(ctx context.Context, audioPath string, opts AudioOptions) (*AudioResult, error)
	TranscribeOnly(ctx context.Context, audioPath string, opts transcribe.Options) (*transcribe.Result, error)
}

// MeetingMinutes turns a meeting recording into structured minutes.
type MeetingMinutes interface {
	Generate(ctx context.Context, audioPath string) (*formatter.Object, error)
	GenerateFormatted(ctx context.Context, audioPath, format string) (string, error)
}

// Vision describes an image and reasons about the description.
type Vision interface {
	Process(ctx context.Context, imagePath string, reasoning Reasoning, question string) (*VisionResult, error)
	DescribeOnly(ctx context.Context, imagePath string) (string, error)
}

// Receipt reads a receipt photo into structured data.
type Receipt interface {
	Parse(ctx context.Context, imagePath string) (*formatter.Object, error)
	ParseFormatted(ctx context.Context, imagePath, format string) (string, error)
}

// Diagram explains diagrams, flowcharts and code screenshots.
type Diagram interface {
	Explain(ctx context.Context, imagePath string, detail DiagramDetail) (string, error)
}

// ScreenQA answers questions about screenshots.
type ScreenQA interface {
	// Answer fails when the model returns no answer.
	Answer(ctx context.Context, imagePath, question string) (string, error)
	DescribeScreen(ctx context.Context, imagePath string) (string, error)
	// AnswerAll describes the screen once and answers every question against
	// that description. A failed question does not stop the others.
	AnswerAll(ctx context.Context, imagePath string, questions []string) ([]QA, error)
}

// Multimodal combines a meeting recording with a whiteboard photo.
type Multimodal interface {
	ProcessWhiteboardMeeting(ctx context.Context, audioPath, imagePath string) (*WhiteboardResult, error)
}
