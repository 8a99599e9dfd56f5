package summarizer

import "context"

// Summarizer turns transcripts into summaries and action item lists.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string, opts Options) (string, error)
	// SummarizeLong summarizes chunk by chunk when the transcript exceeds the
	// token budget, then summarizes the joined chunk summaries.
	SummarizeLong(ctx context.Context, transcript string, opts Options) (string, error)
	ExtractActionItems(ctx context.Context, transcript string) (string, error)
}

type Style string

const (
	StyleConcise  Style = "concise"
	StyleDetailed Style = "detailed"
)

// Options selects the summary prompt and whether the result is wrapped in
// a markdown heading.
type Options struct {
	Style    Style
	Markdown bool
}
