package output

import (
	"context"

	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
)

// Writer delivers command results to stdout or a file. The destination's
// extension picks the rendering: ".docx" goes through the Word renderer,
// anything else is written as plain text.
type Writer interface {
	// WriteDocument writes markdown, plain text or JSON content. title is
	// only used by the Word renderer.
	WriteDocument(ctx context.Context, dest, title, content string) error
	// WriteTranscript writes a transcript. A ".srt" destination gets
	// subtitles; otherwise timestamps selects the bracketed timestamp form.
	WriteTranscript(ctx context.Context, dest, title string, result *transcribe.Result, timestamps bool) error
}
