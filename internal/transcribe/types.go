package transcribe

import (
	"fmt"
	"strings"
)

const (
	TaskTranscribe = "transcribe"
	TaskTranslate  = "translate"
)

// Options tunes a single transcription. Empty Language means auto-detect;
// empty Task means TaskTranscribe.
type Options struct {
	Language string
	Task     string
}

// Segment is one timed piece of a transcript. Start is never negative and
// End is never before Start.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// NewSegment normalises backend values into a Segment.
func NewSegment(start, end float64, text string) Segment {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	return Segment{Start: start, End: end, Text: strings.TrimSpace(text)}
}

func (s Segment) Duration() float64 {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("[%.2fs - %.2fs] %s", s.Start, s.End, s.Text)
}

type Result struct {
	Segments []Segment `json:"segments"`
	FullText string    `json:"full_text"`
	Language string    `json:"language,omitempty"`
}

// NewResult builds a Result whose FullText is the space-joined segment text.
func NewResult(segments []Segment, language string) *Result {
	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}
	return &Result{
		Segments: segments,
		FullText: strings.Join(texts, " "),
		Language: language,
	}
}

func (r *Result) Text() string {
	return r.FullText
}

// TextWithTimestamps renders one "[start - end] text" line per segment.
func (r *Result) TextWithTimestamps() string {
	lines := make([]string, len(r.Segments))
	for i, s := range r.Segments {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}
