package pipeline

import (
	"github.com/nguyentantai21042004/genai-workshop/internal/summarizer"
	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
)

// Placeholders stored in results when a non-fatal step fails.
const (
	SummaryFailed     = "Summary generation failed."
	ActionItemsFailed = "Action item extraction failed."
	CombineFailed     = "Failed to combine sources."
)

type AudioOptions struct {
	Summarize      bool
	Style          summarizer.Style
	ExtractActions bool
	Transcribe     transcribe.Options
}

type AudioResult struct {
	Transcript     *transcribe.Result `json:"transcript"`
	TranscriptText string             `json:"transcript_text"`
	Summary        string             `json:"summary,omitempty"`
	ActionItems    string             `json:"action_items,omitempty"`
}

type Reasoning string

const (
	ReasoningDescription Reasoning = "description"
	ReasoningDiagram     Reasoning = "diagram"
	ReasoningQA          Reasoning = "qa"
)

// VisionResult holds the description plus the output of the selected
// reasoning branch. ReasoningError is set when that branch failed.
type VisionResult struct {
	Description    string `json:"description"`
	Reasoning      string `json:"reasoning,omitempty"`
	Explanation    string `json:"explanation,omitempty"`
	Answer         string `json:"answer,omitempty"`
	ReasoningError string `json:"reasoning_error,omitempty"`
}

type DiagramDetail string

const (
	DiagramBasic     DiagramDetail = "basic"
	DiagramDetailed  DiagramDetail = "detailed"
	DiagramTechnical DiagramDetail = "technical"
)

type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type WhiteboardResult struct {
	Transcript            string `json:"transcript"`
	WhiteboardDescription string `json:"whiteboard_description"`
	CombinedNotes         string `json:"combined_notes"`
	Summary               string `json:"summary,omitempty"`
	Error                 string `json:"error,omitempty"`
}
