package backend

import "strings"

type ChatRequest struct {
	Model  string
	System string
	Prompt string
}

// ImageRequest carries raw image bytes; adapters encode them for the wire.
type ImageRequest struct {
	Model    string
	Prompt   string
	Image    []byte
	MIMEType string
}

type TranscriptionRequest struct {
	Model     string
	AudioPath string
	Language  string
	Translate bool
}

// Transcription is a backend's answer before any normalisation.
type Transcription struct {
	Language string
	Text     string
	Segments []Segment
}

type Segment struct {
	Start float64
	End   float64
	Text  string
}

// HasModel reports whether name is in models. A name without a tag also
// matches its ":latest" variant.
func HasModel(models []string, name string) bool {
	for _, m := range models {
		if m == name {
			return true
		}
		if !strings.Contains(name, ":") && m == name+":latest" {
			return true
		}
	}
	return false
}
