package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindHierarchy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"unavailable is model", New(ErrModelUnavailable, "model %q missing", "x"), ErrModel, true},
		{"unavailable is root", New(ErrModelUnavailable, "x"), ErrAIUtility, true},
		{"transcription failure is transcription", New(ErrTranscriptionFailure, "x"), ErrTranscription, true},
		{"transcription failure is model", New(ErrTranscriptionFailure, "x"), ErrModel, true},
		{"json extraction is validation", New(ErrJSONExtraction, "x"), ErrValidation, true},
		{"missing placeholder is configuration", New(ErrMissingPlaceholder, "x"), ErrConfiguration, true},
		{"file format is not validation", New(ErrFileFormat, "x"), ErrValidation, false},
		{"validation is not model", New(ErrValidation, "x"), ErrModel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	inner := Wrap(ErrMissingKeys, cause, "receipt")
	err := Wrap(ErrModel, inner, "failed to parse receipt")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("outer model error should still expose the inner validation kind")
	}
	want := "failed to parse receipt: receipt: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorWithoutMessage(t *testing.T) {
	err := &Error{Kind: ErrStreaming}
	if err.Error() != "streaming failed" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{New(ErrTranscriptionFailure, "x"), ErrTranscription},
		{New(ErrVisionAnalysis, "x"), ErrModel},
		{New(ErrUnsupportedFormat, "x"), ErrValidation},
		{fmt.Errorf("ctx: %w", New(ErrFileFormat, "x")), ErrFileFormat},
		{errors.New("plain"), nil},
	}

	for _, tt := range tests {
		if got := Category(tt.err); got != tt.want {
			t.Errorf("Category(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
