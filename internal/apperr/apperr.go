// Package apperr defines the error taxonomy shared by every genai component.
//
// Every error produced by the orchestration core is an *Error whose Kind is one
// of the sentinels below. Specific failures wrap their category, so callers can
// match broadly (errors.Is(err, ErrModel)) or narrowly
// (errors.Is(err, ErrModelUnavailable)).
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// kind is a sentinel that optionally belongs to a parent category.
type kind struct {
	name   string
	parent error
}

func (k *kind) Error() string { return k.name }

func (k *kind) Unwrap() error { return k.parent }

func newKind(name string, parent error) error {
	return &kind{name: name, parent: parent}
}

// Root category.
var ErrAIUtility = newKind("ai utility error", nil)

// Categories.
var (
	ErrValidation    = newKind("validation error", ErrAIUtility)
	ErrFileFormat    = newKind("file format error", ErrAIUtility)
	ErrModel         = newKind("model error", ErrAIUtility)
	ErrTranscription = newKind("transcription error", ErrModel)
	ErrConfiguration = newKind("configuration error", ErrAIUtility)
)

// Specific failures.
var (
	ErrJSONExtraction       = newKind("json extraction failed", ErrValidation)
	ErrMissingKeys          = newKind("missing keys", ErrValidation)
	ErrUnsupportedFormat    = newKind("unsupported format", ErrValidation)
	ErrModelUnavailable     = newKind("model unavailable", ErrModel)
	ErrModelLoad            = newKind("model load failed", ErrModel)
	ErrStreaming            = newKind("streaming failed", ErrModel)
	ErrVisionAnalysis       = newKind("vision analysis failed", ErrModel)
	ErrTranscriptionFailure = newKind("transcription failed", ErrTranscription)
	ErrInvalidPromptKind    = newKind("invalid prompt kind", ErrConfiguration)
	ErrMissingPlaceholder   = newKind("missing placeholder", ErrConfiguration)
)

// Error carries a Kind plus an optional underlying cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else {
		b.WriteString(e.Kind.Error())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind chain and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New returns an *Error of the given kind with a formatted message.
func New(k error, format string, args ...any) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error of the given kind wrapping err.
// A nil err still yields an error so call sites can wrap unconditionally.
func Wrap(k error, err error, format string, args ...any) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Category returns the top-level category of err below ErrAIUtility,
// or nil if err is not part of the taxonomy.
func Category(err error) error {
	for _, c := range []error{ErrTranscription, ErrValidation, ErrFileFormat, ErrModel, ErrConfiguration} {
		if errors.Is(err, c) {
			return c
		}
	}
	return nil
}
