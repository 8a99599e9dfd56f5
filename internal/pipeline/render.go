package pipeline

import (
	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/formatter"
)

// checkStructuredFormat rejects an output format before any model call.
func checkStructuredFormat(format string) error {
	if format != formatter.FormatJSON && format != formatter.FormatMarkdown {
		return apperr.New(apperr.ErrUnsupportedFormat, "unsupported format: %s (want json or markdown)", format)
	}
	return nil
}

// asObject requires extracted JSON to be an object.
func asObject(v any) (*formatter.Object, error) {
	obj, ok := v.(*formatter.Object)
	if !ok {
		return nil, apperr.New(apperr.ErrValidation, "expected a JSON object, got %T", v)
	}
	return obj, nil
}
