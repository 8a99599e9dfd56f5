package vision

import (
	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
	"github.com/nguyentantai21042004/genai-workshop/internal/validator"
)

type implAnalyzer struct {
	describer backend.ImageDescriber
	validator validator.Validator
	model     string
	logger    logger.Logger
}

// New creates an Analyzer that sends images to model.
func New(describer backend.ImageDescriber, v validator.Validator, model string, log logger.Logger) Analyzer {
	return &implAnalyzer{
		describer: describer,
		validator: v,
		model:     model,
		logger:    log,
	}
}

type implOCR struct {
	analyzer  Analyzer
	generator llm.Generator
	logger    logger.Logger
}

// NewOCR creates an OCR extractor. generator may be nil, in which case text
// is never cleaned up and structured extraction is unavailable.
func NewOCR(analyzer Analyzer, generator llm.Generator, log logger.Logger) OCR {
	return &implOCR{
		analyzer:  analyzer,
		generator: generator,
		logger:    log,
	}
}
