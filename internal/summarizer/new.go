package summarizer

import (
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
)

type implSummarizer struct {
	generator llm.Generator
	maxTokens int
	logger    logger.Logger
}

// New creates a Summarizer that splits transcripts longer than maxTokens.
func New(generator llm.Generator, maxTokens int, log logger.Logger) Summarizer {
	return &implSummarizer{
		generator: generator,
		maxTokens: maxTokens,
		logger:    log,
	}
}
