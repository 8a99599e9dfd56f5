package transcribe

import (
	"sync"

	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
	"github.com/nguyentantai21042004/genai-workshop/internal/validator"
)

type implTranscriber struct {
	stt       backend.SpeechToText
	validator validator.Validator
	model     string
	logger    logger.Logger

	mu     sync.Mutex
	loaded bool
}

// New creates a Transcriber that loads model on stt the first time it is used.
func New(stt backend.SpeechToText, v validator.Validator, model string, log logger.Logger) Transcriber {
	return &implTranscriber{
		stt:       stt,
		validator: v,
		model:     model,
		logger:    log,
	}
}
