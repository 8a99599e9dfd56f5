package llm

import (
	"sync"

	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
)

type implGenerator struct {
	backend backend.TextGenerator
	lister  backend.ModelLister
	model   string
	logger  logger.Logger

	mu        sync.Mutex
	available map[string]bool
}

// New creates a Generator that uses model unless a request names another.
func New(gen backend.TextGenerator, lister backend.ModelLister, model string, log logger.Logger) Generator {
	return &implGenerator{
		backend:   gen,
		lister:    lister,
		model:     model,
		logger:    log,
		available: map[string]bool{},
	}
}
