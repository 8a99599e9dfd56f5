// Package openai talks to any OpenAI-compatible server: Ollama for chat and
// vision, a faster-whisper server for speech.
package openai

import (
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
)

// Config points the provider at its servers. Both URLs may be given with or
// without the trailing /v1.
type Config struct {
	BaseURL        string
	WhisperBaseURL string
	APIKey         string
	Timeout        time.Duration
}

type implProvider struct {
	chat    *goopenai.Client
	whisper *goopenai.Client
	logger  logger.Logger
}

// New creates a Provider backed by go-openai clients.
func New(cfg Config, log logger.Logger) backend.Provider {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	whisperURL := cfg.WhisperBaseURL
	if whisperURL == "" {
		whisperURL = cfg.BaseURL
	}

	return &implProvider{
		chat:    newClient(cfg.BaseURL, cfg.APIKey, httpClient),
		whisper: newClient(whisperURL, cfg.APIKey, httpClient),
		logger:  log,
	}
}

func newClient(baseURL, apiKey string, httpClient *http.Client) *goopenai.Client {
	c := goopenai.DefaultConfig(apiKey)
	c.BaseURL = apiURL(baseURL)
	c.HTTPClient = httpClient
	return goopenai.NewClientWithConfig(c)
}

// apiURL appends the /v1 prefix that OpenAI-compatible routes live under.
func apiURL(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, "/v1") {
		return base
	}
	return base + "/v1"
}
