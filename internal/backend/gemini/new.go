// Package gemini serves every backend capability from the Gemini API,
// rotating through API keys when one is rate limited.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
)

type Config struct {
	// APIKeys are tried in order; a comma separated list is accepted too.
	APIKeys []string
	// BaseURL overrides the public endpoint.
	BaseURL string
	Timeout time.Duration
}

type implProvider struct {
	clients []*genai.Client
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// New creates a Provider with one Gemini client per API key.
func New(ctx context.Context, cfg Config, log logger.Logger) (backend.Provider, error) {
	keys := SplitKeys(cfg.APIKeys...)
	if len(keys) == 0 {
		return nil, errors.New("no Gemini API key configured")
	}

	p := &implProvider{logger: log}
	for _, key := range keys {
		cc := &genai.ClientConfig{
			APIKey:     key,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
		}
		if cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
		}
		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}
		p.clients = append(p.clients, client)
	}
	return p, nil
}

// SplitKeys flattens comma separated key lists and drops blanks.
func SplitKeys(values ...string) []string {
	var keys []string
	for _, v := range values {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return keys
}
