// Package llmtest provides a scripted llm.Generator for tests.
package llmtest

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
)

// Generator answers every request through Respond and records it.
type Generator struct {
	Respond func(req llm.Request) (string, error)

	mu       sync.Mutex
	requests []llm.Request
}

// Reply returns a Generator that always answers text.
func Reply(text string) *Generator {
	return &Generator{Respond: func(llm.Request) (string, error) { return text, nil }}
}

// Fail returns a Generator whose every call fails with err.
func Fail(err error) *Generator {
	return &Generator{Respond: func(llm.Request) (string, error) { return "", err }}
}

// Sequence answers with replies in order and repeats the last one.
func Sequence(replies ...string) *Generator {
	var mu sync.Mutex
	i := 0
	return &Generator{Respond: func(llm.Request) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		r := replies[min(i, len(replies)-1)]
		i++
		return r, nil
	}}
}

func (g *Generator) Generate(ctx context.Context, req llm.Request) (string, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()
	return g.Respond(req)
}

// Stream yields the reply word by word.
func (g *Generator) Stream(ctx context.Context, req llm.Request) (iter.Seq2[string, error], error) {
	text, err := g.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return func(yield func(string, error) bool) {
		for i, w := range strings.Fields(text) {
			if i > 0 {
				w = " " + w
			}
			if !yield(w, nil) {
				return
			}
		}
	}, nil
}

func (g *Generator) CheckConnection(ctx context.Context) bool { return true }

func (g *Generator) CheckModelAvailable(ctx context.Context, model string) bool { return true }

// Requests returns a copy of every request seen so far.
func (g *Generator) Requests() []llm.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]llm.Request(nil), g.requests...)
}

// ErrScripted is a convenient failure for Fail.
var ErrScripted = errors.New("scripted failure")
