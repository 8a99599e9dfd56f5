package llm

import (
	"context"
	"errors"
	"io"
	"iter"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
)

func (g *implGenerator) Generate(ctx context.Context, req Request) (string, error) {
	model, err := g.preflight(ctx, req.Model)
	if err != nil {
		return "", err
	}

	text, err := g.backend.Chat(ctx, backend.ChatRequest{
		Model:  model,
		System: req.System,
		Prompt: req.Prompt,
	})
	if err != nil {
		g.logger.Error(ctx, "Failed to generate text: %v", err)
		return "", apperr.Wrap(apperr.ErrModel, err, "text generation failed")
	}
	return text, nil
}

func (g *implGenerator) Stream(ctx context.Context, req Request) (iter.Seq2[string, error], error) {
	model, err := g.preflight(ctx, req.Model)
	if err != nil {
		return nil, err
	}

	stream, err := g.backend.ChatStream(ctx, backend.ChatRequest{
		Model:  model,
		System: req.System,
		Prompt: req.Prompt,
	})
	if err != nil {
		g.logger.Error(ctx, "Failed to open stream: %v", err)
		return nil, apperr.Wrap(apperr.ErrModel, err, "text generation failed")
	}

	var used bool
	return func(yield func(string, error) bool) {
		if used {
			return
		}
		used = true
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				g.logger.Error(ctx, "Error streaming response: %v", err)
				yield("", apperr.Wrap(apperr.ErrStreaming, err, "streaming failed"))
				return
			}
			if chunk == "" {
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}, nil
}

func (g *implGenerator) CheckConnection(ctx context.Context) bool {
	if _, err := g.lister.ListModels(ctx); err != nil {
		g.logger.Error(ctx, "Failed to connect to model backend: %v", err)
		return false
	}
	return true
}

func (g *implGenerator) CheckModelAvailable(ctx context.Context, model string) bool {
	if model == "" {
		model = g.model
	}

	g.mu.Lock()
	known := g.available[model]
	g.mu.Unlock()
	if known {
		return true
	}

	models, err := g.lister.ListModels(ctx)
	if err != nil {
		g.logger.Error(ctx, "Failed to check model availability: %v", err)
		return false
	}
	if !backend.HasModel(models, model) {
		return false
	}

	g.mu.Lock()
	g.available[model] = true
	g.mu.Unlock()
	return true
}

func (g *implGenerator) preflight(ctx context.Context, model string) (string, error) {
	if model == "" {
		model = g.model
	}
	if !g.CheckModelAvailable(ctx, model) {
		return "", apperr.New(apperr.ErrModelUnavailable,
			"model %q is not available. Install it with: ollama pull %s", model, model)
	}
	return model, nil
}
