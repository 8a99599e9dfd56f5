package main

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
	"github.com/nguyentantai21042004/genai-workshop/internal/backend/gemini"
	"github.com/nguyentantai21042004/genai-workshop/internal/backend/openai"
	"github.com/nguyentantai21042004/genai-workshop/internal/config"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
	"github.com/nguyentantai21042004/genai-workshop/internal/output"
	"github.com/nguyentantai21042004/genai-workshop/internal/pipeline"
	"github.com/nguyentantai21042004/genai-workshop/internal/summarizer"
	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
	"github.com/nguyentantai21042004/genai-workshop/internal/validator"
	"github.com/nguyentantai21042004/genai-workshop/internal/vision"
)

type services struct {
	provider  backend.Provider
	generator llm.Generator
	analyzer  vision.Analyzer
	ocr       vision.OCR
	writer    output.Writer

	audio      pipeline.Audio
	minutes    pipeline.MeetingMinutes
	vision     pipeline.Vision
	receipt    pipeline.Receipt
	diagram    pipeline.Diagram
	screenQA   pipeline.ScreenQA
	multimodal pipeline.Multimodal
}

// models is the model name used for each capability.
type models struct {
	llm     string
	vision  string
	whisper string
}

func modelsFor(cfg *config.Config) models {
	if cfg.Backend.Provider == config.ProviderGemini {
		return models{llm: cfg.Gemini.Model, vision: cfg.Gemini.Model, whisper: cfg.Gemini.Model}
	}
	return models{llm: cfg.Models.LLM, vision: cfg.Models.Vision, whisper: cfg.Models.Whisper}
}

func newProvider(ctx context.Context, cfg *config.Config, log logger.Logger) (backend.Provider, error) {
	switch cfg.Backend.Provider {
	case config.ProviderOpenAI:
		return openai.New(openai.Config{
			BaseURL:        cfg.Backend.BaseURL,
			WhisperBaseURL: cfg.Backend.WhisperBaseURL,
			Timeout:        cfg.Timeout(),
		}, log), nil
	case config.ProviderGemini:
		p, err := gemini.New(ctx, gemini.Config{
			APIKeys: gemini.SplitKeys(cfg.Gemini.APIKey),
			Timeout: cfg.Timeout(),
		}, log)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrConfiguration, err, "create gemini backend")
		}
		return p, nil
	}
	return nil, apperr.New(apperr.ErrConfiguration, "unknown backend provider %q", cfg.Backend.Provider)
}

func newServices(ctx context.Context, cfg *config.Config, stdout io.Writer, log logger.Logger) (*services, error) {
	provider, err := newProvider(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	m := modelsFor(cfg)
	log.Debug(ctx, "Using %s backend (llm=%s vision=%s speech=%s)", provider.Name(), m.llm, m.vision, m.whisper)

	v := validator.New(validator.Limits{
		MaxAudioSizeMB:   float64(cfg.Limits.MaxAudioFileSizeMB),
		MaxImageSizeMB:   float64(cfg.Limits.MaxImageFileSizeMB),
		MaxAudioDuration: cfg.MaxAudioDuration(),
	}, log)

	generator := llm.New(provider, provider, m.llm, log)
	analyzer := vision.New(provider, v, m.vision, log)
	ocr := vision.NewOCR(analyzer, generator, log)
	transcriber := transcribe.New(provider, v, m.whisper, log)
	sum := summarizer.New(generator, cfg.Processing.MaxTranscriptTokens, log)

	audio := pipeline.NewAudio(transcriber, sum, cfg.Processing.AudioChunkSeconds, log)
	vis := pipeline.NewVision(analyzer, generator, log)

	return &services{
		provider:   provider,
		generator:  generator,
		analyzer:   analyzer,
		ocr:        ocr,
		writer:     output.New(stdout, log),
		audio:      audio,
		minutes:    pipeline.NewMeetingMinutes(audio, generator, log),
		vision:     vis,
		receipt:    pipeline.NewReceipt(ocr, generator, log),
		diagram:    pipeline.NewDiagram(vis, generator, log),
		screenQA:   pipeline.NewScreenQA(vis, generator, log),
		multimodal: pipeline.NewMultimodal(audio, vis, generator, log),
	}, nil
}
