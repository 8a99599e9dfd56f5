package summarizer

import (
	"context"
	"slices"
	"strings"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/chunker"
	"github.com/nguyentantai21042004/genai-workshop/internal/formatter"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/prompts"
)

const summaryTitle = "Summary"

func (s *implSummarizer) Summarize(ctx context.Context, transcript string, opts Options) (string, error) {
	kind, err := promptFor(opts.Style)
	if err != nil {
		return "", err
	}

	req, err := llm.PromptRequest(kind, map[string]string{"transcript": transcript})
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "Generating %s summary", styleOrDefault(opts.Style))
	summary, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "Summarization failed: %v", err)
		return "", apperr.Wrap(apperr.ErrModel, err, "failed to summarize transcript")
	}

	if opts.Markdown {
		return formatter.FormatMarkdownSummary(summary, summaryTitle), nil
	}
	return summary, nil
}

func (s *implSummarizer) SummarizeLong(ctx context.Context, transcript string, opts Options) (string, error) {
	if _, err := promptFor(opts.Style); err != nil {
		return "", err
	}

	chunks := slices.Collect(chunker.ByTokens(transcript, s.maxTokens))
	if len(chunks) <= 1 {
		return s.Summarize(ctx, transcript, opts)
	}

	s.logger.Info(ctx, "Summarizing %d chunks", len(chunks))

	partial := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		s.logger.Info(ctx, "[%d/%d] Summarizing chunk", i+1, len(chunks))
		summary, err := s.Summarize(ctx, chunk, Options{Style: opts.Style})
		if err != nil {
			return "", err
		}
		partial = append(partial, summary)
	}

	return s.Summarize(ctx, strings.Join(partial, "\n\n"), opts)
}

func (s *implSummarizer) ExtractActionItems(ctx context.Context, transcript string) (string, error) {
	req, err := llm.PromptRequest(prompts.ActionItems, map[string]string{"transcript": transcript})
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "Extracting action items")
	items, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "Action item extraction failed: %v", err)
		return "", apperr.Wrap(apperr.ErrModel, err, "failed to extract action items")
	}
	return items, nil
}

func promptFor(style Style) (prompts.Kind, error) {
	switch styleOrDefault(style) {
	case StyleConcise:
		return prompts.Summary, nil
	case StyleDetailed:
		return prompts.DetailedSummary, nil
	}
	return "", apperr.New(apperr.ErrValidation, "unknown summary style %q (want concise or detailed)", style)
}

func styleOrDefault(style Style) Style {
	if style == "" {
		return StyleConcise
	}
	return style
}
