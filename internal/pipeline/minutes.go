package pipeline

import (
	"context"
	"unicode/utf8"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/formatter"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/prompts"
	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
)

func (m *implMeetingMinutes) Generate(ctx context.Context, audioPath string) (*formatter.Object, error) {
	m.logger.Info(ctx, "Generating meeting minutes from: %s", audioPath)

	transcript, err := m.audio.TranscribeOnly(ctx, audioPath, transcribe.Options{})
	if err != nil {
		return nil, err
	}
	text := transcript.Text()

	req, err := llm.PromptRequest(prompts.MeetingMinutes, map[string]string{"transcript": text})
	if err != nil {
		return nil, err
	}

	minutes, err := m.structured(ctx, req)
	if err != nil {
		m.logger.Error(ctx, "Meeting minutes generation failed: %v", err)
		return nil, apperr.Wrap(apperr.ErrModel, err, "failed to generate meeting minutes")
	}

	metadata := formatter.NewObject()
	metadata.Set("source_file", audioPath)
	metadata.Set("transcript_length", utf8.RuneCountInString(text))
	metadata.Set("segments_count", len(transcript.Segments))
	minutes.Set("metadata", metadata)

	return minutes, nil
}

func (m *implMeetingMinutes) GenerateFormatted(ctx context.Context, audioPath, format string) (string, error) {
	if err := checkStructuredFormat(format); err != nil {
		return "", err
	}
	minutes, err := m.Generate(ctx, audioPath)
	if err != nil {
		return "", err
	}
	return formatter.FormatStructuredOutput(minutes, format)
}

func (m *implMeetingMinutes) structured(ctx context.Context, req llm.Request) (*formatter.Object, error) {
	m.logger.Info(ctx, "Generating structured meeting minutes")
	resp, err := m.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := formatter.ExtractJSON(resp)
	if err != nil {
		return nil, err
	}
	return asObject(data)
}
