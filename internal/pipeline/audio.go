package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/chunker"
	"github.com/nguyentantai21042004/genai-workshop/internal/step"
	"github.com/nguyentantai21042004/genai-workshop/internal/summarizer"
	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
)

func (a *implAudio) Process(ctx context.Context, audioPath string, opts AudioOptions) (*AudioResult, error) {
	a.logger.Info(ctx, "Processing audio: %s", audioPath)

	transcript, err := a.transcriber.Transcribe(ctx, audioPath, opts.Transcribe)
	if err != nil {
		a.logger.Error(ctx, "Transcription failed: %v", err)
		return nil, apperr.Wrap(apperr.ErrTranscription, err, "failed to transcribe audio")
	}
	a.logWindows(ctx, audioPath)

	text := transcript.Text()
	result := &AudioResult{
		Transcript:     transcript,
		TranscriptText: text,
	}

	if opts.Summarize {
		summary := step.Run(ctx, a.logger, "Summarization", SummaryFailed, func(ctx context.Context) (string, error) {
			return a.summarizer.SummarizeLong(ctx, text, summarizer.Options{Style: opts.Style, Markdown: true})
		})
		result.Summary = summary.Value
	}

	if opts.ExtractActions {
		items := step.Run(ctx, a.logger, "Action item extraction", ActionItemsFailed, func(ctx context.Context) (string, error) {
			return a.summarizer.ExtractActionItems(ctx, text)
		})
		result.ActionItems = items.Value
	}

	return result, nil
}

func (a *implAudio) TranscribeOnly(ctx context.Context, audioPath string, opts transcribe.Options) (*transcribe.Result, error) {
	return a.transcriber.Transcribe(ctx, audioPath, opts)
}

func (a *implAudio) logWindows(ctx context.Context, audioPath string) {
	windows, err := chunker.AudioWindows(audioPath, a.chunkSeconds)
	if err != nil {
		a.logger.Debug(ctx, "Could not measure %s: %v", audioPath, err)
		return
	}
	a.logger.Debug(ctx, "Audio spans %d window(s) of %ds", len(windows), a.chunkSeconds)
}
