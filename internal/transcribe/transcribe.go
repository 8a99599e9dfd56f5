package transcribe

import (
	"context"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
)

// Transcribe validates audioPath, makes sure the model is loaded and sends
// the file to the speech backend. No partial transcript is ever returned.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string, opts Options) (*Result, error) {
	task := opts.Task
	if task == "" {
		task = TaskTranscribe
	}
	if task != TaskTranscribe && task != TaskTranslate {
		return nil, apperr.New(apperr.ErrValidation, "unknown transcription task %q (want %s or %s)", task, TaskTranscribe, TaskTranslate)
	}

	if err := t.validator.ValidateAudio(ctx, audioPath); err != nil {
		return nil, err
	}

	if err := t.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	t.logger.Info(ctx, "Transcribing: %s", audioPath)

	raw, err := t.stt.Transcribe(ctx, backend.TranscriptionRequest{
		Model:     t.model,
		AudioPath: audioPath,
		Language:  opts.Language,
		Translate: task == TaskTranslate,
	})
	if err != nil {
		t.logger.Error(ctx, "Transcription failed: %v", err)
		return nil, apperr.Wrap(apperr.ErrTranscriptionFailure, err, "failed to transcribe audio")
	}
	if raw == nil {
		return nil, apperr.New(apperr.ErrTranscriptionFailure, "failed to transcribe audio: empty response from backend")
	}

	segments := make([]Segment, 0, len(raw.Segments))
	for _, s := range raw.Segments {
		segments = append(segments, NewSegment(s.Start, s.End, s.Text))
	}
	result := NewResult(segments, raw.Language)

	t.logger.Info(ctx, "Transcription complete: %d segments", len(segments))
	return result, nil
}

// ensureLoaded asks the backend to load the model once per client. Only a
// successful load is remembered.
func (t *implTranscriber) ensureLoaded(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.loaded {
		return nil
	}

	t.logger.Info(ctx, "Loading speech model: %s", t.model)
	if err := t.stt.LoadModel(ctx, t.model); err != nil {
		t.logger.Error(ctx, "Failed to load model: %v", err)
		return apperr.Wrap(apperr.ErrModelLoad, err, "failed to load speech model %q", t.model)
	}
	t.loaded = true
	return nil
}
