package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/genai-workshop/internal/summarizer"
	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
	"github.com/nguyentantai21042004/genai-workshop/internal/vision"
)

type fakeTranscriber struct {
	result *transcribe.Result
	err    error
	calls  []transcribe.Options
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string, opts transcribe.Options) (*transcribe.Result, error) {
	f.calls = append(f.calls, opts)
	return f.result, f.err
}

type fakeSummarizer struct {
	summary    string
	summaryErr error
	items      string
	itemsErr   error
	opts       []summarizer.Options
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript string, opts summarizer.Options) (string, error) {
	return f.SummarizeLong(ctx, transcript, opts)
}

func (f *fakeSummarizer) SummarizeLong(ctx context.Context, transcript string, opts summarizer.Options) (string, error) {
	f.opts = append(f.opts, opts)
	return f.summary, f.summaryErr
}

func (f *fakeSummarizer) ExtractActionItems(ctx context.Context, transcript string) (string, error) {
	return f.items, f.itemsErr
}

type fakeAnalyzer struct {
	description string
	err         error
	details     []vision.Detail
}

func (f *fakeAnalyzer) Describe(ctx context.Context, imagePath string, detail vision.Detail) (string, error) {
	f.details = append(f.details, detail)
	return f.description, f.err
}

func (f *fakeAnalyzer) AnswerQuestion(ctx context.Context, imagePath, question string) (string, error) {
	return f.description, f.err
}

func (f *fakeAnalyzer) DetectObjects(ctx context.Context, imagePath string) ([]vision.DetectedObject, error) {
	return nil, f.err
}

type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) ExtractText(ctx context.Context, imagePath string, cleanup bool) (string, error) {
	return f.text, f.err
}

func (f *fakeOCR) ExtractStructured(ctx context.Context, imagePath, structureType string) (any, error) {
	return nil, f.err
}

func meetingTranscript() *transcribe.Result {
	return transcribe.NewResult([]transcribe.Segment{
		{Start: 0, End: 4, Text: "Welcome to the planning meeting."},
		{Start: 4, End: 9, Text: "Bob will draft the roadmap by Friday."},
		{Start: 9, End: 12, Text: "We decided to ship in May."},
	}, "en")
}
