package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/formatter"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm/llmtest"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
	"github.com/nguyentantai21042004/genai-workshop/internal/prompts"
	"github.com/nguyentantai21042004/genai-workshop/internal/vision"
)

func TestVisionProcess(t *testing.T) {
	tests := []struct {
		name       string
		reasoning  Reasoning
		question   string
		want       VisionResult
		wantPrompt string
	}{
		{
			name:       "description",
			reasoning:  ReasoningDescription,
			want:       VisionResult{Description: "boxes and arrows", Reasoning: "LLM says"},
			wantPrompt: "Based on this image description: 'boxes and arrows'",
		},
		{
			name:       "default is description",
			want:       VisionResult{Description: "boxes and arrows", Reasoning: "LLM says"},
			wantPrompt: "Based on this image description",
		},
		{
			name:       "diagram",
			reasoning:  ReasoningDiagram,
			want:       VisionResult{Description: "boxes and arrows", Explanation: "LLM says"},
			wantPrompt: "Based on this diagram description: 'boxes and arrows'",
		},
		{
			name:       "qa",
			reasoning:  ReasoningQA,
			question:   "What is the first box?",
			want:       VisionResult{Description: "boxes and arrows", Answer: "LLM says"},
			wantPrompt: "answer the following question: What is the first box?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{description: "boxes and arrows"}
			gen := llmtest.Reply("LLM says")
			v := NewVision(analyzer, gen, logger.NewNop())

			got, err := v.Process(context.Background(), "d.png", tt.reasoning, tt.question)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if diff := cmp.Diff(&tt.want, got); diff != "" {
				t.Errorf("Process() mismatch (-want +got):\n%s", diff)
			}
			if analyzer.details[0] != vision.DetailHigh {
				t.Errorf("described at %q, want high", analyzer.details[0])
			}
			if p := gen.Requests()[0].Prompt; !strings.Contains(p, tt.wantPrompt) {
				t.Errorf("prompt %q does not contain %q", p, tt.wantPrompt)
			}
		})
	}
}

func TestVisionProcessValidatesBeforeBackend(t *testing.T) {
	tests := []struct {
		name      string
		reasoning Reasoning
		question  string
	}{
		{"qa without question", ReasoningQA, ""},
		{"unknown reasoning", "poem", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{description: "x"}
			gen := llmtest.Reply("y")
			v := NewVision(analyzer, gen, logger.NewNop())

			_, err := v.Process(context.Background(), "a.png", tt.reasoning, tt.question)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("Process() error = %v, want ValidationError", err)
			}
			if len(analyzer.details) != 0 || len(gen.Requests()) != 0 {
				t.Error("invalid arguments reached a backend")
			}
		})
	}
}

func TestVisionProcessFailures(t *testing.T) {
	v := NewVision(&fakeAnalyzer{err: apperr.New(apperr.ErrVisionAnalysis, "timeout")}, llmtest.Reply("x"), logger.NewNop())
	if _, err := v.Process(context.Background(), "a.png", ReasoningDescription, ""); !errors.Is(err, apperr.ErrModel) {
		t.Errorf("describe failure error = %v", err)
	}

	v = NewVision(&fakeAnalyzer{description: "a chart"}, llmtest.Fail(llmtest.ErrScripted), logger.NewNop())
	got, err := v.Process(context.Background(), "a.png", ReasoningDiagram, "")
	if err != nil {
		t.Fatalf("reasoning failure should not be fatal: %v", err)
	}
	if got.Description != "a chart" || got.Explanation != "" || got.ReasoningError != "scripted failure" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestVisionDescribeOnly(t *testing.T) {
	analyzer := &fakeAnalyzer{description: "a dog"}
	gen := llmtest.Reply("unused")
	v := NewVision(analyzer, gen, logger.NewNop())

	got, err := v.DescribeOnly(context.Background(), "dog.jpg")
	if err != nil || got != "a dog" {
		t.Errorf("DescribeOnly() = %q, %v", got, err)
	}
	if analyzer.details[0] != vision.DetailMedium || len(gen.Requests()) != 0 {
		t.Error("DescribeOnly should use medium detail and skip reasoning")
	}
}

func TestReceiptParse(t *testing.T) {
	gen := llmtest.Reply(`Here is the data: {"vendor": "Cafe Roma", "date": null, "total": "12.50", "items": []}`)
	r := NewReceipt(&fakeOCR{text: "CAFE ROMA TOTAL 12.50"}, gen, logger.NewNop())

	got, err := r.Parse(context.Background(), "receipt.jpg")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff([]string{"vendor", "date", "total", "items", "metadata"}, got.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	raw, _ := got.Get("metadata")
	metadata := raw.(*formatter.Object)
	if n, _ := metadata.Get("raw_text_length"); n != len("CAFE ROMA TOTAL 12.50") {
		t.Errorf("raw_text_length = %v", n)
	}
	if !strings.Contains(gen.Requests()[0].Prompt, "CAFE ROMA TOTAL 12.50") {
		t.Error("receipt prompt does not carry the OCR text")
	}
}

func TestReceiptParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		ocr     *fakeOCR
		gen     *llmtest.Generator
		wantErr error
	}{
		{"ocr fails", &fakeOCR{err: apperr.New(apperr.ErrVisionAnalysis, "down")}, llmtest.Reply("{}"), apperr.ErrVisionAnalysis},
		{"missing keys", &fakeOCR{text: "t"}, llmtest.Reply(`{"date": "2024-01-01"}`), apperr.ErrMissingKeys},
		{"no json", &fakeOCR{text: "t"}, llmtest.Reply("unreadable"), apperr.ErrJSONExtraction},
		{"generation fails", &fakeOCR{text: "t"}, llmtest.Fail(llmtest.ErrScripted), llmtest.ErrScripted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReceipt(tt.ocr, tt.gen, logger.NewNop()).Parse(context.Background(), "r.jpg")
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, apperr.ErrModel) {
				t.Errorf("Parse() error = %v, want ModelError wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestReceiptParseFormatted(t *testing.T) {
	r := NewReceipt(&fakeOCR{text: "abc"}, llmtest.Reply(`{"vendor": "Shop", "total": 3}`), logger.NewNop())

	got, err := r.ParseFormatted(context.Background(), "r.png", "json")
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"vendor\": \"Shop\",\n  \"total\": 3,\n  \"metadata\": {\n    \"source_file\": \"r.png\",\n    \"raw_text_length\": 3\n  }\n}"
	if got != want {
		t.Errorf("ParseFormatted() = %q, want %q", got, want)
	}
}

func TestDiagramExplain(t *testing.T) {
	tests := []struct {
		name   string
		detail DiagramDetail
		gen    *llmtest.Generator
		want   string
		calls  int
	}{
		{"detailed", DiagramDetailed, llmtest.Reply("a pipeline"), "a pipeline", 1},
		{"default", "", llmtest.Reply("a pipeline"), "a pipeline", 1},
		{"technical", DiagramTechnical, llmtest.Sequence("a pipeline", "a pipeline with queues"), "a pipeline with queues", 2},
		{"reasoning fails", DiagramBasic, llmtest.Fail(llmtest.ErrScripted), "boxes and arrows", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiagram(NewVision(&fakeAnalyzer{description: "boxes and arrows"}, tt.gen, logger.NewNop()), tt.gen, logger.NewNop())

			got, err := d.Explain(context.Background(), "d.png", tt.detail)
			if err != nil {
				t.Fatalf("Explain() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Explain() = %q, want %q", got, tt.want)
			}
			if n := len(tt.gen.Requests()); n != tt.calls {
				t.Errorf("%d model calls, want %d", n, tt.calls)
			}
		})
	}
}

func TestDiagramTechnicalPrompt(t *testing.T) {
	var failEnhancement bool
	gen := &llmtest.Generator{Respond: func(req llm.Request) (string, error) {
		if strings.HasSuffix(req.Prompt, prompts.TechnicalDetailRequest) {
			if failEnhancement {
				return "", llmtest.ErrScripted
			}
			return "deep", nil
		}
		return "plain", nil
	}}
	d := NewDiagram(NewVision(&fakeAnalyzer{description: "flowchart"}, gen, logger.NewNop()), gen, logger.NewNop())

	got, err := d.Explain(context.Background(), "d.png", DiagramTechnical)
	if err != nil || got != "deep" {
		t.Errorf("Explain() = %q, %v", got, err)
	}
	if p := gen.Requests()[1].Prompt; !strings.Contains(p, "'flowchart'") {
		t.Errorf("enhancement prompt %q does not use the description", p)
	}

	failEnhancement = true
	got, err = d.Explain(context.Background(), "d.png", DiagramTechnical)
	if err != nil || got != "plain" {
		t.Errorf("failed enhancement should fall back, got %q, %v", got, err)
	}
}

func TestDiagramExplainErrors(t *testing.T) {
	empty := []struct {
		name        string
		description string
		gen         *llmtest.Generator
	}{
		{"empty explanation", "boxes and arrows", llmtest.Reply("")},
		{"empty description fallback", "", llmtest.Fail(llmtest.ErrScripted)},
	}
	for _, tt := range empty {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiagram(NewVision(&fakeAnalyzer{description: tt.description}, tt.gen, logger.NewNop()), tt.gen, logger.NewNop())
			got, err := d.Explain(context.Background(), "d.png", DiagramDetailed)
			if got != "" || !errors.Is(err, apperr.ErrModel) {
				t.Errorf("Explain() = %q, %v; want ModelError", got, err)
			}
		})
	}

	analyzer := &fakeAnalyzer{description: "x"}
	d := NewDiagram(NewVision(analyzer, llmtest.Reply("y"), logger.NewNop()), llmtest.Reply("y"), logger.NewNop())
	if _, err := d.Explain(context.Background(), "d.png", "exhaustive"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("unknown detail error = %v", err)
	}
	if len(analyzer.details) != 0 {
		t.Error("unknown detail should be rejected before describing")
	}
}

func TestScreenQAAnswer(t *testing.T) {
	s := NewScreenQA(NewVision(&fakeAnalyzer{description: "a login form"}, llmtest.Reply("Top right."), logger.NewNop()), llmtest.Reply("unused"), logger.NewNop())

	got, err := s.Answer(context.Background(), "s.png", "Where is the button?")
	if err != nil || got != "Top right." {
		t.Errorf("Answer() = %q, %v", got, err)
	}
}

func TestScreenQAEmptyAnswerIsAnError(t *testing.T) {
	tests := []struct {
		name string
		gen  *llmtest.Generator
	}{
		{"empty answer", llmtest.Reply("")},
		{"reasoning failed", llmtest.Fail(llmtest.ErrScripted)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreenQA(NewVision(&fakeAnalyzer{description: "a screen"}, tt.gen, logger.NewNop()), tt.gen, logger.NewNop())
			got, err := s.Answer(context.Background(), "s.png", "What is this?")
			if got != "" || !errors.Is(err, apperr.ErrModel) {
				t.Errorf("Answer() = %q, %v; want ModelError", got, err)
			}
		})
	}
}

func TestScreenQAAnswerAll(t *testing.T) {
	analyzer := &fakeAnalyzer{description: "settings page"}
	gen := &llmtest.Generator{Respond: func(req llm.Request) (string, error) {
		if strings.HasSuffix(req.Prompt, "broken?") {
			return "", llmtest.ErrScripted
		}
		return "answer to " + req.Prompt[strings.LastIndex(req.Prompt, ": ")+2:], nil
	}}
	s := NewScreenQA(NewVision(analyzer, gen, logger.NewNop()), gen, logger.NewNop())

	got, err := s.AnswerAll(context.Background(), "s.png", []string{"What tab is open?", "Is anything broken?", "Dark mode?"})
	if err != nil {
		t.Fatalf("AnswerAll() error = %v", err)
	}

	want := []QA{
		{"What tab is open?", "answer to What tab is open?"},
		{"Is anything broken?", "Error: scripted failure"},
		{"Dark mode?", "answer to Dark mode?"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AnswerAll() mismatch (-want +got):\n%s", diff)
	}
	if len(analyzer.details) != 1 {
		t.Errorf("screen described %d times, want once", len(analyzer.details))
	}
}

func TestScreenQADescribeScreen(t *testing.T) {
	s := NewScreenQA(NewVision(&fakeAnalyzer{description: "a terminal"}, llmtest.Reply("x"), logger.NewNop()), llmtest.Reply("x"), logger.NewNop())
	if got, err := s.DescribeScreen(context.Background(), "s.png"); err != nil || got != "a terminal" {
		t.Errorf("DescribeScreen() = %q, %v", got, err)
	}
}

func TestProcessWhiteboardMeeting(t *testing.T) {
	transcript := meetingTranscript()
	audio := NewAudio(&fakeTranscriber{result: transcript}, &fakeSummarizer{summary: "# Summary\n\nroadmap\n"}, 30, logger.NewNop())
	v := NewVision(&fakeAnalyzer{description: "Q2 roadmap sketch"}, llmtest.Reply("unused"), logger.NewNop())
	gen := llmtest.Reply("Combined notes")

	got, err := NewMultimodal(audio, v, gen, logger.NewNop()).ProcessWhiteboardMeeting(context.Background(), "m.mp3", "wb.jpg")
	if err != nil {
		t.Fatalf("ProcessWhiteboardMeeting() error = %v", err)
	}

	want := &WhiteboardResult{
		Transcript:            transcript.FullText,
		WhiteboardDescription: "Q2 roadmap sketch",
		CombinedNotes:         "Combined notes",
		Summary:               "# Summary\n\nroadmap\n",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ProcessWhiteboardMeeting() mismatch (-want +got):\n%s", diff)
	}

	req := gen.Requests()[0]
	if req.System != combineSystem || !strings.Contains(req.Prompt, "Whiteboard Description:\nQ2 roadmap sketch") {
		t.Errorf("unexpected combining request %+v", req)
	}
}

func TestProcessWhiteboardMeetingCombineFails(t *testing.T) {
	audio := NewAudio(&fakeTranscriber{result: meetingTranscript()}, &fakeSummarizer{summary: "s"}, 30, logger.NewNop())
	v := NewVision(&fakeAnalyzer{description: "wb"}, llmtest.Reply("x"), logger.NewNop())

	got, err := NewMultimodal(audio, v, llmtest.Fail(llmtest.ErrScripted), logger.NewNop()).ProcessWhiteboardMeeting(context.Background(), "m.mp3", "wb.jpg")
	if err != nil {
		t.Fatalf("combining failure should not be fatal: %v", err)
	}
	if got.CombinedNotes != CombineFailed || got.Error != "scripted failure" || got.Summary != "" {
		t.Errorf("unexpected result %+v", got)
	}
}
