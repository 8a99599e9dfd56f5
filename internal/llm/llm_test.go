package llm

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
	"github.com/nguyentantai21042004/genai-workshop/internal/prompts"
)

type fakeBackend struct {
	models   []string
	listErr  error
	lists    int
	reply    string
	chatErr  error
	chunks   []string
	recvErr  error
	requests []backend.ChatRequest
	closed   bool
}

func (f *fakeBackend) ListModels(ctx context.Context) ([]string, error) {
	f.lists++
	return f.models, f.listErr
}

func (f *fakeBackend) Chat(ctx context.Context, req backend.ChatRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.chatErr
}

func (f *fakeBackend) ChatStream(ctx context.Context, req backend.ChatRequest) (backend.ChatStream, error) {
	f.requests = append(f.requests, req)
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return &fakeStream{b: f}, nil
}

type fakeStream struct {
	b   *fakeBackend
	pos int
}

func (s *fakeStream) Recv() (string, error) {
	if s.pos < len(s.b.chunks) {
		s.pos++
		return s.b.chunks[s.pos-1], nil
	}
	if s.b.recvErr != nil {
		return "", s.b.recvErr
	}
	return "", io.EOF
}

func (s *fakeStream) Close() error {
	s.b.closed = true
	return nil
}

func TestGenerate(t *testing.T) {
	b := &fakeBackend{models: []string{"llama3.2:latest"}, reply: "Hello there"}
	g := New(b, b, "llama3.2:latest", logger.NewNop())

	got, err := g.Generate(context.Background(), Request{Prompt: "Hi", System: "Be brief"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "Hello there" {
		t.Errorf("Generate() = %q", got)
	}

	want := backend.ChatRequest{Model: "llama3.2:latest", System: "Be brief", Prompt: "Hi"}
	if diff := cmp.Diff(want, b.requests[0]); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateRemembersModel(t *testing.T) {
	b := &fakeBackend{models: []string{"llama3.2:latest"}, reply: "ok"}
	g := New(b, b, "llama3.2:latest", logger.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := g.Generate(context.Background(), Request{Prompt: "p"}); err != nil {
			t.Fatal(err)
		}
	}
	if b.lists != 1 {
		t.Errorf("ListModels called %d times, want 1", b.lists)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		backend  *fakeBackend
		wantErr  error
		wantCall bool
		wantMsg  string
	}{
		{
			name:    "model not installed",
			backend: &fakeBackend{models: []string{"mistral:latest"}},
			wantErr: apperr.ErrModelUnavailable,
			wantMsg: "ollama pull llama3.2:latest",
		},
		{
			name:    "listing fails",
			backend: &fakeBackend{listErr: errors.New("connection refused")},
			wantErr: apperr.ErrModelUnavailable,
		},
		{
			name:     "generation fails",
			backend:  &fakeBackend{models: []string{"llama3.2:latest"}, chatErr: errors.New("boom")},
			wantErr:  apperr.ErrModel,
			wantCall: true,
			wantMsg:  "text generation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.backend, tt.backend, "llama3.2:latest", logger.NewNop())
			_, err := g.Generate(context.Background(), Request{Prompt: "p"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Generate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
			if got := len(tt.backend.requests) > 0; got != tt.wantCall {
				t.Errorf("backend called = %v, want %v", got, tt.wantCall)
			}
		})
	}
}

func TestStream(t *testing.T) {
	b := &fakeBackend{models: []string{"llama3.2:latest"}, chunks: []string{"Hel", "", "lo", " world"}}
	g := New(b, b, "llama3.2:latest", logger.NewNop())

	seq, err := g.Stream(context.Background(), Request{Prompt: "p"})
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	var got []string
	for chunk, err := range seq {
		if err != nil {
			t.Fatalf("unexpected stream error %v", err)
		}
		got = append(got, chunk)
	}

	if diff := cmp.Diff([]string{"Hel", "lo", " world"}, got); diff != "" {
		t.Errorf("chunks mismatch (-want +got):\n%s", diff)
	}
	if !b.closed {
		t.Error("stream was not closed")
	}

	for range seq {
		t.Error("second pass should yield nothing")
	}
}

func TestStreamBreaksMidway(t *testing.T) {
	b := &fakeBackend{models: []string{"m"}, chunks: []string{"a", "b"}, recvErr: errors.New("reset")}
	g := New(b, b, "m", logger.NewNop())

	seq, err := g.Stream(context.Background(), Request{Prompt: "p"})
	if err != nil {
		t.Fatal(err)
	}

	var chunks []string
	var streamErr error
	for chunk, err := range seq {
		if err != nil {
			streamErr = err
			break
		}
		chunks = append(chunks, chunk)
	}

	if len(chunks) != 2 {
		t.Errorf("got %d chunks before failure, want 2", len(chunks))
	}
	if !errors.Is(streamErr, apperr.ErrStreaming) {
		t.Errorf("stream error = %v, want ErrStreaming", streamErr)
	}
}

func TestStreamPreflight(t *testing.T) {
	b := &fakeBackend{models: nil}
	g := New(b, b, "m", logger.NewNop())

	if _, err := g.Stream(context.Background(), Request{Prompt: "p"}); !errors.Is(err, apperr.ErrModelUnavailable) {
		t.Errorf("Stream() error = %v, want ErrModelUnavailable", err)
	}
}

func TestCheckConnection(t *testing.T) {
	ok := &fakeBackend{}
	if !New(ok, ok, "m", logger.NewNop()).CheckConnection(context.Background()) {
		t.Error("reachable backend reported as down")
	}

	down := &fakeBackend{listErr: errors.New("dial tcp: refused")}
	if New(down, down, "m", logger.NewNop()).CheckConnection(context.Background()) {
		t.Error("unreachable backend reported as up")
	}
}

func TestPromptRequest(t *testing.T) {
	req, err := PromptRequest(prompts.ScreenQA, map[string]string{
		"screenshot_description": "A login form",
		"question":               "Where is the submit button?",
	})
	if err != nil {
		t.Fatalf("PromptRequest() error = %v", err)
	}
	if !strings.Contains(req.Prompt, "'A login form'") || !strings.HasSuffix(req.Prompt, "Where is the submit button?") {
		t.Errorf("unexpected prompt %q", req.Prompt)
	}
	if req.System == "" || req.Model != "" {
		t.Errorf("unexpected request %+v", req)
	}

	if _, err := PromptRequest(prompts.ScreenQA, nil); !errors.Is(err, apperr.ErrMissingPlaceholder) {
		t.Errorf("missing values error = %v", err)
	}
	if _, err := PromptRequest("nope", nil); !errors.Is(err, apperr.ErrInvalidPromptKind) {
		t.Errorf("unknown kind error = %v", err)
	}
}
