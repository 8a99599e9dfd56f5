package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
	"github.com/nguyentantai21042004/genai-workshop/internal/validator"
)

const transcribePrompt = "Transcribe this audio recording verbatim. Return only the spoken text."

const translatePrompt = "Translate the speech in this audio recording into English. Return only the translated text."

var audioMIMETypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mp3",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
}

func (p *implProvider) Name() string { return "gemini" }

func (p *implProvider) ListModels(ctx context.Context) ([]string, error) {
	var names []string
	err := p.withClient(ctx, func(c *genai.Client) error {
		page, err := c.Models.List(ctx, &genai.ListModelsConfig{})
		if err != nil {
			return err
		}
		names = names[:0]
		for _, m := range page.Items {
			names = append(names, strings.TrimPrefix(m.Name, "models/"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return names, nil
}

func (p *implProvider) Chat(ctx context.Context, req backend.ChatRequest) (string, error) {
	var text string
	err := p.withClient(ctx, func(c *genai.Client) error {
		result, err := c.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), generateConfig(req.System))
		if err != nil {
			return err
		}
		text = responseText(result)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return text, nil
}

// ChatStream pulls the first response eagerly so a rate-limited key can be
// rotated before any text reaches the caller.
func (p *implProvider) ChatStream(ctx context.Context, req backend.ChatRequest) (backend.ChatStream, error) {
	var s *chatStream
	err := p.withClient(ctx, func(c *genai.Client) error {
		seq := c.Models.GenerateContentStream(ctx, req.Model, genai.Text(req.Prompt), generateConfig(req.System))
		candidate := newChatStream(seq)
		if err := candidate.prime(); err != nil {
			candidate.Close()
			return err
		}
		s = candidate
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate content stream: %w", err)
	}
	return s, nil
}

type chatStream struct {
	next    func() (*genai.GenerateContentResponse, error, bool)
	stop    func()
	pending *genai.GenerateContentResponse
	done    bool
}

func newChatStream(seq iter.Seq2[*genai.GenerateContentResponse, error]) *chatStream {
	next, stop := iter.Pull2(seq)
	return &chatStream{next: next, stop: stop}
}

func (s *chatStream) prime() error {
	resp, err, ok := s.next()
	if !ok {
		s.done = true
		return nil
	}
	if err != nil {
		return err
	}
	s.pending = resp
	return nil
}

func (s *chatStream) Recv() (string, error) {
	if s.pending != nil {
		resp := s.pending
		s.pending = nil
		return responseText(resp), nil
	}
	if s.done {
		return "", io.EOF
	}

	resp, err, ok := s.next()
	if !ok {
		s.done = true
		return "", io.EOF
	}
	if err != nil {
		s.done = true
		return "", err
	}
	return responseText(resp), nil
}

func (s *chatStream) Close() error {
	s.done = true
	s.stop()
	return nil
}

func (p *implProvider) DescribeImage(ctx context.Context, req backend.ImageRequest) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(req.Prompt),
			genai.NewPartFromBytes(req.Image, req.MIMEType),
		}, genai.RoleUser),
	}

	var text string
	err := p.withClient(ctx, func(c *genai.Client) error {
		result, err := c.Models.GenerateContent(ctx, req.Model, contents, nil)
		if err != nil {
			return err
		}
		text = responseText(result)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("describe image: %w", err)
	}
	return text, nil
}

// LoadModel confirms the model exists for the current key.
func (p *implProvider) LoadModel(ctx context.Context, model string) error {
	err := p.withClient(ctx, func(c *genai.Client) error {
		_, err := c.Models.Get(ctx, model, nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("get model %s: %w", model, err)
	}
	return nil
}

// Transcribe sends the audio inline and returns the text as one segment;
// the API gives no timings. WAV files get their real length as the end time.
func (p *implProvider) Transcribe(ctx context.Context, req backend.TranscriptionRequest) (*backend.Transcription, error) {
	data, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(req.AudioPath))
	mimeType, ok := audioMIMETypes[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported audio type %q", ext)
	}

	prompt := transcribePrompt
	if req.Translate {
		prompt = translatePrompt
	}
	if req.Language != "" && !req.Translate {
		prompt += " The speech is in " + req.Language + "."
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	var text string
	err = p.withClient(ctx, func(c *genai.Client) error {
		result, err := c.Models.GenerateContent(ctx, req.Model, contents, nil)
		if err != nil {
			return err
		}
		text = strings.TrimSpace(responseText(result))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}

	out := &backend.Transcription{Language: req.Language, Text: text}
	if req.Translate {
		out.Language = "en"
	}
	if text == "" {
		return out, nil
	}

	var end float64
	if ext == ".wav" {
		if d, err := validator.AudioDuration(req.AudioPath); err == nil {
			end = d.Seconds()
		}
	}
	out.Segments = []backend.Segment{{Start: 0, End: end, Text: text}}
	return out, nil
}

// withClient runs fn with the current key and moves to the next key when the
// API reports a quota problem. Other errors are returned immediately.
func (p *implProvider) withClient(ctx context.Context, fn func(*genai.Client) error) error {
	var lastErr error
	for range len(p.clients) {
		idx := p.current()
		err := fn(p.clients[idx])
		if err == nil {
			return nil
		}
		if !IsRateLimited(err) {
			return err
		}
		p.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		p.rotateKey(idx)
		lastErr = err
	}
	return fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (p *implProvider) current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentKey
}

// rotateKey advances past from unless another call already did.
func (p *implProvider) rotateKey(from int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentKey == from {
		p.currentKey = (p.currentKey + 1) % len(p.clients)
	}
}

// IsRateLimited reports whether err is a 429 or quota error.
func IsRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func generateConfig(system string) *genai.GenerateContentConfig {
	if system == "" {
		return nil
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
