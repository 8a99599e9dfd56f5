package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
)

func (p *implProvider) Name() string { return "openai" }

func (p *implProvider) ListModels(ctx context.Context) ([]string, error) {
	return listModels(ctx, p.chat)
}

func listModels(ctx context.Context, c *goopenai.Client) ([]string, error) {
	list, err := c.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.ID)
	}
	return names, nil
}

func (p *implProvider) Chat(ctx context.Context, req backend.ChatRequest) (string, error) {
	resp, err := p.chat.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages(req),
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from chat completion")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *implProvider) ChatStream(ctx context.Context, req backend.ChatRequest) (backend.ChatStream, error) {
	stream, err := p.chat.CreateChatCompletionStream(ctx, goopenai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages(req),
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat completion stream: %w", err)
	}
	return &chatStream{stream: stream}, nil
}

func messages(req backend.ChatRequest) []goopenai.ChatCompletionMessage {
	var msgs []goopenai.ChatCompletionMessage
	if req.System != "" {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	return append(msgs, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: req.Prompt,
	})
}

type chatStream struct {
	stream   *goopenai.ChatCompletionStream
	finished bool
}

// Recv returns io.EOF once the server has sent a finish reason. A connection
// that closes before that yields io.ErrUnexpectedEOF.
func (s *chatStream) Recv() (string, error) {
	resp, err := s.stream.Recv()
	if errors.Is(err, io.EOF) && !s.finished {
		return "", io.ErrUnexpectedEOF
	}
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	if resp.Choices[0].FinishReason != "" {
		s.finished = true
	}
	return resp.Choices[0].Delta.Content, nil
}

func (s *chatStream) Close() error {
	return s.stream.Close()
}

func (p *implProvider) DescribeImage(ctx context.Context, req backend.ImageRequest) (string, error) {
	resp, err := p.chat.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []goopenai.ChatCompletionMessage{{
			Role: goopenai.ChatMessageRoleUser,
			MultiContent: []goopenai.ChatMessagePart{
				{Type: goopenai.ChatMessagePartTypeText, Text: req.Prompt},
				{
					Type: goopenai.ChatMessagePartTypeImageURL,
					ImageURL: &goopenai.ChatMessageImageURL{
						URL:    DataURI(req.MIMEType, req.Image),
						Detail: goopenai.ImageURLDetailAuto,
					},
				},
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("describe image: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// DataURI inlines image bytes the way vision endpoints accept them.
func DataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// LoadModel checks that the speech server is reachable. Servers that fetch
// models on first use may not list the model yet, so absence only warns.
func (p *implProvider) LoadModel(ctx context.Context, model string) error {
	models, err := listModels(ctx, p.whisper)
	if err != nil {
		return fmt.Errorf("reach speech server: %w", err)
	}
	if !backend.HasModel(models, model) {
		p.logger.Warn(ctx, "Speech model %s is not listed by the server, it may be downloaded on first use", model)
	}
	return nil
}

func (p *implProvider) Transcribe(ctx context.Context, req backend.TranscriptionRequest) (*backend.Transcription, error) {
	audioReq := goopenai.AudioRequest{
		Model:    req.Model,
		FilePath: req.AudioPath,
		Language: req.Language,
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	}

	var (
		resp goopenai.AudioResponse
		err  error
	)
	if req.Translate {
		resp, err = p.whisper.CreateTranslation(ctx, audioReq)
	} else {
		resp, err = p.whisper.CreateTranscription(ctx, audioReq)
	}
	if err != nil {
		return nil, fmt.Errorf("create transcription: %w", err)
	}

	out := &backend.Transcription{
		Language: resp.Language,
		Text:     strings.TrimSpace(resp.Text),
	}
	for _, s := range resp.Segments {
		out.Segments = append(out.Segments, backend.Segment{Start: s.Start, End: s.End, Text: s.Text})
	}
	if len(out.Segments) == 0 && out.Text != "" {
		out.Segments = []backend.Segment{{Start: 0, End: resp.Duration, Text: out.Text}}
	}
	return out, nil
}
