package vision

import (
	"context"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
)

func (a *implAnalyzer) Describe(ctx context.Context, imagePath string, detail Detail) (string, error) {
	if detail == "" {
		detail = DetailMedium
	}
	prompt, ok := describePrompts[detail]
	if !ok {
		return "", apperr.New(apperr.ErrValidation, "unknown detail level %q (want low, medium or high)", detail)
	}

	a.logger.Info(ctx, "Describing image: %s", imagePath)
	return a.ask(ctx, imagePath, prompt, "failed to describe image")
}

func (a *implAnalyzer) AnswerQuestion(ctx context.Context, imagePath, question string) (string, error) {
	a.logger.Info(ctx, "Answering question about image: %s", imagePath)
	return a.ask(ctx, imagePath, question, "failed to answer question")
}

func (a *implAnalyzer) DetectObjects(ctx context.Context, imagePath string) ([]DetectedObject, error) {
	description, err := a.Describe(ctx, imagePath, DetailMedium)
	if err != nil {
		return nil, err
	}
	return []DetectedObject{{
		Type:        ObjectScene,
		Description: description,
		Confidence:  1.0,
	}}, nil
}

func (a *implAnalyzer) ask(ctx context.Context, imagePath, prompt, failure string) (string, error) {
	if err := a.validator.ValidateImage(ctx, imagePath); err != nil {
		return "", err
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrValidation, err, "read image %s", imagePath)
	}

	resp, err := a.describer.DescribeImage(ctx, backend.ImageRequest{
		Model:    a.model,
		Prompt:   prompt,
		Image:    data,
		MIMEType: ImageMIMEType(imagePath, data),
	})
	if err != nil {
		a.logger.Error(ctx, "Vision request failed: %v", err)
		return "", apperr.Wrap(apperr.ErrVisionAnalysis, err, "%s", failure)
	}
	return strings.TrimSpace(resp), nil
}

// ImageMIMEType picks the content type from the extension, falling back to
// sniffing the bytes.
func ImageMIMEType(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".heic" {
		return "image/heic"
	}
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "image/") {
		return t
	}
	if t := http.DetectContentType(data); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
