package vision

import (
	"context"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/formatter"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/prompts"
	"github.com/nguyentantai21042004/genai-workshop/internal/step"
)

func (o *implOCR) ExtractText(ctx context.Context, imagePath string, cleanup bool) (string, error) {
	o.logger.Info(ctx, "Extracting text from: %s", imagePath)

	raw, err := o.analyzer.AnswerQuestion(ctx, imagePath, ocrPrompt)
	if err != nil {
		return "", err
	}
	if !cleanup || o.generator == nil {
		return raw, nil
	}

	cleaned := step.Run(ctx, o.logger, "Text cleanup", raw, func(ctx context.Context) (string, error) {
		return o.generate(ctx, prompts.OCRCleanup, map[string]string{"ocr_text": raw})
	})
	return cleaned.Value, nil
}

func (o *implOCR) ExtractStructured(ctx context.Context, imagePath, structureType string) (any, error) {
	if o.generator == nil {
		return nil, apperr.New(apperr.ErrConfiguration, "structured extraction needs a text generator")
	}
	if structureType != StructureReceipt {
		return nil, apperr.New(apperr.ErrValidation, "unsupported structure type %q", structureType)
	}

	text, err := o.ExtractText(ctx, imagePath, true)
	if err != nil {
		return nil, err
	}

	resp, err := o.generate(ctx, prompts.ReceiptExtraction, map[string]string{"receipt_text": text})
	if err != nil {
		return nil, err
	}
	return formatter.ExtractJSON(resp)
}

func (o *implOCR) generate(ctx context.Context, kind prompts.Kind, values map[string]string) (string, error) {
	req, err := llm.PromptRequest(kind, values)
	if err != nil {
		return "", err
	}
	return o.generator.Generate(ctx, req)
}
