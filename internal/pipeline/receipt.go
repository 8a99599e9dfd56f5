package pipeline

import (
	"context"
	"unicode/utf8"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/formatter"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/prompts"
)

// ReceiptRequiredKeys must be present in every parsed receipt. Their value
// may be null when the receipt does not show them.
var ReceiptRequiredKeys = []string{"vendor", "total"}

func (r *implReceipt) Parse(ctx context.Context, imagePath string) (*formatter.Object, error) {
	r.logger.Info(ctx, "Parsing receipt from: %s", imagePath)

	text, err := r.ocr.ExtractText(ctx, imagePath, true)
	if err != nil {
		r.logger.Error(ctx, "OCR extraction failed: %v", err)
		return nil, apperr.Wrap(apperr.ErrModel, err, "failed to extract receipt text")
	}

	receipt, err := r.extract(ctx, text)
	if err != nil {
		r.logger.Error(ctx, "Receipt parsing failed: %v", err)
		return nil, apperr.Wrap(apperr.ErrModel, err, "failed to parse receipt")
	}

	metadata := formatter.NewObject()
	metadata.Set("source_file", imagePath)
	metadata.Set("raw_text_length", utf8.RuneCountInString(text))
	receipt.Set("metadata", metadata)

	return receipt, nil
}

func (r *implReceipt) ParseFormatted(ctx context.Context, imagePath, format string) (string, error) {
	if err := checkStructuredFormat(format); err != nil {
		return "", err
	}
	receipt, err := r.Parse(ctx, imagePath)
	if err != nil {
		return "", err
	}
	return formatter.FormatStructuredOutput(receipt, format)
}

func (r *implReceipt) extract(ctx context.Context, text string) (*formatter.Object, error) {
	req, err := llm.PromptRequest(prompts.ReceiptExtraction, map[string]string{"receipt_text": text})
	if err != nil {
		return nil, err
	}

	r.logger.Info(ctx, "Extracting structured receipt data")
	resp, err := r.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := formatter.ExtractJSON(resp)
	if err != nil {
		return nil, err
	}
	receipt, err := asObject(data)
	if err != nil {
		return nil, err
	}
	if err := formatter.ValidateJSONStructure(receipt, ReceiptRequiredKeys); err != nil {
		return nil, err
	}
	return receipt, nil
}
