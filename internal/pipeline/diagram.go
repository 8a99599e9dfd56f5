package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/prompts"
	"github.com/nguyentantai21042004/genai-workshop/internal/step"
)

func (d *implDiagram) Explain(ctx context.Context, imagePath string, detail DiagramDetail) (string, error) {
	if detail == "" {
		detail = DiagramDetailed
	}
	switch detail {
	case DiagramBasic, DiagramDetailed, DiagramTechnical:
	default:
		return "", apperr.New(apperr.ErrValidation, "unknown detail level: %s (want basic, detailed or technical)", detail)
	}

	d.logger.Info(ctx, "Explaining diagram: %s", imagePath)

	result, err := d.vision.Process(ctx, imagePath, ReasoningDiagram, "")
	if err != nil {
		return "", err
	}

	explanation := result.Explanation
	if result.ReasoningError != "" {
		explanation = result.Description
	}
	if explanation == "" {
		return "", apperr.New(apperr.ErrModel, "failed to generate diagram explanation")
	}

	if detail != DiagramTechnical {
		return explanation, nil
	}

	enhanced := step.Run(ctx, d.logger, "Technical enhancement", explanation, func(ctx context.Context) (string, error) {
		req, err := llm.PromptRequest(prompts.DiagramExplanation, map[string]string{
			"diagram_description": result.Description,
		})
		if err != nil {
			return "", err
		}
		req.Prompt += prompts.TechnicalDetailRequest
		return d.generator.Generate(ctx, req)
	})
	return enhanced.Value, nil
}
