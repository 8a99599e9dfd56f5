package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/prompts"
	"github.com/nguyentantai21042004/genai-workshop/internal/step"
	"github.com/nguyentantai21042004/genai-workshop/internal/vision"
)

// Process checks the reasoning arguments before touching any backend, then
// describes the image in high detail and runs the selected branch. Only the
// description step is fatal.
func (v *implVision) Process(ctx context.Context, imagePath string, reasoning Reasoning, question string) (*VisionResult, error) {
	if reasoning == "" {
		reasoning = ReasoningDescription
	}
	values, kind, err := reasoningPrompt(reasoning, question)
	if err != nil {
		return nil, err
	}

	v.logger.Info(ctx, "Processing image: %s", imagePath)

	description, err := v.analyzer.Describe(ctx, imagePath, vision.DetailHigh)
	if err != nil {
		v.logger.Error(ctx, "Image description failed: %v", err)
		return nil, apperr.Wrap(apperr.ErrModel, err, "failed to describe image")
	}

	result := &VisionResult{Description: description}

	values[descriptionField(kind)] = description
	out := step.Run(ctx, v.logger, "Reasoning", "", func(ctx context.Context) (string, error) {
		req, err := llm.PromptRequest(kind, values)
		if err != nil {
			return "", err
		}
		return v.generator.Generate(ctx, req)
	})
	if out.Degraded() {
		result.ReasoningError = out.Err.Error()
		return result, nil
	}

	switch reasoning {
	case ReasoningDescription:
		result.Reasoning = out.Value
	case ReasoningDiagram:
		result.Explanation = out.Value
	case ReasoningQA:
		result.Answer = out.Value
	}
	v.logger.Info(ctx, "Reasoning complete: %s", reasoning)
	return result, nil
}

func (v *implVision) DescribeOnly(ctx context.Context, imagePath string) (string, error) {
	return v.analyzer.Describe(ctx, imagePath, vision.DetailMedium)
}

func reasoningPrompt(reasoning Reasoning, question string) (map[string]string, prompts.Kind, error) {
	switch reasoning {
	case ReasoningDescription:
		return map[string]string{}, prompts.ImageDescription, nil
	case ReasoningDiagram:
		return map[string]string{}, prompts.DiagramExplanation, nil
	case ReasoningQA:
		if question == "" {
			return nil, "", apperr.New(apperr.ErrValidation, "question required for qa reasoning")
		}
		return map[string]string{"question": question}, prompts.ScreenQA, nil
	}
	return nil, "", apperr.New(apperr.ErrValidation, "unknown reasoning type: %s (want description, diagram or qa)", reasoning)
}

func descriptionField(kind prompts.Kind) string {
	switch kind {
	case prompts.DiagramExplanation:
		return "diagram_description"
	case prompts.ScreenQA:
		return "screenshot_description"
	}
	return "image_description"
}
