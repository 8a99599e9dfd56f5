package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/prompts"
	"github.com/nguyentantai21042004/genai-workshop/internal/step"
)

func (s *implScreenQA) Answer(ctx context.Context, imagePath, question string) (string, error) {
	s.logger.Info(ctx, "Answering question about screenshot: %s", imagePath)

	result, err := s.vision.Process(ctx, imagePath, ReasoningQA, question)
	if err != nil {
		return "", err
	}
	if result.Answer == "" {
		if result.ReasoningError != "" {
			return "", apperr.New(apperr.ErrModel, "failed to generate answer: %s", result.ReasoningError)
		}
		return "", apperr.New(apperr.ErrModel, "failed to generate answer")
	}
	return result.Answer, nil
}

func (s *implScreenQA) DescribeScreen(ctx context.Context, imagePath string) (string, error) {
	return s.vision.DescribeOnly(ctx, imagePath)
}

func (s *implScreenQA) AnswerAll(ctx context.Context, imagePath string, questions []string) ([]QA, error) {
	s.logger.Info(ctx, "Answering %d questions about screenshot", len(questions))

	description, err := s.vision.DescribeOnly(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	answers := make([]QA, 0, len(questions))
	for _, q := range questions {
		out := step.Run(ctx, s.logger, "Answering question", "", func(ctx context.Context) (string, error) {
			req, err := llm.PromptRequest(prompts.ScreenQA, map[string]string{
				"screenshot_description": description,
				"question":               q,
			})
			if err != nil {
				return "", err
			}
			return s.generator.Generate(ctx, req)
		})

		answer := out.Value
		if out.Degraded() {
			answer = "Error: " + out.Err.Error()
		}
		answers = append(answers, QA{Question: q, Answer: answer})
	}
	return answers, nil
}
