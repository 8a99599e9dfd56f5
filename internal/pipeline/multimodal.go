package pipeline

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/step"
)

const combineSystem = "You are a helpful assistant that creates comprehensive meeting notes from multiple sources."

const combinePrompt = `Based on this meeting transcript and whiteboard description, create comprehensive meeting notes.

Meeting Transcript:
%s

Whiteboard Description:
%s

Create structured meeting notes that combine information from both sources.`

func (m *implMultimodal) ProcessWhiteboardMeeting(ctx context.Context, audioPath, imagePath string) (*WhiteboardResult, error) {
	m.logger.Info(ctx, "Processing whiteboard meeting")

	audio, err := m.audio.Process(ctx, audioPath, AudioOptions{Summarize: true})
	if err != nil {
		return nil, err
	}

	whiteboard, err := m.vision.DescribeOnly(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	result := &WhiteboardResult{
		Transcript:            audio.TranscriptText,
		WhiteboardDescription: whiteboard,
	}

	notes := step.Run(ctx, m.logger, "Combining sources", CombineFailed, func(ctx context.Context) (string, error) {
		return m.generator.Generate(ctx, llm.Request{
			Prompt: fmt.Sprintf(combinePrompt, audio.TranscriptText, whiteboard),
			System: combineSystem,
		})
	})

	result.CombinedNotes = notes.Value
	if notes.Degraded() {
		result.Error = notes.Err.Error()
		return result, nil
	}
	result.Summary = audio.Summary
	return result, nil
}
