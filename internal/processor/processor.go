package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/formatter"
	"github.com/nguyentantai21042004/genai-workshop/internal/pipeline"
	"github.com/nguyentantai21042004/genai-workshop/internal/validator"
)

// Process runs the pipeline matching the file type, writes the results and
// archives the input. A file that fails stays in the inbox.
func (p *implProcessor) Process(ctx context.Context, filePath string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "Starting processing: %s", filePath)

	kind, err := validator.DetectFileType(filePath)
	if err != nil {
		return fmt.Errorf("detect file type: %w", err)
	}

	var outputs []string
	switch kind {
	case validator.Audio:
		outputs, err = p.processAudio(ctx, filePath)
	case validator.Image:
		outputs, err = p.processImage(ctx, filePath)
	default:
		return apperr.New(apperr.ErrFileFormat, "unsupported file type: %s", filepath.Ext(filePath))
	}
	if err != nil {
		return err
	}

	if err := p.moveToArchived(ctx, filePath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "Processing completed: %s -> %s (%s)", filePath, strings.Join(outputs, ", "), time.Since(startTime).Round(time.Millisecond))
	return nil
}

func (p *implProcessor) processAudio(ctx context.Context, filePath string) ([]string, error) {
	result, err := p.audio.Process(ctx, filePath, pipeline.AudioOptions{Summarize: true, ExtractActions: true})
	if err != nil {
		return nil, fmt.Errorf("process audio: %w", err)
	}

	name := stem(filePath)
	srtPath := filepath.Join(p.paths.Output, name+".srt")
	if err := p.writer.WriteTranscript(ctx, srtPath, name, result.Transcript, true); err != nil {
		return nil, fmt.Errorf("write transcript: %w", err)
	}

	notes := result.Summary + "\n" + formatter.FormatMarkdownSummary(result.ActionItems, "Action Items")
	notesPath := filepath.Join(p.paths.Output, name+"_notes.docx")
	if err := p.writer.WriteDocument(ctx, notesPath, name, notes); err != nil {
		return nil, fmt.Errorf("write notes: %w", err)
	}

	return []string{srtPath, notesPath}, nil
}

func (p *implProcessor) processImage(ctx context.Context, filePath string) ([]string, error) {
	result, err := p.vision.Process(ctx, filePath, pipeline.ReasoningDescription, "")
	if err != nil {
		return nil, fmt.Errorf("process image: %w", err)
	}

	doc := formatter.FormatMarkdownSummary(result.Description, "Description")
	if result.Reasoning != "" {
		doc += "\n" + formatter.FormatMarkdownSummary(result.Reasoning, "Explanation")
	}

	name := stem(filePath)
	docPath := filepath.Join(p.paths.Output, name+".md")
	if err := p.writer.WriteDocument(ctx, docPath, name, doc); err != nil {
		return nil, fmt.Errorf("write description: %w", err)
	}
	return []string{docPath}, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
