package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
)

const (
	extDocx = ".docx"
	extSRT  = ".srt"
)

// IsStdout reports whether dest means standard output.
func IsStdout(dest string) bool {
	return dest == "" || dest == "-"
}

func (w *implWriter) WriteDocument(ctx context.Context, dest, title, content string) error {
	if IsStdout(dest) {
		return w.print(content)
	}
	if err := ensureDir(dest); err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(dest), extDocx) {
		if err := markdownToDocx(title, content, dest); err != nil {
			return fmt.Errorf("render docx: %w", err)
		}
	} else if err := writeFile(dest, content); err != nil {
		return err
	}

	w.logger.Info(ctx, "Output written: %s", dest)
	return nil
}

func (w *implWriter) WriteTranscript(ctx context.Context, dest, title string, result *transcribe.Result, timestamps bool) error {
	text := result.Text()
	if timestamps {
		text = result.TextWithTimestamps()
	}
	if IsStdout(dest) {
		return w.print(text)
	}
	if err := ensureDir(dest); err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(dest)) {
	case extSRT:
		if err := writeFile(dest, FormatSRT(result.Segments)); err != nil {
			return err
		}
	case extDocx:
		if err := transcriptToDocx(title, result.Segments, dest); err != nil {
			return fmt.Errorf("render docx: %w", err)
		}
	default:
		if err := writeFile(dest, text); err != nil {
			return err
		}
	}

	w.logger.Info(ctx, "Transcript written: %s (%d segments)", dest, len(result.Segments))
	return nil
}

func (w *implWriter) print(content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if _, err := io.WriteString(w.stdout, content); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

func ensureDir(dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

func writeFile(dest, content string) error {
	if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
