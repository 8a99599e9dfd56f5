package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/chunker"
	"github.com/nguyentantai21042004/genai-workshop/internal/formatter"
	"github.com/nguyentantai21042004/genai-workshop/internal/pipeline"
	"github.com/nguyentantai21042004/genai-workshop/internal/summarizer"
	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
)

func newAudioCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Audio processing commands",
	}
	cmd.AddCommand(
		newTranscribeCmd(a),
		newSummarizeCmd(a),
		newMeetingMinutesCmd(a),
		newChaptersCmd(a),
	)
	return cmd
}

func newTranscribeCmd(a *app) *cobra.Command {
	var (
		timestamps bool
		language   string
		translate  bool
	)
	cmd := &cobra.Command{
		Use:   "transcribe FILE",
		Short: "Transcribe an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}

			opts := transcribe.Options{Language: language, Task: transcribe.TaskTranscribe}
			if translate {
				opts.Task = transcribe.TaskTranslate
			}
			result, err := svc.audio.TranscribeOnly(ctx, args[0], opts)
			if err != nil {
				return err
			}
			return svc.writer.WriteTranscript(ctx, a.outputPath, title(args[0]), result, timestamps)
		},
	}
	cmd.Flags().BoolVar(&timestamps, "with-timestamps", false, "include segment timestamps")
	cmd.Flags().StringVar(&language, "language", "", "spoken language code (default: auto-detect)")
	cmd.Flags().BoolVar(&translate, "translate", false, "translate the speech to English")
	return cmd
}

func newSummarizeCmd(a *app) *cobra.Command {
	var (
		style   string
		format  string
		actions bool
	)
	cmd := &cobra.Command{
		Use:   "summarize FILE",
		Short: "Transcribe and summarize an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if format == "" {
				format = a.cfg.Output.SummaryFormat
			}
			if format != formatter.FormatText && format != formatter.FormatMarkdown {
				return apperr.New(apperr.ErrUnsupportedFormat, "unsupported format: %s (want text or markdown)", format)
			}
			s := summarizer.Style(style)
			if s != summarizer.StyleConcise && s != summarizer.StyleDetailed {
				return apperr.New(apperr.ErrValidation, "unknown summary style: %s (want concise or detailed)", style)
			}

			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			result, err := svc.audio.Process(ctx, args[0], pipeline.AudioOptions{
				Summarize:      true,
				Style:          s,
				ExtractActions: actions,
			})
			if err != nil {
				return err
			}

			doc := result.Summary
			if actions {
				doc += "\n" + formatter.FormatMarkdownSummary(result.ActionItems, "Action Items")
			}
			if format == formatter.FormatText {
				doc = stripHeadings(doc)
			}
			return svc.writer.WriteDocument(ctx, a.outputPath, title(args[0]), doc)
		},
	}
	cmd.Flags().StringVar(&style, "style", string(summarizer.StyleConcise), "summary style: concise or detailed")
	cmd.Flags().StringVar(&format, "format", "", "output format: text or markdown (default from config)")
	cmd.Flags().BoolVar(&actions, "actions", false, "also extract action items")
	return cmd
}

func newMeetingMinutesCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "meeting-minutes FILE",
		Short: "Generate structured meeting minutes from a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if format == "" {
				format = a.cfg.Output.StructuredFormat
			}
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			out, err := svc.minutes.GenerateFormatted(ctx, args[0], format)
			if err != nil {
				return err
			}
			return svc.writer.WriteDocument(ctx, a.outputPath, title(args[0]), out)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: json or markdown (default from config)")
	return cmd
}

func newChaptersCmd(a *app) *cobra.Command {
	var seconds int
	cmd := &cobra.Command{
		Use:   "chapters FILE",
		Short: "Split a transcript into timed chapters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if seconds < 0 {
				return apperr.New(apperr.ErrValidation, "chapter length must be positive, got %d", seconds)
			}
			if seconds == 0 {
				seconds = a.cfg.Processing.ChapterSeconds
			}
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			result, err := svc.audio.TranscribeOnly(ctx, args[0], transcribe.Options{})
			if err != nil {
				return err
			}
			return svc.writer.WriteDocument(ctx, a.outputPath, title(args[0]), formatChapters(result.Segments, seconds))
		},
	}
	cmd.Flags().IntVar(&seconds, "chapter-length", 0, "target chapter length in seconds (default from config)")
	return cmd
}

// formatChapters groups segments into chapters of at most seconds each.
func formatChapters(segments []transcribe.Segment, seconds int) string {
	var chapters []string
	for group := range chunker.ByDuration(segments, float64(seconds)) {
		texts := make([]string, len(group))
		for i, seg := range group {
			texts[i] = seg.Text
		}
		chapters = append(chapters, fmt.Sprintf("Chapter %d: %.2fs - %.2fs\n%s\n",
			len(chapters)+1, group[0].Start, group[len(group)-1].End, strings.Join(texts, " ")))
	}
	return strings.Join(chapters, "\n")
}

// stripHeadings drops markdown heading lines for plain text output.
func stripHeadings(markdown string) string {
	var lines []string
	for line := range strings.SplitSeq(markdown, "\n") {
		if !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// title names a document after its input file.
func title(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
