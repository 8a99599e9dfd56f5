package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/genai-workshop/internal/pipeline"
	"github.com/nguyentantai21042004/genai-workshop/internal/vision"
)

func newVisionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vision",
		Short: "Image processing commands",
	}
	cmd.AddCommand(
		newDescribeCmd(a),
		newOCRCmd(a),
		newReceiptCmd(a),
		newDiagramCmd(a),
		newQACmd(a),
	)
	return cmd
}

func newDescribeCmd(a *app) *cobra.Command {
	var detail string
	cmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Describe an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			description, err := svc.analyzer.Describe(ctx, args[0], vision.Detail(detail))
			if err != nil {
				return err
			}
			return svc.writer.WriteDocument(ctx, a.outputPath, title(args[0]), description)
		},
	}
	cmd.Flags().StringVar(&detail, "detail", string(vision.DetailMedium), "detail level: low, medium or high")
	return cmd
}

func newOCRCmd(a *app) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "ocr FILE",
		Short: "Extract text from an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			text, err := svc.ocr.ExtractText(ctx, args[0], !raw)
			if err != nil {
				return err
			}
			return svc.writer.WriteDocument(ctx, a.outputPath, title(args[0]), text)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "skip the language model cleanup pass")
	return cmd
}

func newReceiptCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "extract-receipt FILE",
		Short: "Extract structured data from a receipt photo",
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
			out, err := svc.receipt.ParseFormatted(ctx, args[0], format)
			if err != nil {
				return err
			}
			return svc.writer.WriteDocument(ctx, a.outputPath, title(args[0]), out)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: json or markdown (default from config)")
	return cmd
}

func newDiagramCmd(a *app) *cobra.Command {
	var detail string
	cmd := &cobra.Command{
		Use:   "analyze-diagram FILE",
		Short: "Explain a diagram, flowchart or code screenshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			explanation, err := svc.diagram.Explain(ctx, args[0], pipeline.DiagramDetail(detail))
			if err != nil {
				return err
			}
			return svc.writer.WriteDocument(ctx, a.outputPath, title(args[0]), explanation)
		},
	}
	cmd.Flags().StringVar(&detail, "detail", string(pipeline.DiagramDetailed), "detail level: basic, detailed or technical")
	return cmd
}

func newQACmd(a *app) *cobra.Command {
	var questions []string
	cmd := &cobra.Command{
		Use:   "qa FILE",
		Short: "Answer questions about a screenshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}

			if len(questions) == 1 {
				answer, err := svc.screenQA.Answer(ctx, args[0], questions[0])
				if err != nil {
					return err
				}
				return svc.writer.WriteDocument(ctx, a.outputPath, title(args[0]), answer)
			}

			answers, err := svc.screenQA.AnswerAll(ctx, args[0], questions)
			if err != nil {
				return err
			}
			return svc.writer.WriteDocument(ctx, a.outputPath, title(args[0]), formatQA(answers))
		},
	}
	cmd.Flags().StringArrayVar(&questions, "question", nil, "question to answer (repeatable)")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}

func formatQA(answers []pipeline.QA) string {
	blocks := make([]string, len(answers))
	for i, qa := range answers {
		blocks[i] = fmt.Sprintf("Q: %s\nA: %s\n", qa.Question, qa.Answer)
	}
	return strings.Join(blocks, "\n")
}
