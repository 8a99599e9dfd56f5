package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/output"
)

func newAskCmd(a *app) *cobra.Command {
	var system string
	cmd := &cobra.Command{
		Use:   "ask PROMPT",
		Short: "Send a prompt to the language model and stream the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}

			chunks, err := svc.generator.Stream(ctx, llm.Request{
				Prompt: strings.Join(args, " "),
				System: system,
			})
			if err != nil {
				return err
			}

			toStdout := output.IsStdout(a.outputPath)
			var reply strings.Builder
			for chunk, err := range chunks {
				if err != nil {
					return err
				}
				if toStdout {
					fmt.Fprint(a.stdout, chunk)
				} else {
					reply.WriteString(chunk)
				}
			}

			if toStdout {
				fmt.Fprintln(a.stdout)
				return nil
			}
			return svc.writer.WriteDocument(ctx, a.outputPath, "Answer", reply.String())
		},
	}
	cmd.Flags().StringVar(&system, "system", "", "system prompt")
	return cmd
}
