package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/genai-workshop/internal/formatter"
)

func newMultimodalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multimodal",
		Short: "Commands combining audio and images",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "whiteboard AUDIO IMAGE",
		Short: "Combine a meeting recording with a whiteboard photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			result, err := svc.multimodal.ProcessWhiteboardMeeting(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			out, err := formatter.JSON(result)
			if err != nil {
				return err
			}
			return svc.writer.WriteDocument(ctx, a.outputPath, title(args[0]), out)
		},
	})
	return cmd
}
