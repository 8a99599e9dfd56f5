package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/genai-workshop/internal/config"
	"github.com/nguyentantai21042004/genai-workshop/internal/processor"
	"github.com/nguyentantai21042004/genai-workshop/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Process audio and images dropped into an inbox directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			paths := a.cfg.Paths
			if input != "" {
				paths.Input = input
			}
			// The global --output names the results directory here.
			if a.outputPath != "" {
				paths.Output = a.outputPath
			}
			if err := ensureDirectories(paths); err != nil {
				return err
			}

			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			proc := processor.New(svc.audio, svc.vision, svc.writer, paths, a.log)

			w, err := watcher.New(paths.Input, proc.Process, a.log, a.cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			a.log.Info(ctx, "System: %s/%s, backend: %s", runtime.GOOS, runtime.GOARCH, svc.provider.Name())
			a.log.Info(ctx, "Monitoring: %s", paths.Input)
			a.log.Info(ctx, "Output: %s", paths.Output)
			a.log.Info(ctx, "Archived: %s", paths.Archived)
			a.log.Info(ctx, "Press Ctrl+C to stop")

			return w.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "inbox directory (default from config)")
	return cmd
}

// ensureDirectories creates the inbox, output and archive directories
func ensureDirectories(paths config.PathsConfig) error {
	for _, dir := range []string{paths.Input, paths.Output, paths.Archived} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
