package main

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/genai-workshop/internal/config"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
	"github.com/nguyentantai21042004/genai-workshop/pkg/executor"
)

// app holds the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	outputPath string
	verbose    bool

	cfg      *config.Config
	log      logger.Logger
	executor executor.Executor
	svc      *services
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:   stdout,
		stderr:   stderr,
		executor: executor.New(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "genai",
		Short:         "Local AI utilities for audio and images",
		Long:          `genai transcribes and summarizes recordings, describes and reads images, and combines both, using a local OpenAI-compatible model server or Gemini.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging and full error chains")
	root.PersistentFlags().StringVarP(&a.outputPath, "output", "o", "", "output file (default: stdout; .docx renders a Word document)")

	root.AddCommand(
		newAudioCmd(a),
		newVisionCmd(a),
		newMultimodalCmd(a),
		newAskCmd(a),
		newModelsCmd(a),
		newWatchCmd(a),
	)
	return root
}

// setup loads configuration and the logger, and tags the command context
// with a fresh run id.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	a.log = logger.New(level, cfg.Logging.Format)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	cmd.SetContext(ctx)

	a.log.Debug(ctx, "Starting %s (%s)", cmd.CommandPath(), cfg)
	return nil
}

// services builds the backend and pipelines on first use.
func (a *app) services(ctx context.Context) (*services, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	svc, err := newServices(ctx, a.cfg, a.stdout, a.log)
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}
