package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
	"github.com/nguyentantai21042004/genai-workshop/internal/backend"
	"github.com/nguyentantai21042004/genai-workshop/internal/config"
)

const ollamaBinary = "ollama"

func newModelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect and install backend models",
	}
	cmd.AddCommand(newModelsListCmd(a), newModelsPullCmd(a))
	return cmd
}

func newModelsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the models the backend serves and check the configured ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			if !svc.generator.CheckConnection(ctx) {
				return apperr.New(apperr.ErrModelUnavailable, "cannot reach the %s backend", svc.provider.Name())
			}

			available, err := svc.provider.ListModels(ctx)
			if err != nil {
				return apperr.Wrap(apperr.ErrModel, err, "list models")
			}
			m := modelsFor(a.cfg)
			return svc.writer.WriteDocument(ctx, a.outputPath, "Models", formatModels(available, m))
		},
	}
}

func newModelsPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull NAME",
		Short: "Download a model with ollama pull",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.cfg.Backend.Provider != config.ProviderOpenAI {
				return apperr.New(apperr.ErrConfiguration, "models pull needs the %s provider, got %s", config.ProviderOpenAI, a.cfg.Backend.Provider)
			}
			if !a.executor.Available(ollamaBinary) {
				return apperr.New(apperr.ErrConfiguration, "%s not found on PATH", ollamaBinary)
			}

			a.log.Info(ctx, "Pulling model: %s", args[0])
			out, err := a.executor.Execute(ctx, ollamaBinary, "pull", args[0])
			if err != nil {
				return apperr.Wrap(apperr.ErrModelLoad, err, "pull %s", args[0])
			}
			a.log.Debug(ctx, "ollama output: %s", strings.TrimSpace(out))

			_, err = fmt.Fprintf(a.stdout, "Model %s pulled\n", args[0])
			return err
		},
	}
}

// formatModels lists served models, then whether each configured model is
// among them.
func formatModels(available []string, m models) string {
	var b strings.Builder
	for _, name := range available {
		fmt.Fprintf(&b, "%s\n", name)
	}
	b.WriteString("\n")
	for _, c := range []struct{ role, name string }{{"llm", m.llm}, {"vision", m.vision}} {
		status := "missing"
		if backend.HasModel(available, c.name) {
			status = "available"
		}
		fmt.Fprintf(&b, "%s model %s: %s\n", c.role, c.name, status)
	}
	return b.String()
}
