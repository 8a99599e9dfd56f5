package output

import (
	"io"

	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
)

type implWriter struct {
	stdout io.Writer
	logger logger.Logger
}

// New creates a Writer that sends stdout-bound results to stdout.
func New(stdout io.Writer, log logger.Logger) Writer {
	return &implWriter{
		stdout: stdout,
		logger: log,
	}
}
