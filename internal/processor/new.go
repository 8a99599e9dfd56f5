package processor

import (
	"github.com/nguyentantai21042004/genai-workshop/internal/config"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
	"github.com/nguyentantai21042004/genai-workshop/internal/output"
	"github.com/nguyentantai21042004/genai-workshop/internal/pipeline"
)

type implProcessor struct {
	audio  pipeline.Audio
	vision pipeline.Vision
	writer output.Writer
	paths  config.PathsConfig
	logger logger.Logger
}

// New creates a Processor that routes audio files to the audio pipeline and
// images to the vision pipeline, writing results under paths.Output.
func New(audio pipeline.Audio, vision pipeline.Vision, writer output.Writer, paths config.PathsConfig, log logger.Logger) Processor {
	return &implProcessor{
		audio:  audio,
		vision: vision,
		writer: writer,
		paths:  paths,
		logger: log,
	}
}
