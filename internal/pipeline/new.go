package pipeline

import (
	"github.com/nguyentantai21042004/genai-workshop/internal/llm"
	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
	"github.com/nguyentantai21042004/genai-workshop/internal/summarizer"
	"github.com/nguyentantai21042004/genai-workshop/internal/transcribe"
	"github.com/nguyentantai21042004/genai-workshop/internal/vision"
)

type implAudio struct {
	transcriber  transcribe.Transcriber
	summarizer   summarizer.Summarizer
	chunkSeconds int
	logger       logger.Logger
}

// NewAudio creates an Audio pipeline. chunkSeconds sizes the audio windows
// reported for long WAV recordings.
func NewAudio(t transcribe.Transcriber, s summarizer.Summarizer, chunkSeconds int, log logger.Logger) Audio {
	return &implAudio{
		transcriber:  t,
		summarizer:   s,
		chunkSeconds: chunkSeconds,
		logger:       log,
	}
}

type implMeetingMinutes struct {
	audio     Audio
	generator llm.Generator
	logger    logger.Logger
}

func NewMeetingMinutes(audio Audio, generator llm.Generator, log logger.Logger) MeetingMinutes {
	return &implMeetingMinutes{
		audio:     audio,
		generator: generator,
		logger:    log,
	}
}

type implVision struct {
	analyzer  vision.Analyzer
	generator llm.Generator
	logger    logger.Logger
}

func NewVision(analyzer vision.Analyzer, generator llm.Generator, log logger.Logger) Vision {
	return &implVision{
		analyzer:  analyzer,
		generator: generator,
		logger:    log,
	}
}

type implReceipt struct {
	ocr       vision.OCR
	generator llm.Generator
	logger    logger.Logger
}

func NewReceipt(ocr vision.OCR, generator llm.Generator, log logger.Logger) Receipt {
	return &implReceipt{
		ocr:       ocr,
		generator: generator,
		logger:    log,
	}
}

type implDiagram struct {
	vision    Vision
	generator llm.Generator
	logger    logger.Logger
}

func NewDiagram(v Vision, generator llm.Generator, log logger.Logger) Diagram {
	return &implDiagram{
		vision:    v,
		generator: generator,
		logger:    log,
	}
}

type implScreenQA struct {
	vision    Vision
	generator llm.Generator
	logger    logger.Logger
}

func NewScreenQA(v Vision, generator llm.Generator, log logger.Logger) ScreenQA {
	return &implScreenQA{
		vision:    v,
		generator: generator,
		logger:    log,
	}
}

type implMultimodal struct {
	audio     Audio
	vision    Vision
	generator llm.Generator
	logger    logger.Logger
}

func NewMultimodal(audio Audio, v Vision, generator llm.Generator, log logger.Logger) Multimodal {
	return &implMultimodal{
		audio:     audio,
		vision:    v,
		generator: generator,
		logger:    log,
	}
}
