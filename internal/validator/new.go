package validator

import (
	"time"

	"github.com/nguyentantai21042004/genai-workshop/internal/logger"
)

// Limits bounds accepted input sizes. Zero values disable a check.
type Limits struct {
	MaxAudioSizeMB   float64
	MaxImageSizeMB   float64
	MaxAudioDuration time.Duration
}

// DefaultLimits returns 500MB audio, 10MB image and one hour of audio.
func DefaultLimits() Limits {
	return Limits{
		MaxAudioSizeMB:   500,
		MaxImageSizeMB:   10,
		MaxAudioDuration: time.Hour,
	}
}

type implValidator struct {
	limits Limits
	logger logger.Logger
}

// New creates a Validator enforcing limits.
func New(limits Limits, log logger.Logger) Validator {
	return &implValidator{
		limits: limits,
		logger: log,
	}
}
