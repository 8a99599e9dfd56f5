package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
)

type Config struct {
	Backend     BackendConfig     `yaml:"backend" toml:"backend"`
	Models      ModelsConfig      `yaml:"models" toml:"models"`
	Limits      LimitsConfig      `yaml:"limits" toml:"limits"`
	Processing  ProcessingConfig  `yaml:"processing" toml:"processing"`
	Output      OutputConfig      `yaml:"output" toml:"output"`
	Paths       PathsConfig       `yaml:"paths" toml:"paths"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
	Performance PerformanceConfig `yaml:"performance" toml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini" toml:"gemini"`
}

type BackendConfig struct {
	Provider       string `yaml:"provider" toml:"provider"`
	BaseURL        string `yaml:"base_url" toml:"base_url"`
	WhisperBaseURL string `yaml:"whisper_base_url" toml:"whisper_base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" toml:"timeout_seconds"`
}

type ModelsConfig struct {
	LLM     string `yaml:"llm" toml:"llm"`
	Vision  string `yaml:"vision" toml:"vision"`
	Whisper string `yaml:"whisper" toml:"whisper"`
}

type LimitsConfig struct {
	MaxAudioFileSizeMB    int     `yaml:"max_audio_file_size_mb" toml:"max_audio_file_size_mb"`
	MaxImageFileSizeMB    int     `yaml:"max_image_file_size_mb" toml:"max_image_file_size_mb"`
	MaxAudioDurationHours float64 `yaml:"max_audio_duration_hours" toml:"max_audio_duration_hours"`
}

type ProcessingConfig struct {
	AudioChunkSeconds   int `yaml:"audio_chunk_seconds" toml:"audio_chunk_seconds"`
	MaxTranscriptTokens int `yaml:"max_transcript_tokens" toml:"max_transcript_tokens"`
	ChapterSeconds      int `yaml:"chapter_seconds" toml:"chapter_seconds"`
}

type OutputConfig struct {
	SummaryFormat    string `yaml:"summary_format" toml:"summary_format"`
	StructuredFormat string `yaml:"structured_format" toml:"structured_format"`
}

type PathsConfig struct {
	Input    string `yaml:"input" toml:"input"`
	Output   string `yaml:"output" toml:"output"`
	Archived string `yaml:"archived" toml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" toml:"max_concurrent"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" toml:"api_key"`
	Model  string `yaml:"model" toml:"model"`
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			Provider:       ProviderOpenAI,
			BaseURL:        "http://localhost:11434",
			WhisperBaseURL: "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Models: ModelsConfig{
			LLM:     "llama3.2:latest",
			Vision:  "moondream:latest",
			Whisper: "Systran/faster-whisper-tiny",
		},
		Limits: LimitsConfig{
			MaxAudioFileSizeMB:    500,
			MaxImageFileSizeMB:    10,
			MaxAudioDurationHours: 1.0,
		},
		Processing: ProcessingConfig{
			AudioChunkSeconds:   30,
			MaxTranscriptTokens: 2000,
			ChapterSeconds:      300,
		},
		Output: OutputConfig{
			SummaryFormat:    "markdown",
			StructuredFormat: "json",
		},
		Paths: PathsConfig{
			Input:    "data/inbox",
			Output:   "data/output",
			Archived: "data/archived",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Performance: PerformanceConfig{
			MaxConcurrent: 1,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding variables already set. Missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return apperr.Wrap(apperr.ErrConfiguration, err, "load %s", p)
		}
	}
	return nil
}

// Load builds a Config from defaults, the optional file at path (YAML or
// TOML by extension) and the process environment, in increasing priority.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperr.Wrap(apperr.ErrConfiguration, err, "read config file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return apperr.Wrap(apperr.ErrConfiguration, err, "parse config file")
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return apperr.Wrap(apperr.ErrConfiguration, err, "parse config file")
		}
	default:
		return apperr.New(apperr.ErrConfiguration, "unsupported config file extension %q", filepath.Ext(path))
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return apperr.Wrap(apperr.ErrConfiguration, err, "invalid %s", key)
		}
		*dst = n
		return nil
	}

	str("LLM_MODEL", &c.Models.LLM)
	str("VISION_MODEL", &c.Models.Vision)
	str("WHISPER_MODEL", &c.Models.Whisper)
	str("BACKEND_PROVIDER", &c.Backend.Provider)
	str("OLLAMA_BASE_URL", &c.Backend.BaseURL)
	str("WHISPER_BASE_URL", &c.Backend.WhisperBaseURL)
	str("GEMINI_API_KEY", &c.Gemini.APIKey)
	str("GEMINI_MODEL", &c.Gemini.Model)
	str("DEFAULT_SUMMARY_FORMAT", &c.Output.SummaryFormat)
	str("DEFAULT_STRUCTURED_FORMAT", &c.Output.StructuredFormat)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)

	for key, dst := range map[string]*int{
		"OLLAMA_TIMEOUT":         &c.Backend.TimeoutSeconds,
		"AUDIO_CHUNK_SIZE":       &c.Processing.AudioChunkSeconds,
		"MAX_TRANSCRIPT_TOKENS":  &c.Processing.MaxTranscriptTokens,
		"MAX_AUDIO_FILE_SIZE_MB": &c.Limits.MaxAudioFileSizeMB,
		"MAX_IMAGE_FILE_SIZE_MB": &c.Limits.MaxImageFileSizeMB,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup("MAX_AUDIO_DURATION"); ok && v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return apperr.Wrap(apperr.ErrConfiguration, err, "invalid MAX_AUDIO_DURATION")
		}
		c.Limits.MaxAudioDurationHours = f
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	return nil
}

// Timeout is the backend request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// MaxAudioDuration is the longest accepted WAV input.
func (c *Config) MaxAudioDuration() time.Duration {
	return time.Duration(c.Limits.MaxAudioDurationHours * float64(time.Hour))
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return apperr.New(apperr.ErrConfiguration, format, args...)
	}

	switch c.Backend.Provider {
	case ProviderOpenAI:
		if c.Backend.BaseURL == "" {
			return invalid("backend.base_url is required")
		}
		if c.Backend.WhisperBaseURL == "" {
			return invalid("backend.whisper_base_url is required")
		}
		if c.Models.LLM == "" || c.Models.Vision == "" || c.Models.Whisper == "" {
			return invalid("models.llm, models.vision and models.whisper are required")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return invalid("gemini.api_key is required for the gemini provider")
		}
		if c.Gemini.Model == "" {
			c.Gemini.Model = "gemini-2.5-flash"
		}
	default:
		return invalid("backend.provider must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.Backend.Provider)
	}

	if c.Backend.TimeoutSeconds <= 0 {
		return invalid("backend.timeout_seconds must be > 0")
	}
	if c.Limits.MaxAudioFileSizeMB <= 0 || c.Limits.MaxImageFileSizeMB <= 0 {
		return invalid("limits file sizes must be > 0")
	}
	if c.Limits.MaxAudioDurationHours <= 0 {
		return invalid("limits.max_audio_duration_hours must be > 0")
	}
	if c.Processing.MaxTranscriptTokens <= 0 {
		return invalid("processing.max_transcript_tokens must be > 0")
	}

	switch c.Output.SummaryFormat {
	case "text", "markdown":
	default:
		return invalid("output.summary_format must be text or markdown, got %q", c.Output.SummaryFormat)
	}
	switch c.Output.StructuredFormat {
	case "json", "markdown":
	default:
		return invalid("output.structured_format must be json or markdown, got %q", c.Output.StructuredFormat)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}

	if c.Processing.AudioChunkSeconds <= 0 {
		c.Processing.AudioChunkSeconds = 30
	}
	if c.Processing.ChapterSeconds <= 0 {
		c.Processing.ChapterSeconds = 300
	}
	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}

	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("provider=%s llm=%s vision=%s whisper=%s", c.Backend.Provider, c.Models.LLM, c.Models.Vision, c.Models.Whisper)
}
