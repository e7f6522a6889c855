package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/pressdigest/internal/digest"
	"github.com/dgallion1/pressdigest/internal/summarize"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Summarization
	AnthropicAPIKey    string
	AnthropicModel     string
	AnthropicEndpoint  string
	SummaryMaxTokens   int
	SummaryTemperature float64
	MaxInputTokens     int
	SummaryTimeout     time.Duration

	// Worker pool
	WorkerCount  int
	MaxQueueSize int
	MaxRetries   int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Report template
	TemplateFile string
	LogoPath     string
	Department   string
}

// Load reads the environment. Files named in envFiles (or ".env" when none
// are given) are loaded first; variables already set in the environment win.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("PRESSDIGEST_API_KEY"),

		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:     envOr("ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
		AnthropicEndpoint:  envOr("ANTHROPIC_ENDPOINT", summarize.DefaultEndpoint),
		SummaryMaxTokens:   envInt("SUMMARY_MAX_TOKENS", 300),
		SummaryTemperature: envFloat("SUMMARY_TEMPERATURE", 0.3),
		MaxInputTokens:     envInt("MAX_INPUT_TOKENS", 6000),
		SummaryTimeout:     envDuration("SUMMARY_TIMEOUT", 60*time.Second),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 20),
		MaxRetries:   envInt("MAX_RETRIES", 3),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		TemplateFile: os.Getenv("TEMPLATE_FILE"),
		LogoPath:     os.Getenv("LOGO_PATH"),
		Department:   os.Getenv("DEPARTMENT"),
	}

	if cfg.SummaryMaxTokens <= 0 {
		cfg.SummaryMaxTokens = 300
	}
	if cfg.SummaryTemperature < 0 || cfg.SummaryTemperature > 1 {
		cfg.SummaryTemperature = 0.3
	}
	if cfg.MaxInputTokens < 0 {
		cfg.MaxInputTokens = 0
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 20
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 3
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks the keys the server cannot run without.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("PRESSDIGEST_API_KEY is required")
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.TemplateFile != "" {
		if _, err := os.Stat(c.TemplateFile); err != nil {
			return fmt.Errorf("TEMPLATE_FILE: %w", err)
		}
	}
	return nil
}

// Summarizer returns the summarization client settings.
func (c Config) Summarizer() summarize.Config {
	return summarize.Config{
		Endpoint:       c.AnthropicEndpoint,
		APIKey:         c.AnthropicAPIKey,
		Model:          c.AnthropicModel,
		MaxTokens:      c.SummaryMaxTokens,
		Temperature:    c.SummaryTemperature,
		MaxInputTokens: c.MaxInputTokens,
		Timeout:        c.SummaryTimeout,
	}
}

// Detection returns the detection config, overlaid with TemplateFile when
// one is set. Keys missing from the file keep their defaults.
func (c Config) Detection() (digest.Config, error) {
	cfg := digest.DefaultConfig()
	if c.TemplateFile == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(c.TemplateFile)
	if err != nil {
		return cfg, fmt.Errorf("read template: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse template %s: %w", c.TemplateFile, err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
