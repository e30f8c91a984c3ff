// Package config defines configuration parsing and helpers.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// PlaceholderGroqAPIKey is the sample value shipped in example env files. It
// is treated the same as an absent key.
const PlaceholderGroqAPIKey = "YOUR_GROQ_API_KEY_HERE"

// Extractor backends.
const (
	ExtractorPDF  = "pdf"
	ExtractorTika = "tika"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`

	GroqAPIKey      string  `env:"GROQ_API_KEY"`
	GroqBaseURL     string  `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel       string  `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`
	GroqTemperature float64 `env:"GROQ_TEMPERATURE" envDefault:"0.7"`
	GroqMaxTokens   int     `env:"GROQ_MAX_TOKENS" envDefault:"500"`
	// GroqTimeout of zero leaves the chat call bounded only by the request context.
	GroqTimeout time.Duration `env:"GROQ_TIMEOUT" envDefault:"0s"`

	// PromptCharLimit caps how many characters of each text are forwarded to the model.
	PromptCharLimit int `env:"PROMPT_CHAR_LIMIT" envDefault:"2000"`
	// VocabularyFile optionally points at a YAML file replacing the built-in keyword list.
	VocabularyFile string `env:"VOCABULARY_FILE"`

	Extractor string `env:"EXTRACTOR" envDefault:"pdf"`
	// TikaURL specifies the base URL for the Apache Tika server used when EXTRACTOR=tika
	TikaURL     string `env:"TIKA_URL" envDefault:"http://tika:9998"`
	MaxUploadMB int64  `env:"MAX_UPLOAD_MB" envDefault:"10"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"resume-matcher"`

	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"90s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout        time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	cfg.Extractor = strings.ToLower(strings.TrimSpace(cfg.Extractor))
	switch cfg.Extractor {
	case ExtractorPDF, ExtractorTika:
	default:
		return Config{}, fmt.Errorf("op=config.Load: unknown EXTRACTOR %q", cfg.Extractor)
	}
	if cfg.PromptCharLimit <= 0 {
		return Config{}, fmt.Errorf("op=config.Load: PROMPT_CHAR_LIMIT must be positive")
	}
	return cfg, nil
}

// LoadDotEnv loads .env.local and .env into the process environment. Variables
// already set win over file values, and missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env.local", ".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("op=config.LoadDotEnv file=%s: %w", f, err)
		}
	}
	return nil
}

// HasGroqCredential reports whether a usable Groq API key is configured.
func (c Config) HasGroqCredential() bool {
	k := strings.TrimSpace(c.GroqAPIKey)
	return k != "" && k != PlaceholderGroqAPIKey
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }
