package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// DefaultSystemPrompt is the Autoclerk persona sent as the first message of
// every conversation unless SYSTEM_PROMPT overrides it.
const DefaultSystemPrompt = "You are Autoclerk, a friendly AI assistant specialized in finance and office automation. "

type Config struct {
	// Server
	Port         string `env:"PORT" envDefault:"8080"`
	MaxBodyBytes int64  `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// Upstream LLM
	Provider        string        `env:"LLM_PROVIDER" envDefault:"groq"`
	Model           string        `env:"LLM_MODEL" envDefault:"openai/gpt-oss-20b"`
	SystemPrompt    string        `env:"SYSTEM_PROMPT"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"60s"`

	// Groq
	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqBaseURL string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`

	// Gemini AI
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIKey returns the credential of the selected provider.
func (c *Config) APIKey() string {
	switch c.Provider {
	case ProviderGemini:
		return c.GeminiAPIKey
	default:
		return c.GroqAPIKey
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.Provider {
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			result = multierror.Append(result, errors.New("GROQ_API_KEY environment variable is not set"))
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			result = multierror.Append(result, errors.New("GEMINI_API_KEY environment variable is not set"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown LLM_PROVIDER %q (want %q or %q)", c.Provider, ProviderGroq, ProviderGemini))
	}

	if c.Model == "" {
		result = multierror.Append(result, errors.New("LLM_MODEL must not be empty"))
	}
	if c.UpstreamTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout))
	}
	if c.MaxBodyBytes <= 0 {
		result = multierror.Append(result, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes))
	}

	return result.ErrorOrNil()
}
