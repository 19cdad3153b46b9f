package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/promptgate/internal/domain"
	"github.com/davidbz/promptgate/internal/observability"
	"github.com/davidbz/promptgate/internal/prompt"
	"github.com/davidbz/promptgate/internal/provider/inference"
	"github.com/davidbz/promptgate/internal/provider/openai"
)

// Backend names accepted by GATEWAY_BACKEND.
const (
	BackendInference = "inference"
	BackendOpenAI    = "openai"
	BackendEcho      = "echo"
)

// Config represents the gateway configuration.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Log       observability.LogConfig
	Gateway   GatewayConfig
	Prompt    prompt.Config
	OpenAI    openai.Config
	Inference inference.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int `env:"SERVER_PORT"             envDefault:"8080"`
	ReadTimeout     int `env:"SERVER_READ_TIMEOUT"     envDefault:"30"`
	WriteTimeout    int `env:"SERVER_WRITE_TIMEOUT"    envDefault:"120"`
	ShutdownTimeout int `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"15"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// GatewayConfig selects the completion backend and model.
type GatewayConfig struct {
	Backend string `env:"GATEWAY_BACKEND" envDefault:"inference"`
	Model   string `env:"GATEWAY_MODEL"   envDefault:"Llama-3.3-70B-Instruct"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Server    *ServerConfig
	CORS      *CORSConfig
	Log       *observability.LogConfig
	Gateway   *GatewayConfig
	Prompt    *prompt.Config
	OpenAI    *openai.Config
	Inference *inference.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// Validate checks that everything needed to serve traffic is present.
func (c *Config) Validate() error {
	if c.Gateway.Model == "" {
		return &domain.ConfigurationError{Field: "GATEWAY_MODEL", Reason: ""}
	}

	switch c.Gateway.Backend {
	case BackendInference:
		if c.Inference.Endpoint == "" {
			return &domain.ConfigurationError{Field: "INFERENCE_ENDPOINT", Reason: ""}
		}
		if c.Inference.APIKey == "" {
			return &domain.ConfigurationError{Field: "INFERENCE_API_KEY", Reason: ""}
		}
	case BackendOpenAI:
		if c.OpenAI.BaseURL == "" {
			return &domain.ConfigurationError{Field: "OPENAI_BASE_URL", Reason: ""}
		}
		if c.OpenAI.APIKey == "" {
			return &domain.ConfigurationError{Field: "OPENAI_API_KEY", Reason: ""}
		}
	case BackendEcho:
	default:
		return &domain.ConfigurationError{
			Field:  "GATEWAY_BACKEND",
			Reason: "unknown backend " + c.Gateway.Backend,
		}
	}

	if c.Prompt.RedisAddr == "" && c.Prompt.Dir == "" {
		return &domain.ConfigurationError{Field: "PROMPT_DIR", Reason: ""}
	}

	return nil
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Out:       dig.Out{},
		Server:    &cfg.Server,
		CORS:      &cfg.CORS,
		Log:       &cfg.Log,
		Gateway:   &cfg.Gateway,
		Prompt:    &cfg.Prompt,
		OpenAI:    &cfg.OpenAI,
		Inference: &cfg.Inference,
	}
}
