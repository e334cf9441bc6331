package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/quillbot/pkg/log"
)

// CustomConfig points at any OpenAI-compatible chat completions endpoint,
// e.g. a self-hosted gateway.
type CustomConfig struct {
	BaseURL string `env:"CUSTOM_OPENAI_BASE_URL,required,notEmpty"`
	APIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
}

func NewCustomConfig(ctx context.Context) *CustomConfig {
	c := &CustomConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Custom provider config")
	}
	return c
}
