package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/quillbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"QUILL_RUNTIME_PATH" envDefault:".quillbot"`
	// Which completion backend to talk to
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"anthropic"`
	Model       string `env:"MODEL" envDefault:"claude-sonnet-4-20250514"`

	// Transport Flags
	EnableWeb      bool   `env:"ENABLE_WEB" envDefault:"true"`
	EnableTelegram bool   `env:"ENABLE_TELEGRAM" envDefault:"false"`
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":5000"`

	// Turn limits
	MaxTokens   int           `env:"MAX_TOKENS" envDefault:"4000"`
	ChatTimeout time.Duration `env:"CHAT_TIMEOUT" envDefault:"120s"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsWebSelected() bool {
	return c.EnableWeb
}
