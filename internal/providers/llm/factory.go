package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/quillbot/internal/config"
	"github.com/sandevgo/quillbot/internal/core"
	"github.com/sandevgo/quillbot/pkg/log"
)

// NewCompleter creates the appropriate Completer based on configuration.
func NewCompleter(ctx context.Context, cfg *config.AppConfig) (core.Completer, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "anthropic":
		ac := config.NewAnthropicConfig(ctx)
		return NewAnthropic(ac.BaseURL, ac.APIKey, cfg.ChatTimeout), nil
	case "custom":
		cc := config.NewCustomConfig(ctx)
		return NewOpenAICompatible(cc.BaseURL, cc.APIKey, cfg.ChatTimeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
