package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/quillbot/internal/config"
	"github.com/sandevgo/quillbot/internal/providers/llm"
	"github.com/sandevgo/quillbot/internal/service/command"
	"github.com/sandevgo/quillbot/internal/service/relay"
	"github.com/sandevgo/quillbot/internal/transport/telegram"
	"github.com/sandevgo/quillbot/internal/transport/web"
	"github.com/sandevgo/quillbot/pkg/log"
	"github.com/sandevgo/quillbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	appCfg, svc := newRelay(ctx)

	// Transports
	if appCfg.IsWebSelected() {
		services = append(services, web.NewServer(appCfg, svc))
	}

	if appCfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		router := command.New(command.NewCommands(svc))
		bot, err := telegram.NewBot(ctx, tgCfg, svc, router)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	if len(services) == 0 {
		logger.Fatal().Msg("no transports enabled; set ENABLE_WEB or ENABLE_TELEGRAM")
	}

	return services
}

// newRelay wires config, the completion provider and the relay service.
func newRelay(ctx context.Context) (*config.AppConfig, *relay.Relay) {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	appCfg := config.NewAppConfig(ctx)

	completer, err := llm.NewCompleter(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	return appCfg, relay.New(completer, appCfg)
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
