package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/quillbot/internal/config"
	"github.com/sandevgo/quillbot/internal/core"
	"github.com/sandevgo/quillbot/internal/service/relay"
	"github.com/sandevgo/quillbot/pkg/conv"
	"github.com/sandevgo/quillbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	svc     *relay.Relay
	router  core.CmdRouter
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	svc *relay.Relay,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		svc:     svc,
		router:  router,
		ownerID: cfg.OwnerID,
	}

	// Carry the signal-scoped context (and its logger) into handlers
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sessionKey := fmt.Sprintf("telegram-%d", c.Chat().ID)

	// Any message from the owner counts as first use of the session, so
	// /context works before the first model turn.
	b.svc.Touch(sessionKey)

	// Slash commands bypass the model entirely
	if result, handled := b.router.Execute(ctx, sessionKey, c.Text()); handled {
		return b.sendMarkdown(c, result)
	}

	_ = c.Notify(tele.Typing)

	// Attached context snippets ride along on every turn; an empty store
	// falls back to the plain system prompt.
	reply, _, err := b.svc.Chat(ctx, sessionKey, c.Text(), true)
	if err != nil {
		logger.Error().Err(err).Str("session", sessionKey).Msg("chat turn failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	return b.sendMarkdown(c, reply)
}

func (b *Bot) sendMarkdown(c tele.Context, text string) error {
	htmlContent := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(text)))
	if htmlContent == "" {
		return nil
	}
	return c.Send(htmlContent, tele.ModeHTML)
}
