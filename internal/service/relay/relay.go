// Package relay is the application service every transport talks to: it owns
// the session registry and runs turns against the configured completer.
package relay

import (
	"context"

	"github.com/sandevgo/quillbot/internal/chat"
	"github.com/sandevgo/quillbot/internal/config"
	"github.com/sandevgo/quillbot/internal/core"
	"github.com/sandevgo/quillbot/pkg/log"
)

type Relay struct {
	registry  *chat.Registry
	completer core.Completer
}

func New(completer core.Completer, cfg *config.AppConfig) *Relay {
	return &Relay{
		registry:  chat.NewRegistry(completer, cfg.Model, cfg.MaxTokens),
		completer: completer,
	}
}

// Chat runs one turn for the session bound to key, creating the session on
// first use. With useContext set and a non-empty context store, the store's
// formatted block is folded into the system prompt. Returns the reply and
// the history length after the turn; on failure the user message stays in
// history, so the returned length still reflects it.
func (r *Relay) Chat(ctx context.Context, key, text string, useContext bool) (string, int, error) {
	if !r.completer.HasCredential() {
		return "", 0, core.ErrMissingCredential
	}

	entry := r.registry.Resolve(key)

	var (
		reply string
		err   error
	)
	if useContext && entry.Contexts.Len() > 0 {
		reply, err = entry.Session.SendWithContext(ctx, text, entry.Contexts.FormatAll())
	} else {
		reply, err = entry.Session.Send(ctx, text, "")
	}
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", key).Msg("turn failed")
		return "", entry.Session.HistoryLen(), err
	}
	return reply, entry.Session.HistoryLen(), nil
}

// Touch creates the session pair for key if it does not exist yet. Used by
// transports whose session is fixed at startup rather than minted per caller.
func (r *Relay) Touch(key string) {
	r.registry.Resolve(key)
}

// AddContext registers a named snippet on an existing session. Matching the
// reference behavior, a session comes into being through chat activity;
// adding context to a never-seen key is an error.
func (r *Relay) AddContext(key, name, content string) ([]string, error) {
	entry, ok := r.registry.Lookup(key)
	if !ok {
		return nil, core.ErrNoSession
	}
	entry.Contexts.Add(name, content)
	return entry.Contexts.Names(), nil
}

// ListContexts returns the snippet names for key, or an empty list for a
// never-seen key.
func (r *Relay) ListContexts(key string) []string {
	entry, ok := r.registry.Lookup(key)
	if !ok {
		return []string{}
	}
	return entry.Contexts.Names()
}

// History returns the message log for key, empty for a never-seen key.
func (r *Relay) History(key string) []core.Message {
	entry, ok := r.registry.Lookup(key)
	if !ok {
		return []core.Message{}
	}
	return entry.Session.History()
}

// ClearHistory empties the session's history. Unknown keys are an error
// because there is nothing to clear.
func (r *Relay) ClearHistory(key string) error {
	entry, ok := r.registry.Lookup(key)
	if !ok {
		return core.ErrNoSession
	}
	entry.Session.Clear()
	return nil
}

// Summarize asks the model to summarize the session. An empty (or unseen)
// session is answered locally without a remote call, so no credential is
// required for that path. Summarizing a live conversation records the
// request and reply in history like any other turn.
func (r *Relay) Summarize(ctx context.Context, key string) (string, error) {
	entry := r.registry.Resolve(key)
	if entry.Session.HistoryLen() > 0 && !r.completer.HasCredential() {
		return "", core.ErrMissingCredential
	}
	return entry.Session.Summarize(ctx)
}

// SaveConversation snapshots the session's {model, conversation} document to
// path as JSON.
func (r *Relay) SaveConversation(key, path string) error {
	entry, ok := r.registry.Lookup(key)
	if !ok {
		return core.ErrNoSession
	}
	return entry.Session.SaveFile(path)
}

// LoadConversation replaces the session's history with a snapshot, creating
// the session if needed. A malformed snapshot leaves history untouched.
func (r *Relay) LoadConversation(key, path string) error {
	entry := r.registry.Resolve(key)
	return entry.Session.LoadFile(path)
}
