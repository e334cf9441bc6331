package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sandevgo/quillbot/internal/core"
	"github.com/sandevgo/quillbot/pkg/log"
	"github.com/sandevgo/quillbot/pkg/tokens"
)

const (
	defaultSystemPrompt = "You are a helpful AI assistant."

	// Python strftime "%A, %B %d, %Y at %I:%M %p" equivalent.
	dateLineLayout = "Monday, January 02, 2006 at 03:04 PM"

	summaryPrompt = "Please provide a brief summary of our conversation so far. Keep it to 2-3 sentences."
	emptySummary  = "No conversation history yet."

	contextPromptFormat = "You are a helpful AI assistant.\n\nAdditional Context:\n%s\n\nUse this context to inform your responses when relevant."
)

// Session owns one linear conversation: an append-only message log and a
// fixed model identifier. The mutex admits at most one in-flight turn, so
// concurrent callers cannot interleave the user/assistant ordering.
type Session struct {
	mu        sync.Mutex
	model     string
	maxTokens int
	completer core.Completer
	history   []core.Message
	now       func() time.Time
}

func NewSession(completer core.Completer, model string, maxTokens int) *Session {
	if maxTokens <= 0 {
		maxTokens = core.DefaultMaxTokens
	}
	return &Session{
		model:     model,
		maxTokens: maxTokens,
		completer: completer,
		now:       time.Now,
	}
}

// Send runs one turn: the user message is appended to history before the
// remote call and is NOT rolled back if the call fails, preserving user
// intent across transient failures. extraSystem overrides the default system
// prompt text; the current date line is always prepended.
func (s *Session) Send(ctx context.Context, userText, extraSystem string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, core.Message{
		Role:      core.RoleUser,
		Content:   userText,
		Timestamp: s.now(),
	})

	outbound := make([]core.OutboundMessage, 0, len(s.history))
	for _, m := range s.history {
		if !core.ValidRole(m.Role) {
			continue
		}
		outbound = append(outbound, core.OutboundMessage{Role: m.Role, Content: m.Content})
	}

	systemPrompt := s.buildSystemPrompt(extraSystem)

	// Token estimate only when debug logging is on; encoding is not free.
	if e := log.FromCtx(ctx).Debug(); e.Enabled() {
		texts := make([]string, 0, len(outbound)+1)
		texts = append(texts, systemPrompt)
		for _, m := range outbound {
			texts = append(texts, m.Content)
		}
		e.Str("model", s.model).
			Int("messages", len(outbound)).
			Int("prompt_tokens_est", tokens.CountAll(texts...)).
			Msg("sending turn")
	}

	reply, err := s.completer.Complete(ctx, core.CompletionRequest{
		Model:        s.model,
		MaxTokens:    s.maxTokens,
		SystemPrompt: systemPrompt,
		Messages:     outbound,
	})
	if err != nil {
		return "", err
	}

	s.history = append(s.history, core.Message{
		Role:      core.RoleAssistant,
		Content:   reply,
		Timestamp: s.now(),
	})
	return reply, nil
}

// SendWithContext is Send with the formatted context block folded into the
// system prompt.
func (s *Session) SendWithContext(ctx context.Context, userText, contextBlock string) (string, error) {
	return s.Send(ctx, userText, fmt.Sprintf(contextPromptFormat, contextBlock))
}

func (s *Session) buildSystemPrompt(extraSystem string) string {
	dateLine := "Current date and time: " + s.now().Format(dateLineLayout)
	if extraSystem == "" {
		extraSystem = defaultSystemPrompt
	}
	return dateLine + "\n\n" + extraSystem
}

// Summarize asks the model for a short summary of the conversation. NOTE:
// the summary request and its reply are recorded in history like any other
// turn, so summarizing mutates the conversation it summarizes. On an empty
// history it returns a fixed literal without touching the remote model.
func (s *Session) Summarize(ctx context.Context) (string, error) {
	s.mu.Lock()
	empty := len(s.history) == 0
	s.mu.Unlock()

	if empty {
		return emptySummary, nil
	}
	return s.Send(ctx, summaryPrompt, "")
}

// History returns a copy of the message log; mutating it does not affect the
// session.
func (s *Session) History() []core.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Message, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Clear empties the history. The model identifier is untouched. Idempotent.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

func (s *Session) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

type conversationDoc struct {
	Model        string         `json:"model"`
	Conversation []core.Message `json:"conversation"`
}

// Save writes {model, conversation} as indented JSON.
func (s *Session) Save(w io.Writer) error {
	s.mu.Lock()
	doc := conversationDoc{Model: s.model, Conversation: s.history}
	s.mu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	return nil
}

// Load replaces the history wholesale with the persisted document. On any
// decode or validation failure the in-memory history is left untouched.
func (s *Session) Load(r io.Reader) error {
	var doc conversationDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode conversation: %w", err)
	}
	for i, m := range doc.Conversation {
		if !core.ValidRole(m.Role) {
			return fmt.Errorf("decode conversation: message %d has invalid role %q", i, m.Role)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.Model != "" {
		s.model = doc.Model
	}
	s.history = doc.Conversation
	return nil
}

func (s *Session) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := s.Save(f); err != nil {
		return err
	}
	return f.Close()
}

func (s *Session) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return s.Load(f)
}
