package command

import (
	"context"
	"strings"
	"testing"

	"github.com/sandevgo/quillbot/internal/core"
)

type stubService struct {
	cleared   []string
	contexts  map[string][]string
	summary   string
	clearErr  error
	addedName string
}

func (s *stubService) ClearHistory(key string) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared = append(s.cleared, key)
	return nil
}

func (s *stubService) Summarize(ctx context.Context, key string) (string, error) {
	return s.summary, nil
}

func (s *stubService) AddContext(key, name, content string) ([]string, error) {
	s.addedName = name
	return append(s.contexts[key], name), nil
}

func (s *stubService) ListContexts(key string) []string {
	return s.contexts[key]
}

func TestRouter_Execute(t *testing.T) {
	svc := &stubService{
		summary:  "short summary",
		contexts: map[string][]string{},
		clearErr: core.ErrNoSession,
	}
	router := New(NewCommands(svc))

	tests := []struct {
		name         string
		input        string
		wantHandled  bool
		wantContains string
	}{
		{
			name:        "plain text passes through",
			input:       "just a message",
			wantHandled: false,
		},
		{
			name:         "unknown command",
			input:        "/bogus",
			wantHandled:  true,
			wantContains: "Unknown command: /bogus",
		},
		{
			name:         "clear before any chat",
			input:        "/clear",
			wantHandled:  true,
			wantContains: "Nothing to clear yet.",
		},
		{
			name:         "summary",
			input:        "/summary",
			wantHandled:  true,
			wantContains: "short summary",
		},
		{
			name:         "context usage hint",
			input:        "/context onlyname",
			wantHandled:  true,
			wantContains: "/context <name> <content...>",
		},
		{
			name:         "context add",
			input:        "/context tech Go and Postgres",
			wantHandled:  true,
			wantContains: "Context `tech` saved",
		},
		{
			name:         "contexts empty",
			input:        "/contexts",
			wantHandled:  true,
			wantContains: "No contexts attached.",
		},
		{
			name:         "help lists commands",
			input:        "/help",
			wantHandled:  true,
			wantContains: "/summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, handled := router.Execute(context.Background(), "session-1", tt.input)
			if handled != tt.wantHandled {
				t.Fatalf("Execute(%q) handled = %v, want %v", tt.input, handled, tt.wantHandled)
			}
			if tt.wantContains != "" && !strings.Contains(got, tt.wantContains) {
				t.Errorf("Execute(%q) = %q, want it to contain %q", tt.input, got, tt.wantContains)
			}
		})
	}
}

func TestRouter_ContextJoinsContent(t *testing.T) {
	svc := &stubService{contexts: map[string][]string{}}
	router := New(NewCommands(svc))

	_, handled := router.Execute(context.Background(), "s", "/context stack Go 1.25 with Postgres")
	if !handled {
		t.Fatal("expected /context to be handled")
	}
	if svc.addedName != "stack" {
		t.Errorf("added name = %q, want %q", svc.addedName, "stack")
	}
}
