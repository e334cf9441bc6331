package relay

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/quillbot/internal/config"
	"github.com/sandevgo/quillbot/internal/core"
)

type mockCompleter struct {
	reply      string
	err        error
	calls      int
	credential bool
	lastReq    core.CompletionRequest
}

func (m *mockCompleter) Complete(_ context.Context, req core.CompletionRequest) (string, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockCompleter) HasCredential() bool {
	return m.credential
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{Model: "claude-sonnet-4-20250514", MaxTokens: 4000}
}

func TestRelay_Chat(t *testing.T) {
	mock := &mockCompleter{reply: "hello", credential: true}
	r := New(mock, testConfig())

	reply, histLen, err := r.Chat(context.Background(), "s1", "hi", false)
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)
	assert.Equal(t, 2, histLen)
}

func TestRelay_ChatMissingCredential(t *testing.T) {
	mock := &mockCompleter{reply: "hello"}
	r := New(mock, testConfig())

	_, _, err := r.Chat(context.Background(), "s1", "hi", false)
	assert.ErrorIs(t, err, core.ErrMissingCredential)
	// Failing the precondition must not create the session.
	assert.Empty(t, r.History("s1"))
	assert.Zero(t, mock.calls)
}

func TestRelay_ChatFailureReportsHistoryLength(t *testing.T) {
	mock := &mockCompleter{err: errors.New("boom"), credential: true}
	r := New(mock, testConfig())

	_, histLen, err := r.Chat(context.Background(), "s1", "hi", false)
	require.Error(t, err)
	assert.Equal(t, 1, histLen)
	require.Len(t, r.History("s1"), 1)
	assert.Equal(t, core.RoleUser, r.History("s1")[0].Role)
}

func TestRelay_ChatWithContext(t *testing.T) {
	mock := &mockCompleter{reply: "ok", credential: true}
	r := New(mock, testConfig())

	// Establish the session, then attach context.
	_, _, err := r.Chat(context.Background(), "s1", "hi", false)
	require.NoError(t, err)

	names, err := r.AddContext("s1", "tech_stack", "Go, Postgres")
	require.NoError(t, err)
	assert.Equal(t, []string{"tech_stack"}, names)

	_, _, err = r.Chat(context.Background(), "s1", "design an API", true)
	require.NoError(t, err)
	assert.Contains(t, mock.lastReq.SystemPrompt, "Additional Context:\n[tech_stack]\nGo, Postgres\n")
}

func TestRelay_ChatUseContextWithEmptyStore(t *testing.T) {
	mock := &mockCompleter{reply: "ok", credential: true}
	r := New(mock, testConfig())

	_, _, err := r.Chat(context.Background(), "s1", "hi", true)
	require.NoError(t, err)
	assert.NotContains(t, mock.lastReq.SystemPrompt, "Additional Context:")
}

func TestRelay_TouchAllowsContextBeforeChat(t *testing.T) {
	r := New(&mockCompleter{credential: true}, testConfig())

	r.Touch("s1")
	names, err := r.AddContext("s1", "a", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)
}

func TestRelay_AddContextUnknownSession(t *testing.T) {
	r := New(&mockCompleter{credential: true}, testConfig())

	_, err := r.AddContext("never-seen", "a", "x")
	assert.ErrorIs(t, err, core.ErrNoSession)
}

func TestRelay_ReadsAreNeutralForUnknownSession(t *testing.T) {
	r := New(&mockCompleter{credential: true}, testConfig())

	assert.Empty(t, r.ListContexts("never-seen"))
	assert.Empty(t, r.History("never-seen"))
}

func TestRelay_ClearHistory(t *testing.T) {
	mock := &mockCompleter{reply: "ok", credential: true}
	r := New(mock, testConfig())

	assert.ErrorIs(t, r.ClearHistory("never-seen"), core.ErrNoSession)

	_, _, err := r.Chat(context.Background(), "s1", "hi", false)
	require.NoError(t, err)
	require.NoError(t, r.ClearHistory("s1"))
	assert.Empty(t, r.History("s1"))
}

func TestRelay_SummarizeEmptyNeedsNoCredential(t *testing.T) {
	mock := &mockCompleter{}
	r := New(mock, testConfig())

	summary, err := r.Summarize(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "No conversation history yet.", summary)
	assert.Zero(t, mock.calls)
}

func TestRelay_SummarizeLiveConversation(t *testing.T) {
	mock := &mockCompleter{reply: "ok", credential: true}
	r := New(mock, testConfig())

	_, _, err := r.Chat(context.Background(), "s1", "hi", false)
	require.NoError(t, err)

	mock.reply = "A short greeting exchange."
	summary, err := r.Summarize(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "A short greeting exchange.", summary)
	assert.Len(t, r.History("s1"), 4)
}

func TestRelay_SaveLoadConversation(t *testing.T) {
	mock := &mockCompleter{reply: "ok", credential: true}
	r := New(mock, testConfig())

	assert.ErrorIs(t, r.SaveConversation("never-seen", "x.json"), core.ErrNoSession)

	_, _, err := r.Chat(context.Background(), "s1", "hi", false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "conversation.json")
	require.NoError(t, r.SaveConversation("s1", path))

	require.NoError(t, r.LoadConversation("s2", path))
	assert.Equal(t, r.History("s1"), r.History("s2"))
}
