package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/quillbot/internal/core"
)

func testRequest() core.CompletionRequest {
	return core.CompletionRequest{
		Model:        "claude-sonnet-4-20250514",
		MaxTokens:    4000,
		SystemPrompt: "You are a helpful AI assistant.",
		Messages: []core.OutboundMessage{
			{Role: "user", Content: "hi"},
		},
	}
}

func TestAnthropic_Complete(t *testing.T) {
	var gotPayload map[string]any
	var gotHeaders http.Header

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.Equal(t, "/v1/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"Hello"},{"type":"text","text":", world"}]}`))
	}))
	defer ts.Close()

	p := NewAnthropic(ts.URL, "sk-test", 5*time.Second)
	reply, err := p.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", reply)

	assert.Equal(t, "sk-test", gotHeaders.Get("x-api-key"))
	assert.Equal(t, anthropicVersion, gotHeaders.Get("anthropic-version"))

	assert.Equal(t, "claude-sonnet-4-20250514", gotPayload["model"])
	assert.Equal(t, float64(4000), gotPayload["max_tokens"])
	assert.Equal(t, "You are a helpful AI assistant.", gotPayload["system"])
	messages := gotPayload["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, map[string]any{"role": "user", "content": "hi"}, messages[0])
}

func TestAnthropic_CompleteHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer ts.Close()

	p := NewAnthropic(ts.URL, "sk-test", 5*time.Second)
	_, err := p.Complete(context.Background(), testRequest())
	require.Error(t, err)

	var remoteErr *core.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusTooManyRequests, remoteErr.Status)
	assert.Contains(t, remoteErr.Body, "rate_limit_error")
}

func TestAnthropic_CompleteTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	p := NewAnthropic(ts.URL, "sk-test", 20*time.Millisecond)
	_, err := p.Complete(context.Background(), testRequest())
	assert.ErrorIs(t, err, core.ErrRemoteTimeout)
}

func TestAnthropic_HasCredential(t *testing.T) {
	assert.True(t, NewAnthropic("http://x", "sk-test", 0).HasCredential())
	assert.False(t, NewAnthropic("http://x", "", 0).HasCredential())
}
