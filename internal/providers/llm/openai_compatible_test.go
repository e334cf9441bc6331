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

func TestOpenAICompatible_Complete(t *testing.T) {
	var gotPayload map[string]any
	var gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hey"}}]}`))
	}))
	defer ts.Close()

	p := NewOpenAICompatible(ts.URL, "key-1", 5*time.Second)
	reply, err := p.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "hey", reply)
	assert.Equal(t, "Bearer key-1", gotAuth)

	// The system prompt travels as a leading system message.
	messages := gotPayload["messages"].([]any)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "You are a helpful AI assistant.", first["content"])
}

func TestOpenAICompatible_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	p := NewOpenAICompatible(ts.URL, "", 5*time.Second)
	_, err := p.Complete(context.Background(), testRequest())

	var remoteErr *core.RemoteError
	assert.ErrorAs(t, err, &remoteErr)
}

func TestOpenAICompatible_HasCredentialAlways(t *testing.T) {
	assert.True(t, NewOpenAICompatible("http://x", "", 0).HasCredential())
}
