package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/quillbot/internal/core"
)

// OpenAICompatible talks to any endpoint that speaks the OpenAI chat
// completions wire format. The system prompt travels as a leading system
// message because the format has no separate system field.
type OpenAICompatible struct {
	baseProvider
}

func NewOpenAICompatible(baseURL, apiKey string, timeout time.Duration) *OpenAICompatible {
	return &OpenAICompatible{
		baseProvider: newBaseProvider(baseURL, apiKey, timeout),
	}
}

// HasCredential always holds: self-hosted gateways commonly run keyless, so
// an empty key is not a precondition failure for this provider.
func (o *OpenAICompatible) HasCredential() bool {
	return true
}

func (o *OpenAICompatible) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	messages := make([]msg, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, msg{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		messages = append(messages, msg{Role: m.Role, Content: m.Content})
	}

	payload := map[string]any{
		"model":      req.Model,
		"max_tokens": req.MaxTokens,
		"messages":   messages,
	}

	headers := make(map[string]string)
	if o.apiKey != "" {
		headers["Authorization"] = "Bearer " + o.apiKey
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &core.RemoteError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &core.RemoteError{Status: resp.StatusCode, Body: string(data)}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", &core.RemoteError{Err: fmt.Errorf("decode: %w", err)}
	}
	if len(result.Choices) == 0 {
		return "", &core.RemoteError{Err: fmt.Errorf("empty choices: %s", string(data))}
	}
	return result.Choices[0].Message.Content, nil
}
