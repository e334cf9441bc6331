package core

import "context"

// CompletionRequest is one synchronous call against the remote model.
type CompletionRequest struct {
	Model        string
	MaxTokens    int
	SystemPrompt string
	Messages     []OutboundMessage
}

// Completer is the remote completion function: text in, text out. It is the
// one operation in the system expected to have real latency.
//
// HasCredential must be consulted before Complete; a missing credential is a
// precondition failure, not a remote error.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	HasCredential() bool
}
