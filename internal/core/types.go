package core

import "time"

const (
	QuillName          = "QuillBot"
	QuillUserAgent     = "QuillBot/0.1"
	QuillRepositoryURL = "https://github.com/sandevgo/quillbot"
	QuillVersion       = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultMaxTokens bounds the reply size requested from the remote model.
const DefaultMaxTokens = 4000

// Message is one turn of a conversation. Immutable once appended to a
// session's history.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidRole reports whether role is one of the two conversation roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}

// OutboundMessage is the wire projection of a Message: timestamps are kept
// in stored history but stripped from the payload sent to the model.
type OutboundMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
