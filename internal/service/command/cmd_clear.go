package command

import (
	"context"
	"errors"

	"github.com/sandevgo/quillbot/internal/core"
)

type ClearCommand struct {
	svc       ChatService
	formatter *ResponseFormatter
}

func NewClearCommand(svc ChatService) *ClearCommand {
	return &ClearCommand{
		svc:       svc,
		formatter: NewResponseFormatter(),
	}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Clear the conversation history"
}

func (c *ClearCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if err := c.svc.ClearHistory(sessionID); err != nil {
		if errors.Is(err, core.ErrNoSession) {
			return "Nothing to clear yet.", nil
		}
		return "", err
	}
	return c.formatter.Success("Conversation history cleared"), nil
}
