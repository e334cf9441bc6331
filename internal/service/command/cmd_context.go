package command

import (
	"context"
	"fmt"
	"strings"
)

type ContextCommand struct {
	svc       ChatService
	formatter *ResponseFormatter
}

func NewContextCommand(svc ChatService) *ContextCommand {
	return &ContextCommand{
		svc:       svc,
		formatter: NewResponseFormatter(),
	}
}

func (c *ContextCommand) Name() string {
	return "context"
}

func (c *ContextCommand) Description() string {
	return "Attach a named context snippet to the conversation"
}

func (c *ContextCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) < 2 {
		return c.formatter.Combine(
			c.formatter.Usage("/context <name> <content...>"),
		), nil
	}

	name := args[0]
	content := strings.Join(args[1:], " ")

	names, err := c.svc.AddContext(sessionID, name, content)
	if err != nil {
		return "", err
	}

	return c.formatter.Combine(
		c.formatter.Success(fmt.Sprintf("Context `%s` saved", name)),
		c.formatter.List(names),
	), nil
}

type ContextsCommand struct {
	svc       ChatService
	formatter *ResponseFormatter
}

func NewContextsCommand(svc ChatService) *ContextsCommand {
	return &ContextsCommand{
		svc:       svc,
		formatter: NewResponseFormatter(),
	}
}

func (c *ContextsCommand) Name() string {
	return "contexts"
}

func (c *ContextsCommand) Description() string {
	return "List attached context snippets"
}

func (c *ContextsCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	names := c.svc.ListContexts(sessionID)
	if len(names) == 0 {
		return "No contexts attached.", nil
	}
	return c.formatter.Combine(
		c.formatter.Info("Contexts"),
		c.formatter.List(names),
	), nil
}
