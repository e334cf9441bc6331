package command

import (
	"context"

	"github.com/sandevgo/quillbot/internal/core"
)

// ChatService is the slice of the relay the commands need.
type ChatService interface {
	ClearHistory(key string) error
	Summarize(ctx context.Context, key string) (string, error)
	AddContext(key, name, content string) ([]string, error)
	ListContexts(key string) []string
}

func NewCommands(svc ChatService) []core.Command {
	cmds := []core.Command{
		NewClearCommand(svc),
		NewSummaryCommand(svc),
		NewContextCommand(svc),
		NewContextsCommand(svc),
	}
	return append(cmds, NewHelpCommand(cmds))
}
