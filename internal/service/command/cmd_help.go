package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/quillbot/internal/core"
)

type HelpCommand struct {
	commands []core.Command
}

func NewHelpCommand(commands []core.Command) *HelpCommand {
	return &HelpCommand{commands: commands}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	var sb strings.Builder
	sb.WriteString("**Commands**:\n")
	for _, cmd := range c.commands {
		sb.WriteString(fmt.Sprintf("`/%s` › %s\n", cmd.Name(), cmd.Description()))
	}
	sb.WriteString("`/help` › List available commands\n")
	return sb.String(), nil
}
