package command

import "context"

type SummaryCommand struct {
	svc ChatService
}

func NewSummaryCommand(svc ChatService) *SummaryCommand {
	return &SummaryCommand{svc: svc}
}

func (c *SummaryCommand) Name() string {
	return "summary"
}

func (c *SummaryCommand) Description() string {
	return "Summarize the conversation so far"
}

func (c *SummaryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return c.svc.Summarize(ctx, sessionID)
}
