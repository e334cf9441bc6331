package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/quillbot/internal/chat"
	"github.com/sandevgo/quillbot/internal/core"
	"github.com/sandevgo/quillbot/internal/service/ui"
	"github.com/spf13/cobra"
)

// cannedCompleter lets the demo run a full turn offline. It records the
// request so the walkthrough can show what would have gone over the wire.
type cannedCompleter struct {
	lastReq core.CompletionRequest
}

func (c *cannedCompleter) Complete(_ context.Context, req core.CompletionRequest) (string, error) {
	c.lastReq = req
	return "Here is a reply that takes your waste-to-energy background into account...", nil
}

func (c *cannedCompleter) HasCredential() bool {
	return true
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Offline walkthrough of the context store and turn flow",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		rule := ui.RuleStyle.Render(strings.Repeat("-", 70))

		section := func(title string) {
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.TitleStyle.Render(title))
			fmt.Fprintln(out, rule)
		}

		section("QUILLBOT DEMO")
		fmt.Fprintln(out, "A relay over a chat completion API that adds:")
		for _, feature := range []string{
			"per-session conversation history",
			"named context snippets injected into the system prompt",
			"timestamped messages with save/load snapshots",
			"web, Telegram and MCP transports",
		} {
			fmt.Fprintln(out, ui.DescStyle.Render("  - "+feature))
		}

		section("CONTEXT STORE")
		store := chat.NewContextStore()
		store.Add("user_profile", "Consultant, expert in strategy and engineering")
		store.Add("current_project", "Waste-to-energy infrastructure in Indonesia")
		store.Add("tech_stack", "Go, PostgreSQL, REST APIs, Kafka")

		fmt.Fprintln(out, "Registered contexts:", ui.UsageStyle.Render(strings.Join(store.Names(), ", ")))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Formatted block for injection:")
		fmt.Fprintln(out, store.FormatAll())

		section("ONE TURN, OFFLINE")
		completer := &cannedCompleter{}
		session := chat.NewSession(completer, "claude-sonnet-4-20250514", core.DefaultMaxTokens)

		reply, err := session.SendWithContext(cmd.Context(), "Help me design an API endpoint", store.FormatAll())
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "System prompt sent to the model:")
		fmt.Fprintln(out, ui.DescStyle.Render(completer.lastReq.SystemPrompt))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Reply:", reply)
		fmt.Fprintln(out, "History length:", ui.UsageStyle.Render(fmt.Sprint(session.HistoryLen())))

		section("NEXT STEPS")
		fmt.Fprintln(out, "1. Put ANTHROPIC_API_KEY in", ui.UsageStyle.Render("~/.quillbot/.env"))
		fmt.Fprintln(out, "2. Run", ui.UsageStyle.Render("quill serve"), "and open", ui.UsageStyle.Render("http://localhost:5000"))
		fmt.Fprintln(out, "3. Or wire an MCP client to", ui.UsageStyle.Render("quill mcp"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
