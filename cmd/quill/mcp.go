package main

import (
	"os"

	"github.com/sandevgo/quillbot/internal/transport/mcpserv"
	"github.com/sandevgo/quillbot/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve chat and context tools over MCP stdio",
	Long:  `Exposes chat, add_context, list_contexts, clear_history and summarize as MCP tools on stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout belongs to the MCP protocol; logs go to stderr.
		ctx, flushLog := log.NewContextWithLoggerTo(cmd.Context(), debug, os.Stderr)
		defer flushLog()

		_, svc := newRelay(ctx)

		log.FromCtx(ctx).Info().Msg("serving MCP on stdio")
		return mcpserv.New(svc).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
