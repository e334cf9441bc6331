// Package mcpserv exposes the relay as an MCP stdio server, so MCP-capable
// clients can chat and manage context snippets as tools.
package mcpserv

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/quillbot/internal/core"
	"github.com/sandevgo/quillbot/internal/service/relay"
)

// All MCP tool calls share one conversation; stdio serves a single client.
const sessionKey = "mcp-local"

type Server struct {
	svc *relay.Relay
	mcp *server.MCPServer
}

func New(svc *relay.Relay) *Server {
	s := &Server{
		svc: svc,
		mcp: server.NewMCPServer(core.QuillName, core.QuillVersion, server.WithToolCapabilities(false)),
	}

	// Bind the fixed session up front so context snippets can be attached
	// before the first turn.
	svc.Touch(sessionKey)

	s.mcp.AddTool(mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the assistant and return its reply"),
		mcp.WithString("message", mcp.Required(), mcp.Description("The user message")),
		mcp.WithBoolean("use_context", mcp.Description("Fold stored context snippets into the system prompt")),
	), s.handleChat)

	s.mcp.AddTool(mcp.NewTool("add_context",
		mcp.WithDescription("Attach a named context snippet to the conversation"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Snippet name; re-adding a name overwrites it")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Snippet text")),
	), s.handleAddContext)

	s.mcp.AddTool(mcp.NewTool("list_contexts",
		mcp.WithDescription("List attached context snippet names"),
	), s.handleListContexts)

	s.mcp.AddTool(mcp.NewTool("clear_history",
		mcp.WithDescription("Clear the conversation history"),
	), s.handleClearHistory)

	s.mcp.AddTool(mcp.NewTool("summarize",
		mcp.WithDescription("Summarize the conversation so far"),
	), s.handleSummarize)

	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	useContext := request.GetBool("use_context", false)

	reply, _, err := s.svc.Chat(ctx, sessionKey, message, useContext)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
	}
	return mcp.NewToolResultText(reply), nil
}

func (s *Server) handleAddContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	names, err := s.svc.AddContext(sessionKey, name, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("add context failed: %v", err)), nil
	}
	return mcp.NewToolResultText("contexts: " + strings.Join(names, ", ")), nil
}

func (s *Server) handleListContexts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := s.svc.ListContexts(sessionKey)
	if len(names) == 0 {
		return mcp.NewToolResultText("no contexts attached"), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) handleClearHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.svc.ClearHistory(sessionKey); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("clear failed: %v", err)), nil
	}
	return mcp.NewToolResultText("history cleared"), nil
}

func (s *Server) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := s.svc.Summarize(ctx, sessionKey)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summarize failed: %v", err)), nil
	}
	return mcp.NewToolResultText(summary), nil
}
