package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specforge/specforge/internal/session"
)

// ListTool handles the spec_list MCP tool: an overview of all stored
// sessions, most recently updated first.
type ListTool struct {
	repo session.Repository
}

// NewListTool creates a ListTool with the given repository.
func NewListTool(repo session.Repository) *ListTool {
	return &ListTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_list",
		mcp.WithDescription(
			"List all specification sessions with their completion state. "+
				"Use it to resume an earlier questionnaire.",
		),
	)
}

// Handle processes the spec_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := t.repo.List()
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	if len(summaries) == 0 {
		return mcp.NewToolResultText("No sessions yet. Start one with `spec_start`."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Specification Sessions (%d)\n\n", len(summaries))
	for _, s := range summaries {
		marker := "🔄"
		if s.Complete {
			marker = "✅"
		}
		fmt.Fprintf(&b, "%s **%s** — `%s`\n", marker, s.Title, s.ID)
		fmt.Fprintf(&b, "   %d answers, updated %s\n", s.Answers, s.UpdatedAt)
	}
	return mcp.NewToolResultText(b.String()), nil
}
