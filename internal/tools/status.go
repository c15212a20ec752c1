package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/session"
)

// StatusTool handles the spec_status MCP tool: a read-only snapshot of a
// session's progress.
type StatusTool struct {
	repo session.Repository
	base *catalog.Catalog
}

// NewStatusTool creates a StatusTool with the given repository and catalog.
func NewStatusTool(repo session.Repository, base *catalog.Catalog) *StatusTool {
	return &StatusTool{repo: repo, base: base}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_status",
		mcp.WithDescription(
			"Show a session's progress: answered questions, the current question, "+
				"and any required questions still missing before generation.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session id returned by spec_start."),
		),
	)
}

// Handle processes the spec_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eng, errResult, err := loadEngine(t.repo, t.base, req.GetString("session_id", ""))
	if err != nil || errResult != nil {
		return errResult, err
	}

	sess := eng.Session()
	progress := eng.Progress()

	var b strings.Builder
	fmt.Fprintf(&b, "# Specification Status: %s\n\n", sess.Title)
	fmt.Fprintf(&b, "**Session:** `%s`\n", sess.ID)
	fmt.Fprintf(&b, "**Progress:** %s\n", formatProgress(progress))
	fmt.Fprintf(&b, "**Complete:** %t\n", eng.IsComplete())
	fmt.Fprintf(&b, "**Created:** %s\n", sess.CreatedAt)
	fmt.Fprintf(&b, "**Updated:** %s\n", sess.UpdatedAt)

	b.WriteString("\n## Questions\n\n")
	for _, q := range eng.Eligible() {
		marker := "⬜"
		detail := ""
		if a, ok := sess.Answer(q.ID); ok {
			marker = "✅"
			detail = " — " + a.Value.String()
		}
		fmt.Fprintf(&b, "%s `%s`%s\n", marker, q.ID, detail)
	}

	if missing := eng.UnansweredRequired(); len(missing) > 0 {
		b.WriteString("\n## Required Before Generation\n\n")
		for _, q := range missing {
			fmt.Fprintf(&b, "- `%s`: %s\n", q.ID, q.Prompt)
		}
	} else {
		b.WriteString("\nAll required questions are answered — `spec_generate` is ready.\n")
	}

	if q, ok := eng.Current(); ok {
		fmt.Fprintf(&b, "\n## Current Question\n\n%s", formatQuestion(q, progress))
	}

	return mcp.NewToolResultText(b.String()), nil
}
