package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/engine"
	"github.com/specforge/specforge/internal/session"
)

// StartTool handles the spec_start MCP tool. It creates a new
// questionnaire session and presents the first question.
type StartTool struct {
	repo session.Repository
	base *catalog.Catalog
}

// NewStartTool creates a StartTool with the given repository and catalog.
func NewStartTool(repo session.Repository, base *catalog.Catalog) *StartTool {
	return &StartTool{repo: repo, base: base}
}

// Definition returns the MCP tool definition for registration.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_start",
		mcp.WithDescription(
			"Start an interactive specification questionnaire for a feature. "+
				"Creates a session and returns its id plus the first question. "+
				"Ask the user each question, then record their answer with spec_answer.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short feature title, e.g. 'User profile editing'."),
		),
		mcp.WithString("description",
			mcp.Description("Optional one-paragraph description of the feature idea."),
		),
	)
}

// Handle processes the spec_start tool call.
func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	description := req.GetString("description", "")

	if strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("'title' is required — give the feature a short name"), nil
	}

	sess := session.New(title, description)
	if err := t.repo.Create(sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	eng, err := engine.New(t.base, sess)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}

	q, ok := eng.Current()
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf(
			"# Questionnaire Started\n\n**Session:** `%s`\n\nThe catalog has no questions — call `spec_generate` directly.",
			sess.ID,
		)), nil
	}

	response := fmt.Sprintf(
		"# Questionnaire Started: %s\n\n"+
			"**Session:** `%s`\n\n"+
			"Ask the user the question below, then call `spec_answer` with their answer.\n\n%s",
		sess.Title, sess.ID, formatQuestion(q, eng.Progress()),
	)
	return mcp.NewToolResultText(response), nil
}
