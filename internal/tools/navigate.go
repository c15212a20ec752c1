package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/engine"
	"github.com/specforge/specforge/internal/session"
)

// PreviousTool handles the spec_previous MCP tool: step the cursor back
// one question so the user can revise their answer.
type PreviousTool struct {
	repo session.Repository
	base *catalog.Catalog
}

// NewPreviousTool creates a PreviousTool with the given repository and catalog.
func NewPreviousTool(repo session.Repository, base *catalog.Catalog) *PreviousTool {
	return &PreviousTool{repo: repo, base: base}
}

// Definition returns the MCP tool definition for registration.
func (t *PreviousTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_previous",
		mcp.WithDescription(
			"Go back to the previous question. Clears the completion flag if the "+
				"questionnaire was finished. No-op at the first question.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session id returned by spec_start."),
		),
	)
}

// Handle processes the spec_previous tool call.
func (t *PreviousTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eng, errResult, err := loadEngine(t.repo, t.base, req.GetString("session_id", ""))
	if err != nil || errResult != nil {
		return errResult, err
	}

	if !eng.Previous() {
		return mcp.NewToolResultError("Already at the first question — cannot go back further."), nil
	}

	if err := t.repo.Save(eng.Session()); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	q, _ := eng.Current()
	response := fmt.Sprintf(
		"# Moved Back\n\nRe-answer the question below with `spec_answer` (the new answer replaces the old one).\n\n%s",
		formatQuestion(q, eng.Progress()),
	)
	return mcp.NewToolResultText(response), nil
}

// GotoTool handles the spec_goto MCP tool: jump to a specific question
// in the current eligible sequence.
type GotoTool struct {
	repo session.Repository
	base *catalog.Catalog
}

// NewGotoTool creates a GotoTool with the given repository and catalog.
func NewGotoTool(repo session.Repository, base *catalog.Catalog) *GotoTool {
	return &GotoTool{repo: repo, base: base}
}

// Definition returns the MCP tool definition for registration.
func (t *GotoTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_goto",
		mcp.WithDescription(
			"Jump to a specific question by id so the user can revise their answer. "+
				"Only questions currently eligible (dependency satisfied) can be jumped to.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session id returned by spec_start."),
		),
		mcp.WithString("question_id",
			mcp.Required(),
			mcp.Description("The id of the question to jump to, e.g. 'target-users'."),
		),
	)
}

// Handle processes the spec_goto tool call.
func (t *GotoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	questionID := req.GetString("question_id", "")
	if questionID == "" {
		return mcp.NewToolResultError("'question_id' is required"), nil
	}

	eng, errResult, err := loadEngine(t.repo, t.base, req.GetString("session_id", ""))
	if err != nil || errResult != nil {
		return errResult, err
	}

	if !eng.GoTo(questionID) {
		nf := &engine.NotFoundError{Kind: "question", ID: questionID}
		return mcp.NewToolResultError(
			nf.Error() + " in the eligible sequence. It may not exist, or its dependency is not satisfied.",
		), nil
	}

	if err := t.repo.Save(eng.Session()); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	q, _ := eng.Current()
	response := fmt.Sprintf(
		"# Jumped to %s\n\nRe-answer the question below with `spec_answer`.\n\n%s",
		questionID, formatQuestion(q, eng.Progress()),
	)
	return mcp.NewToolResultText(response), nil
}
