package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/engine"
	"github.com/specforge/specforge/internal/session"
)

// AnswerTool handles the spec_answer MCP tool. It is the workhorse of
// the questionnaire: records the answer for the current question,
// advances the cursor, and presents the next question.
type AnswerTool struct {
	repo session.Repository
	base *catalog.Catalog
}

// NewAnswerTool creates an AnswerTool with the given repository and catalog.
func NewAnswerTool(repo session.Repository, base *catalog.Catalog) *AnswerTool {
	return &AnswerTool{repo: repo, base: base}
}

// Definition returns the MCP tool definition for registration.
func (t *AnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_answer",
		mcp.WithDescription(
			"Record the user's answer to the current question and advance to the next one. "+
				"For boolean questions pass 'true' or 'false'; for multiselect questions pass "+
				"the chosen options separated by commas. Answering a question again replaces "+
				"the previous answer.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session id returned by spec_start."),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("The user's answer, as they gave it."),
		),
	)
}

// Handle processes the spec_answer tool call.
func (t *AnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	raw := req.GetString("value", "")

	eng, errResult, err := loadEngine(t.repo, t.base, sessionID)
	if err != nil || errResult != nil {
		return errResult, err
	}

	q, ok := eng.Current()
	if !ok {
		return mcp.NewToolResultError(
			"The questionnaire is already complete — there is no current question. " +
				"Use `spec_goto` to revisit a question, or `spec_generate` to produce the document.",
		), nil
	}

	value, err := coerceValue(q, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := eng.Answer(value); err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			return mcp.NewToolResultError(verr.Error()), nil
		}
		return nil, fmt.Errorf("recording answer: %w", err)
	}

	if err := t.repo.Save(eng.Session()); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	progress := eng.Progress()
	if next, ok := eng.Current(); ok {
		response := fmt.Sprintf(
			"# Answer Recorded: %s\n\n**Progress:** %s\n\n%s",
			q.ID, formatProgress(progress), formatQuestion(next, progress),
		)
		return mcp.NewToolResultText(response), nil
	}

	response := fmt.Sprintf(
		"# Questionnaire Complete\n\n"+
			"**Progress:** %s\n\n"+
			"All eligible questions are answered. Call `spec_generate` to produce the "+
			"specification document, or `spec_previous` / `spec_goto` to revise an answer.",
		formatProgress(progress),
	)
	return mcp.NewToolResultText(response), nil
}
