package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/session"
)

// AddQuestionTool handles the spec_add_question MCP tool: inject an
// AI-suggested follow-up question into one session's questionnaire.
type AddQuestionTool struct {
	repo session.Repository
	base *catalog.Catalog
}

// NewAddQuestionTool creates an AddQuestionTool with the given repository and catalog.
func NewAddQuestionTool(repo session.Repository, base *catalog.Catalog) *AddQuestionTool {
	return &AddQuestionTool{repo: repo, base: base}
}

// Definition returns the MCP tool definition for registration.
func (t *AddQuestionTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_add_question",
		mcp.WithDescription(
			"Add a follow-up question to this session's questionnaire. Use it when an "+
				"answer reveals something the built-in questions don't cover. The question "+
				"is inserted into the ordered sequence by its order value and only affects "+
				"this session.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session id returned by spec_start."),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Unique kebab-case id for the new question, e.g. 'offline-behavior'."),
		),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The question text to ask the user."),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Question type: text, textarea, select, multiselect, or boolean."),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category: overview, functional, technical, ui/ux, performance, or security."),
		),
		mcp.WithBoolean("required",
			mcp.Description("Whether an answer is required before generation. Defaults to false."),
		),
		mcp.WithNumber("order",
			mcp.Description("Sort position. Defaults to 1000 (after the built-in questions)."),
		),
		mcp.WithString("options",
			mcp.Description("Comma-separated options, required for select/multiselect types."),
		),
		mcp.WithString("depends_on_question",
			mcp.Description("Optional id of a question this one depends on."),
		),
		mcp.WithString("depends_on_value",
			mcp.Description("Required answer value of the dependency question ('true'/'false' for booleans)."),
		),
	)
}

// Handle processes the spec_add_question tool call.
func (t *AddQuestionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eng, errResult, err := loadEngine(t.repo, t.base, req.GetString("session_id", ""))
	if err != nil || errResult != nil {
		return errResult, err
	}

	q := catalog.Question{
		ID:       strings.TrimSpace(req.GetString("id", "")),
		Prompt:   strings.TrimSpace(req.GetString("prompt", "")),
		Type:     catalog.QuestionType(req.GetString("type", "")),
		Category: catalog.Category(req.GetString("category", "")),
		Required: req.GetBool("required", false),
		Order:    int(req.GetFloat("order", 1000)),
	}
	if opts := strings.TrimSpace(req.GetString("options", "")); opts != "" {
		for _, part := range strings.Split(opts, ",") {
			if o := strings.TrimSpace(part); o != "" {
				q.Options = append(q.Options, o)
			}
		}
	}

	if depID := strings.TrimSpace(req.GetString("depends_on_question", "")); depID != "" {
		depQ, ok := eng.View().Get(depID)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("dependency question %q not found", depID)), nil
		}
		rawValue := req.GetString("depends_on_value", "")
		value, err := coerceValue(depQ, rawValue)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		q.DependsOn = &catalog.Dependency{QuestionID: depID, Equals: value}
	}

	if err := eng.AddDynamicQuestion(q); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := t.repo.Save(eng.Session()); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	progress := eng.Progress()
	response := fmt.Sprintf(
		"# Question Added: %s\n\n"+
			"The question is now part of this session's sequence.\n\n"+
			"**Progress:** %s\n",
		q.ID, formatProgress(progress),
	)
	if cur, ok := eng.Current(); ok {
		response += "\n## Current Question\n\n" + formatQuestion(cur, progress)
	}
	return mcp.NewToolResultText(response), nil
}
