package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/engine"
	"github.com/specforge/specforge/internal/session"
	"github.com/specforge/specforge/internal/spec"
)

// GenerateTool handles the spec_generate MCP tool: render the session's
// answers into the markdown specification document and write it to disk.
type GenerateTool struct {
	repo    session.Repository
	base    *catalog.Catalog
	specDir string
}

// NewGenerateTool creates a GenerateTool. specDir is the default output
// directory used when the caller doesn't pass output_path.
func NewGenerateTool(repo session.Repository, base *catalog.Catalog, specDir string) *GenerateTool {
	return &GenerateTool{repo: repo, base: base, specDir: specDir}
}

// Definition returns the MCP tool definition for registration.
func (t *GenerateTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_generate",
		mcp.WithDescription(
			"Generate the specification document from the session's answers and write it "+
				"to a markdown file. Fails while required questions are still unanswered, "+
				"reporting the completion percentage and what is missing. Pass force=true "+
				"to generate anyway from a partially answered session.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session id returned by spec_start."),
		),
		mcp.WithString("output_path",
			mcp.Description("Optional file path for the document. Defaults to <spec-dir>/<title-slug>.md."),
		),
		mcp.WithBoolean("force",
			mcp.Description("Generate even if required questions are unanswered."),
		),
	)
}

// Handle processes the spec_generate tool call.
func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eng, errResult, err := loadEngine(t.repo, t.base, req.GetString("session_id", ""))
	if err != nil || errResult != nil {
		return errResult, err
	}
	sess := eng.Session()
	force := req.GetBool("force", false)

	validation, err := spec.ValidateCompleteness(t.base, sess)
	if err != nil {
		return nil, fmt.Errorf("validating completeness: %w", err)
	}
	if !validation.IsValid && !force {
		pre := &engine.PreconditionError{
			Reason:     "cannot generate: required questions are unanswered",
			Completion: eng.Progress().Percentage,
			Missing:    validation.MissingRequiredQuestions,
		}
		return mcp.NewToolResultError(
			pre.Error() + "\n\nAnswer the missing questions, or pass force=true to generate anyway.",
		), nil
	}

	result, err := spec.Build(t.base, sess)
	if err != nil {
		return nil, fmt.Errorf("building specification: %w", err)
	}

	outputPath := strings.TrimSpace(req.GetString("output_path", ""))
	if outputPath == "" {
		outputPath = filepath.Join(t.specDir, Slugify(sess.Title)+".md")
	}
	if err := writeDocument(outputPath, result.Markdown); err != nil {
		return nil, fmt.Errorf("writing document: %w", err)
	}

	response := fmt.Sprintf(
		"# Specification Generated: %s\n\n"+
			"**Saved to:** `%s`\n"+
			"**Completion:** %d%%\n\n"+
			"---\n\n%s",
		sess.Title, outputPath, result.CompletionPercentage, result.Markdown,
	)
	return mcp.NewToolResultText(response), nil
}

// writeDocument writes the rendered markdown, creating parent
// directories as needed.
func writeDocument(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
