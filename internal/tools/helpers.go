// Package tools implements the MCP tool handlers for the questionnaire.
//
// Each tool is a struct holding its dependencies (session repository,
// base catalog) and exposing a Definition for registration plus a Handle
// compatible with mcp-go's CallToolRequest signature. Every handler is
// one persistence round-trip: load the session, run one engine or
// factory operation, save the session back.
package tools

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/engine"
	"github.com/specforge/specforge/internal/session"
)

// loadEngine loads a session and builds its engine. The second return
// value is a ready-made error result for user-facing failures (unknown
// session id); the third is an internal error.
func loadEngine(repo session.Repository, base *catalog.Catalog, sessionID string) (*engine.Engine, *mcp.CallToolResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, mcp.NewToolResultError("'session_id' is required"), nil
	}

	sess, err := repo.Load(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			nf := &engine.NotFoundError{Kind: "session", ID: sessionID}
			return nil, mcp.NewToolResultError(nf.Error() + ". Start one with `spec_start`."), nil
		}
		return nil, nil, fmt.Errorf("loading session: %w", err)
	}

	eng, err := engine.New(base, sess)
	if err != nil {
		return nil, nil, fmt.Errorf("building engine: %w", err)
	}
	return eng, nil, nil
}

// coerceValue converts the raw string argument into the value shape the
// question's declared type expects: ParseBool for booleans, a comma
// split for multiselect, the string itself otherwise.
func coerceValue(q catalog.Question, raw string) (catalog.Value, error) {
	switch q.Type {
	case catalog.TypeBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return catalog.Value{}, fmt.Errorf("question %q expects true or false, got %q", q.ID, raw)
		}
		return catalog.BoolValue(b), nil
	case catalog.TypeMultiselect:
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if item := strings.TrimSpace(part); item != "" {
				items = append(items, item)
			}
		}
		return catalog.ListValue(items...), nil
	default:
		return catalog.TextValue(strings.TrimSpace(raw)), nil
	}
}

// formatQuestion renders a question for presentation in a tool response.
func formatQuestion(q catalog.Question, progress engine.Progress) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Question %d of %d** (%s", progress.Current+1, progress.Total, q.Category)
	if q.Required {
		b.WriteString(", required")
	}
	b.WriteString(")\n\n")
	fmt.Fprintf(&b, "%s\n", q.Prompt)
	fmt.Fprintf(&b, "\n- id: `%s`\n- type: %s\n", q.ID, q.Type)
	if len(q.Options) > 0 {
		fmt.Fprintf(&b, "- options: %s\n", strings.Join(q.Options, ", "))
	}
	return b.String()
}

// formatProgress renders a one-line progress summary.
func formatProgress(p engine.Progress) string {
	return fmt.Sprintf("%d of %d questions answered (%d%%)", p.Current, p.Total, p.Percentage)
}

const maxSlugLen = 50

// Slugify converts a feature title into a filesystem-safe slug for the
// generated document's filename.
// Example: "User Profile Editing" → "user-profile-editing"
func Slugify(title string) string {
	if strings.TrimSpace(title) == "" {
		return "untitled-spec"
	}

	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	prevHyphen := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		case r == ' ' || r == '_' || r == '-':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "untitled-spec"
	}
	if len(slug) <= maxSlugLen {
		return slug
	}

	// Truncate at a word boundary if possible.
	truncated := slug[:maxSlugLen]
	if lastHyphen := strings.LastIndex(truncated, "-"); lastHyphen > maxSlugLen/2 {
		truncated = truncated[:lastHyphen]
	}
	return strings.TrimRight(truncated, "-")
}
