package spec

import (
	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/engine"
	"github.com/specforge/specforge/internal/session"
)

// Result bundles everything a caller needs after generation: the
// rendered document, the structured template, and the session's
// completion state.
type Result struct {
	Markdown             string           `json:"markdown"`
	Template             Template         `json:"template"`
	Session              *session.Session `json:"session"`
	IsComplete           bool             `json:"is_complete"`
	CompletionPercentage int              `json:"completion_percentage"`
}

// Validation reports whether a session satisfies the pre-generation
// completeness gate.
type Validation struct {
	IsValid                  bool     `json:"is_valid"`
	MissingRequiredQuestions []string `json:"missing_required_questions,omitempty"`
}

// Build wires an engine and a generator for the session and returns the
// bundled result. Composition only — no logic beyond delegation.
func Build(base *catalog.Catalog, sess *session.Session) (Result, error) {
	eng, err := engine.New(base, sess)
	if err != nil {
		return Result{}, err
	}

	gen := NewGenerator(sess.Answers)
	return Result{
		Markdown:             gen.GenerateMarkdown(sess.Title),
		Template:             gen.Template(),
		Session:              sess,
		IsComplete:           eng.IsComplete(),
		CompletionPercentage: eng.Progress().Percentage,
	}, nil
}

// ValidateCompleteness runs the engine's unanswered-required check and
// reports the result in caller-friendly form.
func ValidateCompleteness(base *catalog.Catalog, sess *session.Session) (Validation, error) {
	eng, err := engine.New(base, sess)
	if err != nil {
		return Validation{}, err
	}

	missing := eng.UnansweredRequired()
	ids := make([]string, 0, len(missing))
	for _, q := range missing {
		ids = append(ids, q.ID)
	}
	return Validation{IsValid: len(ids) == 0, MissingRequiredQuestions: ids}, nil
}
