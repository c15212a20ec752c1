// Package engine implements the questionnaire state machine.
//
// An Engine operates over a session and that session's catalog view. It
// computes the eligible question subset, drives the cursor, validates
// and records answers, and reports progress. Every operation is a pure
// in-memory state transition — no I/O, no suspension. Persisting the
// mutated session is the caller's job.
//
// The eligible sequence is always recomputed from (catalog, answers):
// recording an answer can unlock later questions or make previously
// eligible ones disappear, so eligibility is never cached.
package engine

import (
	"fmt"
	"math"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/session"
)

// Engine drives one session's questionnaire.
type Engine struct {
	view *catalog.Catalog
	sess *session.Session
}

// New builds an engine for the session. The base catalog is cloned and
// the session's dynamic follow-up questions are merged in, so mutations
// of the view never touch the shared base.
func New(base *catalog.Catalog, sess *session.Session) (*Engine, error) {
	view := base.Clone()
	for _, q := range sess.Dynamic {
		if err := view.Insert(q); err != nil {
			return nil, fmt.Errorf("restoring dynamic question %q: %w", q.ID, err)
		}
	}
	return &Engine{view: view, sess: sess}, nil
}

// Session returns the session the engine operates on.
func (e *Engine) Session() *session.Session { return e.sess }

// View returns the session's catalog view (base plus dynamic questions).
func (e *Engine) View() *catalog.Catalog { return e.view }

// Eligible returns the questions currently eligible for this session, in
// catalog order: every question with no dependency rule, plus every
// question whose referenced question has an answer strictly equal to the
// rule's required value. A question whose dependency is unanswered is
// excluded, not deferred.
func (e *Engine) Eligible() []catalog.Question {
	var eligible []catalog.Question
	for _, q := range e.view.Questions() {
		if q.DependsOn == nil {
			eligible = append(eligible, q)
			continue
		}
		answer, ok := e.sess.Answer(q.DependsOn.QuestionID)
		if ok && answer.Value.Equals(q.DependsOn.Equals) {
			eligible = append(eligible, q)
		}
	}
	return eligible
}

// Current returns the question at the cursor, or false if the cursor is
// past the end (session complete or no eligible questions).
func (e *Engine) Current() (catalog.Question, bool) {
	eligible := e.Eligible()
	if e.sess.Cursor < 0 || e.sess.Cursor >= len(eligible) {
		return catalog.Question{}, false
	}
	return eligible[e.sess.Cursor], true
}

// Answer validates and records a value for the current question, then
// advances the cursor. On success the eligible sequence is recomputed
// before the completion check, because the new answer may have changed
// it. On failure nothing changes.
func (e *Engine) Answer(value catalog.Value) error {
	q, ok := e.Current()
	if !ok {
		return &ValidationError{Reason: "no current question to answer"}
	}
	if err := validateValue(q, value); err != nil {
		return err
	}

	e.sess.SetAnswer(q.ID, value)
	e.sess.Cursor++
	e.sess.Complete = e.sess.Cursor >= len(e.Eligible())
	e.sess.Touch()
	return nil
}

// validateValue checks a value against the question's declared type —
// not the runtime shape alone, so a boolean supplied for a text question
// is rejected even though it is a perfectly shaped boolean.
func validateValue(q catalog.Question, value catalog.Value) error {
	switch q.Type {
	case catalog.TypeBoolean:
		if value.Kind != catalog.KindBool {
			return &ValidationError{QuestionID: q.ID, Reason: "expected a boolean answer"}
		}
	case catalog.TypeMultiselect:
		if value.Kind != catalog.KindList {
			return &ValidationError{QuestionID: q.ID, Reason: "expected a list of options"}
		}
		for _, item := range value.List {
			if !containsOption(q.Options, item) {
				return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not a valid option", item)}
			}
		}
	case catalog.TypeSelect:
		if value.Kind != catalog.KindText {
			return &ValidationError{QuestionID: q.ID, Reason: "expected a single option"}
		}
		if !value.IsEmpty() && !containsOption(q.Options, value.Text) {
			return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not a valid option", value.Text)}
		}
	default:
		if value.Kind != catalog.KindText {
			return &ValidationError{QuestionID: q.ID, Reason: "expected a text answer"}
		}
	}

	if q.Required && value.IsEmpty() {
		return &ValidationError{QuestionID: q.ID, Reason: "a value is required"}
	}
	return nil
}

func containsOption(options []string, item string) bool {
	for _, o := range options {
		if o == item {
			return true
		}
	}
	return false
}

// Previous steps the cursor back one position and clears the completion
// flag. Returns false (no-op) at cursor 0.
func (e *Engine) Previous() bool {
	if e.sess.Cursor <= 0 {
		return false
	}
	e.sess.Cursor--
	e.sess.Complete = false
	e.sess.Touch()
	return true
}

// GoTo moves the cursor to the given question's position in the current
// eligible sequence. Returns false without mutating if the question is
// not currently eligible.
func (e *Engine) GoTo(questionID string) bool {
	for i, q := range e.Eligible() {
		if q.ID == questionID {
			e.sess.Cursor = i
			e.sess.Complete = false
			e.sess.Touch()
			return true
		}
	}
	return false
}

// Progress reports questionnaire progress.
type Progress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Progress returns the session's progress against the current eligible
// sequence. Answers to questions that later became ineligible still
// count, but Current never exceeds Total.
func (e *Engine) Progress() Progress {
	total := len(e.Eligible())
	current := len(e.sess.Answers)
	if current > total {
		current = total
	}
	if total == 0 {
		return Progress{}
	}
	pct := int(math.Round(float64(current) / float64(total) * 100))
	return Progress{Current: current, Total: total, Percentage: pct}
}

// IsComplete reports whether the cursor has advanced past the last
// eligible question, evaluated freshly at the moment of the check.
func (e *Engine) IsComplete() bool {
	return e.sess.Cursor >= len(e.Eligible())
}

// AddDynamicQuestion injects a follow-up question into this session's
// catalog view, preserving the ascending-order invariant, and records it
// on the session so it survives a reload. The cursor is untouched —
// eligibility recomputation decides when the question surfaces.
func (e *Engine) AddDynamicQuestion(q catalog.Question) error {
	if err := e.view.Insert(q); err != nil {
		return err
	}
	e.sess.Dynamic = append(e.sess.Dynamic, q)
	e.sess.Complete = e.sess.Cursor >= len(e.Eligible())
	e.sess.Touch()
	return nil
}

// UnansweredRequired returns the eligible questions that are required
// and have no recorded answer — the pre-generation completeness gate.
func (e *Engine) UnansweredRequired() []catalog.Question {
	var missing []catalog.Question
	for _, q := range e.Eligible() {
		if !q.Required {
			continue
		}
		if _, ok := e.sess.Answer(q.ID); !ok {
			missing = append(missing, q)
		}
	}
	return missing
}
