package engine

import (
	"fmt"
	"strings"
)

// --- Error taxonomy ---
//
// Every failure carries enough structure (which question, what was
// missing) for the transport layer to build a useful message. The engine
// never swallows errors or mutates state on a failed operation.

// ValidationError reports a rejected answer: nothing to answer, a value
// whose shape doesn't match the question's declared type, or an empty
// value for a required question.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	if e.QuestionID == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed for question %q: %s", e.QuestionID, e.Reason)
}

// NotFoundError reports a reference to a session or question that does
// not exist in the given context.
type NotFoundError struct {
	Kind string // "session" or "question"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// PreconditionError reports generation requested on a session that still
// has unanswered required questions. Completion tells the caller how far
// along the session is so it can decide whether to proceed.
type PreconditionError struct {
	Reason     string
	Completion int      // percentage, 0-100
	Missing    []string // unanswered required question ids
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("%s (%d%% complete)", e.Reason, e.Completion)
	if len(e.Missing) > 0 {
		msg += ": missing " + strings.Join(e.Missing, ", ")
	}
	return msg
}
