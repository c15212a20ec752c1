// Package session defines the questionnaire session aggregate and its
// persistence interface.
//
// A Session is a JSON-serializable record: identity, feature title and
// description, the ordered answers collected so far, the cursor into the
// eligible-question sequence, and the completion flag. All questionnaire
// logic lives in the engine package — this package only holds state and
// moves it to and from storage.
package session

import (
	"strings"

	"github.com/google/uuid"
	"github.com/specforge/specforge/internal/catalog"
)

// Answer records one response to a catalog question.
type Answer struct {
	QuestionID string        `json:"question_id"`
	Value      catalog.Value `json:"value"`
	AnsweredAt string        `json:"answered_at"` // RFC3339
}

// Session is the aggregate root for one feature's questionnaire.
//
// Cursor indexes into the eligible-question sequence, not the full
// catalog; the eligible sequence is recomputed from (catalog, answers) on
// every use and never stored here.
type Session struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Cursor      int      `json:"cursor"`
	Answers     []Answer `json:"answers"`
	Complete    bool     `json:"complete"`

	// Dynamic holds follow-up questions injected mid-session. They are
	// part of this session's catalog view only — never the shared base
	// catalog — so they survive restarts alongside their answers.
	Dynamic []catalog.Question `json:"dynamic_questions,omitempty"`

	CreatedAt string `json:"created_at"` // RFC3339
	UpdatedAt string `json:"updated_at"` // RFC3339
}

// New creates an empty session: cursor 0, no answers, incomplete.
func New(title, description string) *Session {
	now := timeNow().UTC().Format(timeLayout)
	return &Session{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Answers:     []Answer{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Answer returns the recorded answer for a question, if any.
func (s *Session) Answer(questionID string) (Answer, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}

// SetAnswer records an answer, replacing any prior answer for the same
// question id. At most one answer per question ever exists.
func (s *Session) SetAnswer(questionID string, value catalog.Value) {
	answer := Answer{
		QuestionID: questionID,
		Value:      value,
		AnsweredAt: timeNow().UTC().Format(timeLayout),
	}
	for i, a := range s.Answers {
		if a.QuestionID == questionID {
			s.Answers[i] = answer
			return
		}
	}
	s.Answers = append(s.Answers, answer)
}

// Touch updates the session's UpdatedAt timestamp.
func (s *Session) Touch() {
	s.UpdatedAt = timeNow().UTC().Format(timeLayout)
}
