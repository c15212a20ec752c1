// Package catalog defines the questionnaire's question definitions and
// the ordered catalog they live in.
//
// Questions are immutable records defined at process start (built-in set
// or YAML file). The only runtime mutation is Insert, which places a
// dynamically generated follow-up question into the ordered view while
// preserving the ascending-order invariant.
package catalog

import (
	"fmt"
	"sort"
)

// --- Question type enum ---

// QuestionType categorizes how a question is answered.
type QuestionType string

const (
	TypeText        QuestionType = "text"        // single-line free text
	TypeTextarea    QuestionType = "textarea"    // multi-line free text
	TypeSelect      QuestionType = "select"      // one of Options
	TypeMultiselect QuestionType = "multiselect" // ordered subset of Options
	TypeBoolean     QuestionType = "boolean"     // yes/no
)

// validTypes is the set of allowed question types.
var validTypes = map[QuestionType]bool{
	TypeText:        true,
	TypeTextarea:    true,
	TypeSelect:      true,
	TypeMultiselect: true,
	TypeBoolean:     true,
}

// ValidateType returns an error if the type is not recognized.
func ValidateType(t QuestionType) error {
	if !validTypes[t] {
		return fmt.Errorf("invalid question type %q: must be one of: text, textarea, select, multiselect, boolean", t)
	}
	return nil
}

// --- Category enum ---

// Category groups questions by the specification area they feed.
type Category string

const (
	CategoryOverview    Category = "overview"
	CategoryFunctional  Category = "functional"
	CategoryTechnical   Category = "technical"
	CategoryUIUX        Category = "ui/ux"
	CategoryPerformance Category = "performance"
	CategorySecurity    Category = "security"
)

// validCategories is the set of allowed categories.
var validCategories = map[Category]bool{
	CategoryOverview:    true,
	CategoryFunctional:  true,
	CategoryTechnical:   true,
	CategoryUIUX:        true,
	CategoryPerformance: true,
	CategorySecurity:    true,
}

// ValidateCategory returns an error if the category is not recognized.
func ValidateCategory(c Category) error {
	if !validCategories[c] {
		return fmt.Errorf("invalid category %q: must be one of: overview, functional, technical, ui/ux, performance, security", c)
	}
	return nil
}

// --- Core data structures ---

// Dependency restricts a question's eligibility to sessions where the
// referenced question has already been answered with exactly this value.
type Dependency struct {
	QuestionID string `json:"question_id" yaml:"question"`
	Equals     Value  `json:"equals" yaml:"equals"`
}

// Question is a single catalog entry.
type Question struct {
	ID        string       `json:"id" yaml:"id"`
	Prompt    string       `json:"prompt" yaml:"prompt"`
	Type      QuestionType `json:"type" yaml:"type"`
	Category  Category     `json:"category" yaml:"category"`
	Required  bool         `json:"required" yaml:"required"`
	Order     int          `json:"order" yaml:"order"`
	Options   []string     `json:"options,omitempty" yaml:"options,omitempty"`
	DependsOn *Dependency  `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// Validate checks a question definition in isolation.
func (q Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question is missing an id")
	}
	if q.Prompt == "" {
		return fmt.Errorf("question %q is missing a prompt", q.ID)
	}
	if err := ValidateType(q.Type); err != nil {
		return fmt.Errorf("question %q: %w", q.ID, err)
	}
	if err := ValidateCategory(q.Category); err != nil {
		return fmt.Errorf("question %q: %w", q.ID, err)
	}
	needsOptions := q.Type == TypeSelect || q.Type == TypeMultiselect
	if needsOptions && len(q.Options) == 0 {
		return fmt.Errorf("question %q has type %s but no options", q.ID, q.Type)
	}
	if !needsOptions && len(q.Options) > 0 {
		return fmt.Errorf("question %q has type %s and must not declare options", q.ID, q.Type)
	}
	if q.DependsOn != nil && q.DependsOn.QuestionID == "" {
		return fmt.Errorf("question %q has a dependency rule without a question id", q.ID)
	}
	return nil
}

// --- Catalog ---

// Catalog is an ordered set of questions, sorted ascending by Order with
// declaration order breaking ties.
type Catalog struct {
	questions []Question
}

// New builds a catalog from the given questions. Every question is
// validated, ids must be unique, and dependency rules must reference
// questions present in the catalog.
func New(questions ...Question) (*Catalog, error) {
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}
	for _, q := range questions {
		if q.DependsOn != nil && !seen[q.DependsOn.QuestionID] {
			return nil, fmt.Errorf("question %q depends on unknown question %q", q.ID, q.DependsOn.QuestionID)
		}
	}

	ordered := make([]Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	return &Catalog{questions: ordered}, nil
}

// Clone returns an independent copy. Engines clone the base catalog so a
// session's dynamic questions never leak into other sessions.
func (c *Catalog) Clone() *Catalog {
	questions := make([]Question, len(c.questions))
	copy(questions, c.questions)
	return &Catalog{questions: questions}
}

// Questions returns the ordered question list. Callers must not mutate it.
func (c *Catalog) Questions() []Question {
	return c.questions
}

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Get returns the question with the given id.
func (c *Catalog) Get(id string) (Question, bool) {
	for _, q := range c.questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Insert places a new question before the first existing question whose
// Order exceeds the new one (appending if none), preserving the catalog's
// order invariant. The new id must be unique and any dependency rule must
// reference an existing question.
func (c *Catalog) Insert(q Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if _, exists := c.Get(q.ID); exists {
		return fmt.Errorf("duplicate question id %q", q.ID)
	}
	if q.DependsOn != nil {
		if _, ok := c.Get(q.DependsOn.QuestionID); !ok {
			return fmt.Errorf("question %q depends on unknown question %q", q.ID, q.DependsOn.QuestionID)
		}
	}

	pos := len(c.questions)
	for i, existing := range c.questions {
		if existing.Order > q.Order {
			pos = i
			break
		}
	}

	c.questions = append(c.questions, Question{})
	copy(c.questions[pos+1:], c.questions[pos:])
	c.questions[pos] = q
	return nil
}
