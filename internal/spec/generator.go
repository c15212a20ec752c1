// Package spec turns a session's collected answers into a specification
// document.
//
// The generator is a pure, deterministic transformation: the same answer
// set always produces the same markdown and the same structured template.
// It is deliberately coupled to the catalog's well-known question ids —
// it looks answers up by id, not by category.
package spec

import (
	"fmt"
	"strings"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/session"
)

// Well-known question ids the generator reads. These match the built-in
// catalog; custom catalogs keep document sections populated by reusing
// the same ids.
const (
	qFeaturePurpose     = "feature-purpose"
	qTargetUsers        = "target-users"
	qBusinessValue      = "business-value"
	qCoreFunctionality  = "core-functionality"
	qEdgeCases          = "edge-cases"
	qErrorScenarios     = "error-scenarios"
	qAcceptanceCriteria = "acceptance-criteria"
	qUIRequirements     = "ui-requirements"
	qTechConstraints    = "technical-constraints"
	qPerformance        = "performance-requirements"
	qSecurity           = "security-requirements"
	qIntegrations       = "integration-details"
	qDependencies       = "dependencies"
)

// defaultBusinessValue fills the "so that" clause of generated user
// stories when the business-value question was not answered.
const defaultBusinessValue = "I can accomplish my goals efficiently"

// boilerplateCriteria is always appended to the acceptance criteria
// section, so the section is never empty once any functional answer
// exists.
var boilerplateCriteria = []string{
	"All functional requirements are implemented and verified",
	"Edge cases and error scenarios are handled gracefully",
	"The feature passes code review and automated tests",
}

// Generator renders a flat answer set into specification output.
type Generator struct {
	answers map[string]catalog.Value
}

// NewGenerator builds a generator over the given answers.
func NewGenerator(answers []session.Answer) *Generator {
	m := make(map[string]catalog.Value, len(answers))
	for _, a := range answers {
		m[a.QuestionID] = a.Value
	}
	return &Generator{answers: m}
}

// raw returns the primitive string form of an answer: list values joined
// with ", ", booleans as "true"/"false", text as-is. Empty string when
// unanswered.
func (g *Generator) raw(questionID string) string {
	v, ok := g.answers[questionID]
	if !ok {
		return ""
	}
	return v.String()
}

// items returns the answer normalized into a trimmed item list.
func (g *Generator) items(questionID string) []string {
	return splitItems(g.raw(questionID))
}

// splitItems normalizes freeform text into a list of items: split on
// commas and newlines, strip leading bullet glyphs, trim whitespace,
// drop empties. Both "I typed a paragraph" and "I typed a list" inputs
// collapse into the same uniform shape. The comma split will fragment a
// sentence like "must be 18, verified, and opted in" — that behavior is
// load-bearing for downstream tooling and must not be changed.
func splitItems(raw string) []string {
	var items []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		item := strings.TrimSpace(part)
		item = strings.TrimLeft(item, "-*•+ \t")
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// userStories produces the cross product "As a {user}, I want {function}
// so that {business value}." for every (user, function) pair. With no
// users it falls back to one generic story per function; with no
// functions it produces nothing.
func (g *Generator) userStories() []string {
	users := g.items(qTargetUsers)
	functions := g.items(qCoreFunctionality)
	if len(functions) == 0 {
		return nil
	}

	value := strings.TrimSpace(g.raw(qBusinessValue))
	if value == "" {
		value = defaultBusinessValue
	}

	if len(users) == 0 {
		stories := make([]string, 0, len(functions))
		for _, fn := range functions {
			stories = append(stories, fmt.Sprintf("As a user, I want %s so that %s.", fn, value))
		}
		return stories
	}

	stories := make([]string, 0, len(users)*len(functions))
	for _, user := range users {
		for _, fn := range functions {
			stories = append(stories, fmt.Sprintf("As a %s, I want %s so that %s.", user, fn, value))
		}
	}
	return stories
}

// prefixed prepends a label to every item, used to fold performance and
// security answers into the technical constraints section without losing
// their origin.
func prefixed(label string, items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, label+": "+item)
	}
	return out
}

// Template returns the specification as discrete per-section string
// slices with no markdown formatting. Recomputed on every call from the
// same answers the markdown form uses, so the two can never drift.
func (g *Generator) Template() Template {
	edgeCases := append(g.items(qEdgeCases), g.items(qErrorScenarios)...)

	constraints := g.items(qTechConstraints)
	constraints = append(constraints, prefixed("Performance", g.items(qPerformance))...)
	constraints = append(constraints, prefixed("Security", g.items(qSecurity))...)

	criteria := append(g.items(qAcceptanceCriteria), boilerplateCriteria...)

	deps := append(g.items(qDependencies), g.items(qIntegrations)...)

	return Template{
		Overview:               g.items(qFeaturePurpose),
		UserStories:            g.userStories(),
		FunctionalRequirements: g.items(qCoreFunctionality),
		EdgeCases:              edgeCases,
		UIRequirements:         g.items(qUIRequirements),
		TechnicalConstraints:   constraints,
		AcceptanceCriteria:     criteria,
		Dependencies:           deps,
	}
}

// GenerateMarkdown renders the full specification document: an H1 with
// the title, the non-empty sections in fixed order, and a generation
// date footer. Sections whose body is empty are omitted entirely — no
// dangling headers.
func (g *Generator) GenerateMarkdown(title string) string {
	tpl := g.Template()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", strings.TrimSpace(title))

	for _, section := range tpl.sections() {
		if len(section.Items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", section.Name)
		for _, item := range section.Items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	fmt.Fprintf(&b, "\n---\n\n*Generated on %s*\n", timeNow().UTC().Format("2006-01-02"))
	return b.String()
}
