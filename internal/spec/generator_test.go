package spec

import (
	"strings"
	"testing"
	"time"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/session"
)

func init() {
	// Freeze the generation-date footer.
	timeNow = func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}
}

// --- Test helpers ---

func answers(pairs map[string]catalog.Value) []session.Answer {
	var out []session.Answer
	for id, v := range pairs {
		out = append(out, session.Answer{QuestionID: id, Value: v, AnsweredAt: "2026-03-14T12:00:00Z"})
	}
	return out
}

func countBullets(section string) int {
	return strings.Count(section, "\n- ")
}

// extractSection returns the body of one "## Name" section, or "" if
// the header is absent.
func extractSection(doc, name string) string {
	marker := "## " + name + "\n"
	start := strings.Index(doc, marker)
	if start < 0 {
		return ""
	}
	rest := doc[start+len(marker):]
	if end := strings.Index(rest, "\n## "); end >= 0 {
		return rest[:end]
	}
	if end := strings.Index(rest, "\n---"); end >= 0 {
		return rest[:end]
	}
	return rest
}

// --- splitItems ---

func TestSplitItems_CommasAndNewlines(t *testing.T) {
	got := splitItems("create posts, delete posts\nedit posts")
	want := []string{"create posts", "delete posts", "edit posts"}
	if len(got) != len(want) {
		t.Fatalf("splitItems = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitItems[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitItems_StripsBulletGlyphs(t *testing.T) {
	got := splitItems("- first\n* second\n• third")
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitItems[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitItems_DropsEmpties(t *testing.T) {
	got := splitItems(" , ,a,, \n\n")
	if len(got) != 1 || got[0] != "a" {
		t.Errorf("splitItems = %v, want [a]", got)
	}
}

func TestSplitItems_FragmentsProseOnCommas(t *testing.T) {
	// Known, load-bearing behavior: prose with commas fragments.
	got := splitItems("Users must be 18, verified, and opted in")
	if len(got) != 3 {
		t.Errorf("splitItems fragments prose into %d items, want 3 (preserved heuristic)", len(got))
	}
}

// --- User stories ---

func TestUserStories_CrossProduct(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"target-users":       catalog.TextValue("Admin, Guest"),
		"core-functionality": catalog.TextValue("create posts, delete posts"),
		"business-value":     catalog.TextValue("content stays fresh"),
	}))

	stories := g.userStories()
	if len(stories) != 4 {
		t.Fatalf("stories = %d, want 4 (2 users x 2 functions)", len(stories))
	}
	want := []string{
		"As a Admin, I want create posts so that content stays fresh.",
		"As a Admin, I want delete posts so that content stays fresh.",
		"As a Guest, I want create posts so that content stays fresh.",
		"As a Guest, I want delete posts so that content stays fresh.",
	}
	for i := range want {
		if stories[i] != want[i] {
			t.Errorf("stories[%d] = %q, want %q", i, stories[i], want[i])
		}
	}
}

func TestUserStories_NoUsersFallsBackToGeneric(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"core-functionality": catalog.TextValue("export data"),
	}))

	stories := g.userStories()
	if len(stories) != 1 {
		t.Fatalf("stories = %v, want one generic story per function", stories)
	}
	if !strings.HasPrefix(stories[0], "As a user, I want export data so that ") {
		t.Errorf("story = %q", stories[0])
	}
}

func TestUserStories_NoFunctionsProducesNothing(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"target-users": catalog.TextValue("Admin"),
	}))
	if stories := g.userStories(); len(stories) != 0 {
		t.Errorf("stories = %v, want none without functions", stories)
	}
}

// --- Markdown document ---

func TestGenerateMarkdown_StartsWithTitleH1(t *testing.T) {
	g := NewGenerator(nil)
	doc := g.GenerateMarkdown("Payment Flow")
	if !strings.HasPrefix(doc, "# Payment Flow\n") {
		t.Errorf("document must start with an H1 of the title:\n%s", doc)
	}
}

func TestGenerateMarkdown_CrossProductSection(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"target-users":       catalog.TextValue("Admin, Guest"),
		"core-functionality": catalog.TextValue("create posts, delete posts"),
	}))

	doc := g.GenerateMarkdown("Posts")
	section := extractSection(doc, "User Stories")
	if got := countBullets(section); got != 4 {
		t.Errorf("User Stories has %d bullets, want exactly 4:\n%s", got, section)
	}
}

func TestGenerateMarkdown_OmitsEmptySections(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"feature-purpose":    catalog.TextValue("Let users write posts"),
		"target-users":       catalog.TextValue("Writer"),
		"core-functionality": catalog.TextValue("write posts"),
		"edge-cases":         catalog.TextValue(""),
		"error-scenarios":    catalog.TextValue(""),
	}))

	doc := g.GenerateMarkdown("Posts")
	if strings.Contains(doc, "## Edge Cases") {
		t.Errorf("empty Edge Cases section must be omitted entirely:\n%s", doc)
	}
	if strings.Contains(doc, "## UI/UX Requirements") {
		t.Error("unanswered UI section must be omitted")
	}
}

func TestGenerateMarkdown_SectionOrderIsFixed(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"feature-purpose":       catalog.TextValue("purpose"),
		"target-users":          catalog.TextValue("Admin"),
		"core-functionality":    catalog.TextValue("do things"),
		"edge-cases":            catalog.TextValue("empty input"),
		"ui-requirements":       catalog.TextValue("simple form"),
		"technical-constraints": catalog.TextValue("Go backend"),
		"dependencies":          catalog.TextValue("auth service"),
	}))

	doc := g.GenerateMarkdown("Everything")
	order := []string{
		"## Overview", "## User Stories", "## Functional Requirements",
		"## Edge Cases", "## UI/UX Requirements", "## Technical Constraints",
		"## Acceptance Criteria", "## Dependencies",
	}
	last := -1
	for _, header := range order {
		idx := strings.Index(doc, header)
		if idx < 0 {
			t.Fatalf("missing section %q:\n%s", header, doc)
		}
		if idx < last {
			t.Errorf("section %q out of order", header)
		}
		last = idx
	}
}

func TestGenerateMarkdown_EdgeCasesMergesErrorScenarios(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"edge-cases":      catalog.TextValue("empty input"),
		"error-scenarios": catalog.TextValue("network failure"),
	}))

	section := extractSection(g.GenerateMarkdown("t"), "Edge Cases")
	if !strings.Contains(section, "empty input") || !strings.Contains(section, "network failure") {
		t.Errorf("Edge Cases section = %q", section)
	}
}

func TestGenerateMarkdown_BoilerplateCriteriaAlwaysAppended(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"core-functionality": catalog.TextValue("sync files"),
	}))

	section := extractSection(g.GenerateMarkdown("t"), "Acceptance Criteria")
	if got := countBullets(section); got != len(boilerplateCriteria) {
		t.Errorf("criteria bullets = %d, want the %d boilerplate entries", got, len(boilerplateCriteria))
	}
}

func TestGenerateMarkdown_InputDerivedCriteriaComeFirst(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"acceptance-criteria": catalog.TextValue("sync completes in under 5s"),
	}))

	section := extractSection(g.GenerateMarkdown("t"), "Acceptance Criteria")
	if got := countBullets(section); got != len(boilerplateCriteria)+1 {
		t.Errorf("criteria bullets = %d, want input-derived plus boilerplate", got)
	}
	if !strings.HasPrefix(strings.TrimSpace(section), "- sync completes in under 5s") {
		t.Errorf("input-derived criteria must precede boilerplate:\n%s", section)
	}
}

func TestGenerateMarkdown_MultiselectAnswersJoinThenSplit(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"technical-constraints": catalog.ListValue("Go backend", "PostgreSQL"),
	}))

	section := extractSection(g.GenerateMarkdown("t"), "Technical Constraints")
	if got := countBullets(section); got != 2 {
		t.Errorf("list answer should render as %d bullets, want 2:\n%s", got, section)
	}
}

func TestGenerateMarkdown_FooterHasGenerationDate(t *testing.T) {
	doc := NewGenerator(nil).GenerateMarkdown("t")
	if !strings.Contains(doc, "*Generated on 2026-03-14*") {
		t.Errorf("missing generation-date footer:\n%s", doc)
	}
}

// --- Template ---

func TestTemplate_MatchesMarkdownContent(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"target-users":       catalog.TextValue("Admin, Guest"),
		"core-functionality": catalog.TextValue("create posts, delete posts"),
		"edge-cases":         catalog.TextValue("empty title"),
	}))

	tpl := g.Template()
	doc := g.GenerateMarkdown("t")

	if len(tpl.UserStories) != 4 {
		t.Errorf("Template.UserStories = %d, want 4", len(tpl.UserStories))
	}
	for _, story := range tpl.UserStories {
		if !strings.Contains(doc, story) {
			t.Errorf("markdown missing template story %q", story)
		}
	}
	for _, ec := range tpl.EdgeCases {
		if !strings.Contains(doc, ec) {
			t.Errorf("markdown missing template edge case %q", ec)
		}
	}
}

func TestTemplate_NoMarkdownFormattingInItems(t *testing.T) {
	g := NewGenerator(answers(map[string]catalog.Value{
		"core-functionality": catalog.TextValue("- create posts"),
	}))
	tpl := g.Template()
	if len(tpl.FunctionalRequirements) != 1 || strings.HasPrefix(tpl.FunctionalRequirements[0], "-") {
		t.Errorf("template items must be plain strings: %v", tpl.FunctionalRequirements)
	}
}
