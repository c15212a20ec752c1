package spec

// Template holds the specification content as discrete per-section
// string slices, for callers that need structured access instead of a
// rendered document.
type Template struct {
	Overview               []string `json:"overview"`
	UserStories            []string `json:"user_stories"`
	FunctionalRequirements []string `json:"functional_requirements"`
	EdgeCases              []string `json:"edge_cases"`
	UIRequirements         []string `json:"ui_requirements"`
	TechnicalConstraints   []string `json:"technical_constraints"`
	AcceptanceCriteria     []string `json:"acceptance_criteria"`
	Dependencies           []string `json:"dependencies"`
}

// namedSection pairs a section heading with its items for rendering.
type namedSection struct {
	Name  string
	Items []string
}

// sections returns the template's sections in the document's fixed
// render order.
func (t Template) sections() []namedSection {
	return []namedSection{
		{"Overview", t.Overview},
		{"User Stories", t.UserStories},
		{"Functional Requirements", t.FunctionalRequirements},
		{"Edge Cases", t.EdgeCases},
		{"UI/UX Requirements", t.UIRequirements},
		{"Technical Constraints", t.TechnicalConstraints},
		{"Acceptance Criteria", t.AcceptanceCriteria},
		{"Dependencies", t.Dependencies},
	}
}
