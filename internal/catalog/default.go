package catalog

// Default returns the built-in question set. The ids are the vocabulary
// the spec generator looks up — renaming one silently empties the
// corresponding document section.
func Default() *Catalog {
	c, err := New(
		Question{
			ID:       "feature-purpose",
			Prompt:   "What problem does this feature solve? Describe the purpose in one or two sentences.",
			Type:     TypeTextarea,
			Category: CategoryOverview,
			Required: true,
			Order:    1,
		},
		Question{
			ID:       "target-users",
			Prompt:   "Who are the target users? List the roles or personas, separated by commas.",
			Type:     TypeText,
			Category: CategoryOverview,
			Required: true,
			Order:    2,
		},
		Question{
			ID:       "business-value",
			Prompt:   "What business value does this feature deliver to those users?",
			Type:     TypeText,
			Category: CategoryOverview,
			Required: false,
			Order:    3,
		},
		Question{
			ID:       "core-functionality",
			Prompt:   "What are the core actions users can perform? List them, separated by commas or one per line.",
			Type:     TypeTextarea,
			Category: CategoryFunctional,
			Required: true,
			Order:    10,
		},
		Question{
			ID:       "edge-cases",
			Prompt:   "Which edge cases should the implementation handle? (empty input, limits, unusual sequences...)",
			Type:     TypeTextarea,
			Category: CategoryFunctional,
			Required: false,
			Order:    11,
		},
		Question{
			ID:       "error-scenarios",
			Prompt:   "Which error scenarios matter? What should happen when things go wrong?",
			Type:     TypeTextarea,
			Category: CategoryFunctional,
			Required: false,
			Order:    12,
		},
		Question{
			ID:       "acceptance-criteria",
			Prompt:   "How will you know this feature is done? List concrete acceptance criteria.",
			Type:     TypeTextarea,
			Category: CategoryFunctional,
			Required: false,
			Order:    13,
		},
		Question{
			ID:       "has-ui",
			Prompt:   "Does this feature have a user interface?",
			Type:     TypeBoolean,
			Category: CategoryUIUX,
			Required: true,
			Order:    20,
		},
		Question{
			ID:        "ui-requirements",
			Prompt:    "Describe the UI requirements: screens, interactions, accessibility needs.",
			Type:      TypeTextarea,
			Category:  CategoryUIUX,
			Required:  true,
			Order:     21,
			DependsOn: &Dependency{QuestionID: "has-ui", Equals: BoolValue(true)},
		},
		Question{
			ID:       "technical-constraints",
			Prompt:   "Are there technical constraints? (language, framework, infrastructure, compatibility...)",
			Type:     TypeTextarea,
			Category: CategoryTechnical,
			Required: false,
			Order:    30,
		},
		Question{
			ID:       "needs-integration",
			Prompt:   "Does this feature integrate with external systems or services?",
			Type:     TypeBoolean,
			Category: CategoryTechnical,
			Required: true,
			Order:    31,
		},
		Question{
			ID:        "integration-details",
			Prompt:    "List the external systems or services and how the feature talks to them.",
			Type:      TypeTextarea,
			Category:  CategoryTechnical,
			Required:  true,
			Order:     32,
			DependsOn: &Dependency{QuestionID: "needs-integration", Equals: BoolValue(true)},
		},
		Question{
			ID:       "dependencies",
			Prompt:   "What does this feature depend on? (other features, libraries, teams, data sources)",
			Type:     TypeTextarea,
			Category: CategoryTechnical,
			Required: false,
			Order:    33,
		},
		Question{
			ID:       "performance-requirements",
			Prompt:   "Are there performance requirements? (latency, throughput, data volume)",
			Type:     TypeTextarea,
			Category: CategoryPerformance,
			Required: false,
			Order:    40,
		},
		Question{
			ID:       "security-requirements",
			Prompt:   "Are there security or privacy requirements? (authentication, authorization, sensitive data)",
			Type:     TypeTextarea,
			Category: CategorySecurity,
			Required: false,
			Order:    50,
		},
	)
	if err != nil {
		// The built-in set is validated by tests; a failure here is a
		// programming error, not a runtime condition.
		panic("catalog: invalid built-in question set: " + err.Error())
	}
	return c
}
