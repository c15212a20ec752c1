// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it receives the concrete repository and
// catalog and injects them into the tools that depend on them. No
// questionnaire logic lives here — only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/session"
	"github.com/specforge/specforge/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all questionnaire tools
// registered. specDir is the default output directory for generated
// documents.
func New(repo session.Repository, base *catalog.Catalog, specDir string) *server.MCPServer {
	s := server.NewMCPServer(
		"specforge",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	startTool := tools.NewStartTool(repo, base)
	s.AddTool(startTool.Definition(), startTool.Handle)

	answerTool := tools.NewAnswerTool(repo, base)
	s.AddTool(answerTool.Definition(), answerTool.Handle)

	previousTool := tools.NewPreviousTool(repo, base)
	s.AddTool(previousTool.Definition(), previousTool.Handle)

	gotoTool := tools.NewGotoTool(repo, base)
	s.AddTool(gotoTool.Definition(), gotoTool.Handle)

	statusTool := tools.NewStatusTool(repo, base)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	addQuestionTool := tools.NewAddQuestionTool(repo, base)
	s.AddTool(addQuestionTool.Definition(), addQuestionTool.Handle)

	generateTool := tools.NewGenerateTool(repo, base, specDir)
	s.AddTool(generateTool.Definition(), generateTool.Handle)

	listTool := tools.NewListTool(repo)
	s.AddTool(listTool.Definition(), listTool.Handle)

	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to run the questionnaire effectively.
func serverInstructions() string {
	return `You have access to specforge, an interactive specification questionnaire server.

## WHEN TO USE specforge

Suggest starting a questionnaire when the user:
- Describes a feature idea and wants to start building it
- Asks you to write a spec, requirements, or a PRD for a feature
- Gives vague requirements that need structure before coding

## Workflow

1. Call spec_start with a short title and optional description.
2. The response contains the first question. Ask the USER the question in
   your own words — do not invent answers yourself.
3. Record their answer verbatim with spec_answer. The tool returns the
   next question; repeat until the questionnaire reports completion.
4. Some questions only appear after a specific earlier answer (for
   example, UI questions appear only when the user says the feature has a
   UI). The sequence adapts as answers come in — always present whatever
   question the tool returns next.
5. If an answer reveals an area the built-in questions don't cover, add a
   targeted follow-up with spec_add_question before moving on.
6. When complete, call spec_generate. The tool writes the markdown
   specification to disk and returns it. Show the user the document path.

## Answer format

- Pass answers exactly as the user gave them.
- Boolean questions take "true" or "false".
- Multiselect questions take comma-separated options.
- List-style answers (users, functions, edge cases) work best as
  comma-separated items — the generator splits on commas and newlines.

## Revising answers

- spec_previous steps back one question.
- spec_goto jumps to any currently eligible question by id.
- Re-answering replaces the old answer; dependent questions may appear or
  disappear as a result. Check spec_status when in doubt.

## Important rules

- NEVER answer questions on the user's behalf.
- NEVER call spec_generate before the tool reports all required questions
  answered, unless the user explicitly wants a partial document
  (force=true).
- Answers are persisted per session — use spec_list to resume work from a
  previous conversation.`
}
