package engine

import (
	"errors"
	"testing"

	"github.com/specforge/specforge/internal/catalog"
	"github.com/specforge/specforge/internal/session"
)

// --- Test helpers ---

// testCatalog builds a small questionnaire:
//
//	has-notifications     boolean, required, order 1
//	notification-channels multiselect, required, order 2, depends on has-notifications == true
//	audience              text, required, order 3
//	notes                 textarea, optional, order 4
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		catalog.Question{
			ID: "has-notifications", Prompt: "Does the feature send notifications?",
			Type: catalog.TypeBoolean, Category: catalog.CategoryFunctional,
			Required: true, Order: 1,
		},
		catalog.Question{
			ID: "notification-channels", Prompt: "Which channels?",
			Type: catalog.TypeMultiselect, Category: catalog.CategoryFunctional,
			Required: true, Order: 2,
			Options:   []string{"email", "sms", "push"},
			DependsOn: &catalog.Dependency{QuestionID: "has-notifications", Equals: catalog.BoolValue(true)},
		},
		catalog.Question{
			ID: "audience", Prompt: "Who receives them?",
			Type: catalog.TypeText, Category: catalog.CategoryOverview,
			Required: true, Order: 3,
		},
		catalog.Question{
			ID: "notes", Prompt: "Anything else?",
			Type: catalog.TypeTextarea, Category: catalog.CategoryFunctional,
			Order: 4,
		},
	)
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return c
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(testCatalog(t), session.New("Notifications", ""))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return eng
}

func mustAnswer(t *testing.T, eng *Engine, value catalog.Value) {
	t.Helper()
	if err := eng.Answer(value); err != nil {
		t.Fatalf("Answer(%v): %v", value, err)
	}
}

func eligibleIDs(eng *Engine) []string {
	var ids []string
	for _, q := range eng.Eligible() {
		ids = append(ids, q.ID)
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- Eligibility ---

func TestEligible_ExcludesUnansweredDependency(t *testing.T) {
	eng := testEngine(t)
	got := eligibleIDs(eng)
	want := []string{"has-notifications", "audience", "notes"}
	if !equalIDs(got, want) {
		t.Errorf("Eligible = %v, want %v (dependent question excluded, not deferred)", got, want)
	}
}

func TestEligible_DependencyUnlockAndRelock(t *testing.T) {
	eng := testEngine(t)

	// Before: notification-channels is invisible.
	if equalIDs(eligibleIDs(eng), []string{"has-notifications", "notification-channels", "audience", "notes"}) {
		t.Fatal("dependent question should not be eligible before its dependency is answered")
	}

	// Answering true unlocks it immediately.
	mustAnswer(t, eng, catalog.BoolValue(true))
	want := []string{"has-notifications", "notification-channels", "audience", "notes"}
	if got := eligibleIDs(eng); !equalIDs(got, want) {
		t.Errorf("Eligible after unlock = %v, want %v", got, want)
	}

	// Changing the answer to false makes it disappear again.
	if !eng.GoTo("has-notifications") {
		t.Fatal("GoTo(has-notifications) failed")
	}
	mustAnswer(t, eng, catalog.BoolValue(false))
	want = []string{"has-notifications", "audience", "notes"}
	if got := eligibleIDs(eng); !equalIDs(got, want) {
		t.Errorf("Eligible after relock = %v, want %v", got, want)
	}
}

func TestEligible_StrictEqualityNotTruthy(t *testing.T) {
	c, err := catalog.New(
		catalog.Question{
			ID: "mode", Prompt: "Mode?", Type: catalog.TypeText,
			Category: catalog.CategoryTechnical, Order: 1,
		},
		catalog.Question{
			ID: "detail", Prompt: "Detail?", Type: catalog.TypeText,
			Category: catalog.CategoryTechnical, Order: 2,
			DependsOn: &catalog.Dependency{QuestionID: "mode", Equals: catalog.TextValue("advanced")},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	eng, _ := New(c, session.New("t", ""))

	mustAnswer(t, eng, catalog.TextValue("Advanced")) // case differs
	for _, q := range eng.Eligible() {
		if q.ID == "detail" {
			t.Error("dependency comparison must be exact, \"Advanced\" != \"advanced\"")
		}
	}
}

func TestEligible_FixedPointIndependentOfAnswerOrder(t *testing.T) {
	// Same final answer set supplied in two different orders must yield
	// the same eligible set.
	buildAnswered := func(order []string) *Engine {
		eng := testEngine(t)
		values := map[string]catalog.Value{
			"has-notifications": catalog.BoolValue(true),
			"audience":          catalog.TextValue("admins"),
			"notes":             catalog.TextValue("none"),
		}
		for _, id := range order {
			if !eng.GoTo(id) {
				t.Fatalf("GoTo(%s) failed", id)
			}
			mustAnswer(t, eng, values[id])
		}
		return eng
	}

	a := buildAnswered([]string{"has-notifications", "audience", "notes"})
	b := buildAnswered([]string{"notes", "audience", "has-notifications"})

	if !equalIDs(eligibleIDs(a), eligibleIDs(b)) {
		t.Errorf("eligible set depends on answer order: %v vs %v", eligibleIDs(a), eligibleIDs(b))
	}
}

// --- Current / Answer ---

func TestCurrent_FirstQuestion(t *testing.T) {
	eng := testEngine(t)
	q, ok := eng.Current()
	if !ok || q.ID != "has-notifications" {
		t.Errorf("Current = %+v, %t", q, ok)
	}
}

func TestAnswer_AdvancesCursor(t *testing.T) {
	eng := testEngine(t)
	mustAnswer(t, eng, catalog.BoolValue(false))

	q, ok := eng.Current()
	if !ok || q.ID != "audience" {
		t.Errorf("Current after answer = %+v, want audience (channels stays locked)", q)
	}
}

func TestAnswer_NoCurrentQuestion(t *testing.T) {
	eng := testEngine(t)
	mustAnswer(t, eng, catalog.BoolValue(false))
	mustAnswer(t, eng, catalog.TextValue("admins"))
	mustAnswer(t, eng, catalog.TextValue(""))

	err := eng.Answer(catalog.TextValue("extra"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Answer past the end error = %v, want ValidationError", err)
	}
}

func TestAnswer_RequiredEmptyRejected(t *testing.T) {
	eng := testEngine(t)
	mustAnswer(t, eng, catalog.BoolValue(false))

	err := eng.Answer(catalog.TextValue("  "))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if verr.QuestionID != "audience" {
		t.Errorf("QuestionID = %q, want audience", verr.QuestionID)
	}
}

func TestAnswer_FailureLeavesNoPartialMutation(t *testing.T) {
	eng := testEngine(t)
	mustAnswer(t, eng, catalog.BoolValue(false))
	cursorBefore := eng.Session().Cursor
	answersBefore := len(eng.Session().Answers)

	if err := eng.Answer(catalog.TextValue("")); err == nil {
		t.Fatal("expected validation failure")
	}

	if eng.Session().Cursor != cursorBefore {
		t.Error("cursor moved despite validation failure")
	}
	if len(eng.Session().Answers) != answersBefore {
		t.Error("answer recorded despite validation failure")
	}
}

func TestAnswer_TypeMismatchRejected(t *testing.T) {
	eng := testEngine(t)
	// Boolean question, text value — shape is checked against the
	// question's declared type.
	err := eng.Answer(catalog.TextValue("true"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestAnswer_MultiselectUnknownOptionRejected(t *testing.T) {
	eng := testEngine(t)
	mustAnswer(t, eng, catalog.BoolValue(true))

	err := eng.Answer(catalog.ListValue("email", "carrier-pigeon"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestAnswer_IdempotentOverwrite(t *testing.T) {
	eng := testEngine(t)
	mustAnswer(t, eng, catalog.BoolValue(true))

	if !eng.GoTo("has-notifications") {
		t.Fatal("GoTo failed")
	}
	mustAnswer(t, eng, catalog.BoolValue(true))

	count := 0
	for _, a := range eng.Session().Answers {
		if a.QuestionID == "has-notifications" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("answers for has-notifications = %d, want exactly 1", count)
	}
}

// --- Completion ---

func TestCompletion_TrueOnlyPastLastEligible(t *testing.T) {
	eng := testEngine(t)

	mustAnswer(t, eng, catalog.BoolValue(false))
	if eng.IsComplete() || eng.Session().Complete {
		t.Error("session should not be complete mid-questionnaire")
	}

	mustAnswer(t, eng, catalog.TextValue("admins"))
	mustAnswer(t, eng, catalog.TextValue("")) // optional, empty allowed

	if !eng.IsComplete() || !eng.Session().Complete {
		t.Error("session should be complete past the last eligible question")
	}
	if eng.Session().Cursor < len(eng.Eligible()) {
		t.Error("IsComplete must agree with cursor >= len(eligible)")
	}
}

func TestCompletion_RecomputedAfterUnlock(t *testing.T) {
	eng := testEngine(t)

	// Answer everything with notifications disabled.
	mustAnswer(t, eng, catalog.BoolValue(false))
	mustAnswer(t, eng, catalog.TextValue("admins"))
	mustAnswer(t, eng, catalog.TextValue(""))
	if !eng.Session().Complete {
		t.Fatal("expected complete session")
	}

	// Flip the dependency: the channels question unlocks, and the
	// freshly recomputed eligible sequence makes the session incomplete.
	if !eng.GoTo("has-notifications") {
		t.Fatal("GoTo failed")
	}
	mustAnswer(t, eng, catalog.BoolValue(true))

	if eng.Session().Complete {
		t.Error("answering must recompute completion against the post-answer eligible set")
	}
}

// --- Navigation ---

func TestPrevious_NoOpAtZero(t *testing.T) {
	eng := testEngine(t)
	if eng.Previous() {
		t.Error("Previous at cursor 0 should return false")
	}
}

func TestPrevious_StepsBackAndClearsComplete(t *testing.T) {
	eng := testEngine(t)
	mustAnswer(t, eng, catalog.BoolValue(false))
	mustAnswer(t, eng, catalog.TextValue("admins"))
	mustAnswer(t, eng, catalog.TextValue(""))

	if !eng.Previous() {
		t.Fatal("Previous should move")
	}
	if eng.Session().Complete {
		t.Error("Previous must clear the completion flag")
	}
	q, ok := eng.Current()
	if !ok || q.ID != "notes" {
		t.Errorf("Current after Previous = %+v", q)
	}
}

func TestGoTo_UnknownQuestion(t *testing.T) {
	eng := testEngine(t)
	cursorBefore := eng.Session().Cursor
	if eng.GoTo("bogus") {
		t.Error("GoTo should return false for an unknown question")
	}
	if eng.Session().Cursor != cursorBefore {
		t.Error("failed GoTo must not mutate the cursor")
	}
}

func TestGoTo_IneligibleQuestion(t *testing.T) {
	eng := testEngine(t)
	// notification-channels exists in the catalog but its dependency is
	// unanswered, so it is not in the eligible sequence.
	if eng.GoTo("notification-channels") {
		t.Error("GoTo should fail for a question whose dependency is not satisfied")
	}
}

// --- Progress ---

func TestProgress_EmptyCatalog(t *testing.T) {
	c, err := catalog.New()
	if err != nil {
		t.Fatal(err)
	}
	eng, _ := New(c, session.New("t", ""))
	p := eng.Progress()
	if p.Current != 0 || p.Total != 0 || p.Percentage != 0 {
		t.Errorf("Progress over empty catalog = %+v, want zeros", p)
	}
}

func TestProgress_CurrentNeverExceedsTotal(t *testing.T) {
	c, err := catalog.New(
		catalog.Question{
			ID: "gate", Prompt: "Gate?", Type: catalog.TypeBoolean,
			Category: catalog.CategoryFunctional, Required: true, Order: 1,
		},
		catalog.Question{
			ID: "inner", Prompt: "Inner?", Type: catalog.TypeText,
			Category: catalog.CategoryFunctional, Order: 2,
			DependsOn: &catalog.Dependency{QuestionID: "gate", Equals: catalog.BoolValue(true)},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	eng, _ := New(c, session.New("t", ""))

	mustAnswer(t, eng, catalog.BoolValue(true))
	mustAnswer(t, eng, catalog.TextValue("something"))

	// Make the answered inner question ineligible again: two answers
	// remain, but only one eligible question.
	if !eng.GoTo("gate") {
		t.Fatal("GoTo failed")
	}
	mustAnswer(t, eng, catalog.BoolValue(false))

	p := eng.Progress()
	if p.Total != 1 {
		t.Fatalf("Total = %d, want 1", p.Total)
	}
	if p.Current > p.Total {
		t.Errorf("Current %d exceeds Total %d", p.Current, p.Total)
	}
	if p.Percentage != 100 {
		t.Errorf("Percentage = %d, want 100", p.Percentage)
	}
}

func TestProgress_Percentage(t *testing.T) {
	eng := testEngine(t)
	mustAnswer(t, eng, catalog.BoolValue(false))

	p := eng.Progress()
	if p.Current != 1 || p.Total != 3 {
		t.Fatalf("Progress = %+v", p)
	}
	if p.Percentage != 33 {
		t.Errorf("Percentage = %d, want 33 (rounded)", p.Percentage)
	}
}

// --- Dynamic questions ---

func TestAddDynamicQuestion_InsertsByOrder(t *testing.T) {
	eng := testEngine(t)
	err := eng.AddDynamicQuestion(catalog.Question{
		ID: "urgency", Prompt: "How urgent are notifications?",
		Type: catalog.TypeText, Category: catalog.CategoryFunctional, Order: 2,
	})
	if err != nil {
		t.Fatalf("AddDynamicQuestion: %v", err)
	}

	got := eligibleIDs(eng)
	want := []string{"has-notifications", "urgency", "audience", "notes"}
	if !equalIDs(got, want) {
		t.Errorf("Eligible = %v, want %v", got, want)
	}
	if len(eng.Session().Dynamic) != 1 {
		t.Error("dynamic question must be recorded on the session")
	}
}

func TestAddDynamicQuestion_ReopensCompletedSession(t *testing.T) {
	eng := testEngine(t)
	mustAnswer(t, eng, catalog.BoolValue(false))
	mustAnswer(t, eng, catalog.TextValue("admins"))
	mustAnswer(t, eng, catalog.TextValue(""))
	if !eng.Session().Complete {
		t.Fatal("expected complete session")
	}

	err := eng.AddDynamicQuestion(catalog.Question{
		ID: "rollout", Prompt: "How should this roll out?",
		Type: catalog.TypeText, Category: catalog.CategoryTechnical, Order: 100,
	})
	if err != nil {
		t.Fatalf("AddDynamicQuestion: %v", err)
	}
	if eng.Session().Complete {
		t.Error("a new eligible question must reopen the session")
	}
}

func TestNew_RestoresDynamicQuestions(t *testing.T) {
	sess := session.New("t", "")
	sess.Dynamic = []catalog.Question{{
		ID: "restored", Prompt: "Restored?", Type: catalog.TypeText,
		Category: catalog.CategoryFunctional, Order: 2,
	}}

	eng, err := New(testCatalog(t), sess)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := eng.View().Get("restored"); !ok {
		t.Error("dynamic question from the session must be merged into the view")
	}
}

// --- Required gate ---

func TestUnansweredRequired_TracksEligibleOnly(t *testing.T) {
	eng := testEngine(t)

	var ids []string
	for _, q := range eng.UnansweredRequired() {
		ids = append(ids, q.ID)
	}
	// notification-channels is required but not eligible, so it is not
	// part of the gate.
	want := []string{"has-notifications", "audience"}
	if !equalIDs(ids, want) {
		t.Errorf("UnansweredRequired = %v, want %v", ids, want)
	}
}

func TestUnansweredRequired_EmptyWhenAnswered(t *testing.T) {
	eng := testEngine(t)
	mustAnswer(t, eng, catalog.BoolValue(false))
	mustAnswer(t, eng, catalog.TextValue("admins"))

	if missing := eng.UnansweredRequired(); len(missing) != 0 {
		t.Errorf("UnansweredRequired = %v, want empty", missing)
	}
}
