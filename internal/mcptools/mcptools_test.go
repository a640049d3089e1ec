package mcptools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rcliao/shadow-journal/internal/gateway"
	"github.com/rcliao/shadow-journal/internal/model"
	"github.com/rcliao/shadow-journal/internal/state"
	"github.com/rcliao/shadow-journal/internal/store"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

func newTestState(t *testing.T) (*state.State, *store.MemStore) {
	t.Helper()
	kv := store.NewMemStore()
	st, err := state.Open(context.Background(), kv, state.Options{})
	if err != nil {
		t.Fatalf("failed to open state: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st, kv
}

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func ratingsFor(n int, r string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = r
	}
	return strings.Join(parts, ",")
}

// ─── Assessment ──────────────────────────────────────────────────────────────

func TestQuestionsTool(t *testing.T) {
	tool := NewQuestionsTool()
	if def := tool.Definition(); def.Name != "assessment_questions" {
		t.Errorf("tool name = %q, want assessment_questions", def.Name)
	}

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var qs []model.Question
	if err := json.Unmarshal([]byte(resultText(result)), &qs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(qs) != 30 {
		t.Errorf("got %d questions, want 30", len(qs))
	}
}

func TestScoreTool_Definition(t *testing.T) {
	st, _ := newTestState(t)
	def := NewScoreTool(st).Definition()

	if def.Name != "assessment_score" {
		t.Errorf("tool name = %q, want assessment_score", def.Name)
	}
	if _, ok := def.InputSchema.Properties["ratings"]; !ok {
		t.Error("missing 'ratings' parameter")
	}
	found := false
	for _, r := range def.InputSchema.Required {
		if r == "ratings" {
			found = true
		}
	}
	if !found {
		t.Error("'ratings' should be required")
	}
}

func TestScoreTool_ScoresAndSaves(t *testing.T) {
	st, kv := newTestState(t)
	tool := NewScoreTool(st)
	tool.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

	// Only the first five (tyrant) questions are very triggering.
	ratings := ratingsFor(5, "2") + "," + ratingsFor(25, "0")
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"ratings": ratings}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(result))
	}

	var out struct {
		Scores map[string]int `json:"scores"`
		Top    []struct {
			Name  string `json:"name"`
			Score int    `json:"score"`
		} `json:"top"`
		Saved bool `json:"saved"`
	}
	if err := json.Unmarshal([]byte(resultText(result)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Scores["tyrant"] != 100 || out.Scores["victim"] != 0 {
		t.Errorf("scores = %v", out.Scores)
	}
	if len(out.Top) != 1 || out.Top[0].Score != 100 {
		t.Errorf("top = %+v, want only the tyrant", out.Top)
	}
	if !out.Saved {
		t.Error("expected saved = true")
	}

	rec, ok := st.LatestAssessment()
	if !ok {
		t.Fatal("assessment not saved")
	}
	if len(rec.Responses) != 30 {
		t.Errorf("saved %d responses, want 30", len(rec.Responses))
	}
	if kv.Writes(state.KeyAssessment) != 1 {
		t.Errorf("assessment writes = %d, want 1", kv.Writes(state.KeyAssessment))
	}
	quizzes := st.Profile().Progress.QuizzesCompleted
	if len(quizzes) != 1 || quizzes[0] != state.QuizTriggerIdentifier {
		t.Errorf("quizzes = %v", quizzes)
	}
}

func TestScoreTool_NoSave(t *testing.T) {
	st, _ := newTestState(t)
	result, err := NewScoreTool(st).Handle(context.Background(), makeReq(map[string]interface{}{
		"ratings": ratingsFor(30, "1"),
		"save":    false,
	}))
	if err != nil || result.IsError {
		t.Fatalf("unexpected failure: %v %s", err, resultText(result))
	}
	if _, ok := st.LatestAssessment(); ok {
		t.Error("assessment should not be saved")
	}
}

func TestScoreTool_Rejects(t *testing.T) {
	st, _ := newTestState(t)
	tool := NewScoreTool(st)

	tests := []struct {
		name    string
		ratings string
		want    string
	}{
		{"missing", "", "required"},
		{"short", ratingsFor(29, "1"), "29 ratings"},
		{"not a number", ratingsFor(29, "1") + ",x", "rating 30"},
		{"out of range", ratingsFor(29, "1") + ",3", "question 30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"ratings": tt.ratings}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.IsError {
				t.Fatal("expected tool error")
			}
			if !strings.Contains(resultText(result), tt.want) {
				t.Errorf("error %q does not mention %q", resultText(result), tt.want)
			}
		})
	}
	if _, ok := st.LatestAssessment(); ok {
		t.Error("rejected input must not save")
	}
}

// ─── Journal ─────────────────────────────────────────────────────────────────

func TestJournalAddAndList(t *testing.T) {
	st, _ := newTestState(t)
	add := NewJournalAddTool(st)
	list := NewJournalListTool(st)
	ctx := context.Background()

	for _, content := range []string{"first light", "dream of a locked door", "argument at work"} {
		result, err := add.Handle(ctx, makeReq(map[string]interface{}{"content": content, "tags": "a, b"}))
		if err != nil || result.IsError {
			t.Fatalf("add %q: %v %s", content, err, resultText(result))
		}
	}

	result, err := list.Handle(ctx, makeReq(map[string]interface{}{"limit": float64(2)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var entries []model.JournalEntry
	if err := json.Unmarshal([]byte(resultText(result)), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Content != "argument at work" {
		t.Errorf("newest entry = %q, want the last added", entries[0].Content)
	}
	if entries[0].Type != model.JournalGeneral {
		t.Errorf("type = %q, want general", entries[0].Type)
	}
	if len(entries[0].Tags) != 2 {
		t.Errorf("tags = %v", entries[0].Tags)
	}

	result, _ = list.Handle(ctx, makeReq(map[string]interface{}{"query": "DOOR"}))
	entries = nil
	if err := json.Unmarshal([]byte(resultText(result)), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "dream of a locked door" {
		t.Errorf("search returned %+v", entries)
	}

	result, _ = list.Handle(ctx, makeReq(map[string]interface{}{"query": "nothing matches"}))
	if got := resultText(result); got != "[]" {
		t.Errorf("empty search = %q, want []", got)
	}
}

func TestJournalAdd_Rejects(t *testing.T) {
	st, _ := newTestState(t)
	add := NewJournalAddTool(st)

	result, _ := add.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if !result.IsError {
		t.Error("missing content should fail")
	}
	result, _ = add.Handle(context.Background(), makeReq(map[string]interface{}{"content": "x", "type": "poem"}))
	if !result.IsError {
		t.Error("unknown type should fail")
	}
	if n := len(st.JournalEntries()); n != 0 {
		t.Errorf("stored %d entries, want 0", n)
	}
}

func TestProfileTool(t *testing.T) {
	st, _ := newTestState(t)
	result, err := NewProfileTool(st).Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var u model.UserProfile
	if err := json.Unmarshal([]byte(resultText(result)), &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.Name != state.DefaultUserName {
		t.Errorf("name = %q, want %q", u.Name, state.DefaultUserName)
	}
}

// ─── Analyze ─────────────────────────────────────────────────────────────────

func TestAnalyzeTool_Degraded(t *testing.T) {
	tool := NewAnalyzeTool(gateway.New(gateway.Config{}))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"feature": gateway.FeatureTrigger,
		"text":    "my manager rewrote my report",
	}))
	if err != nil || result.IsError {
		t.Fatalf("unexpected failure: %v %s", err, resultText(result))
	}
	var out struct {
		Outcome string                  `json:"outcome"`
		Value   gateway.TriggerAnalysis `json:"value"`
	}
	if err := json.Unmarshal([]byte(resultText(result)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Outcome != "degraded" {
		t.Errorf("outcome = %q, want degraded", out.Outcome)
	}
	if out.Value.PrimaryArchetype != gateway.FallbackTrigger().PrimaryArchetype {
		t.Errorf("value = %+v, want the trigger fallback", out.Value)
	}
}

func TestAnalyzeTool_Live(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"archetype":"judge","projection":"p","goldValue":"discernment","integrationTip":"t"}`))
	}))
	defer srv.Close()

	tool := NewAnalyzeTool(gateway.New(gateway.Config{BaseURL: srv.URL}))
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"feature": gateway.FeatureJudgment,
		"text":    "they are so sloppy",
		"context": "coworker",
	}))
	if err != nil || result.IsError {
		t.Fatalf("unexpected failure: %v %s", err, resultText(result))
	}
	if gotPath != "/judgment" {
		t.Errorf("path = %q, want /judgment", gotPath)
	}
	if gotBody["target"] != "coworker" {
		t.Errorf("body = %v, want target forwarded", gotBody)
	}
	if !strings.Contains(resultText(result), `"outcome": "live"`) {
		t.Errorf("result = %s, want live outcome", resultText(result))
	}
	if !strings.Contains(resultText(result), "discernment") {
		t.Errorf("result = %s, want live value", resultText(result))
	}
}

func TestAnalyzeTool_Rejects(t *testing.T) {
	tool := NewAnalyzeTool(gateway.New(gateway.Config{}))

	result, _ := tool.Handle(context.Background(), makeReq(map[string]interface{}{"feature": "tarot", "text": "x"}))
	if !result.IsError {
		t.Error("unknown feature should fail")
	}
	result, _ = tool.Handle(context.Background(), makeReq(map[string]interface{}{"feature": gateway.FeatureJournal}))
	if !result.IsError {
		t.Error("missing text should fail")
	}

	strict := NewAnalyzeTool(gateway.New(gateway.Config{Strict: true}))
	result, _ = strict.Handle(context.Background(), makeReq(map[string]interface{}{"feature": gateway.FeatureJournal, "text": "x"}))
	if !result.IsError {
		t.Error("strict gateway without endpoint should fail")
	}
}

func TestNewServer(t *testing.T) {
	st, _ := newTestState(t)
	s := NewServer(st, gateway.New(gateway.Config{}), "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}
