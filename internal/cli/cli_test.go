package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/shadow-journal/internal/config"
	"github.com/rcliao/shadow-journal/internal/gateway"
	"github.com/rcliao/shadow-journal/internal/model"
	"github.com/rcliao/shadow-journal/internal/state"
	"github.com/rcliao/shadow-journal/internal/store"
)

func TestInteractiveAssess(t *testing.T) {
	// 2, back, 0 leaves question 1 at 0; junk and out-of-range lines are
	// re-prompted; the remaining 29 questions get 1.
	input := "2\nb\n0\nx\n5\n" + strings.Repeat("1\n", 29)
	var prompt bytes.Buffer

	scores, rec, err := interactiveAssess(strings.NewReader(input), &prompt)
	require.NoError(t, err)

	assert.Equal(t, 40, scores[model.Tyrant])
	for _, a := range model.Archetypes[1:] {
		assert.Equal(t, 50, scores[a], a.String())
	}
	require.Len(t, rec.Responses, 30)
	assert.Equal(t, model.Response{QuestionID: "1", Rating: 0}, rec.Responses[0])
	assert.Contains(t, prompt.String(), "[30/30]")
	assert.Contains(t, prompt.String(), "current answer: 2")
}

func TestInteractiveAssessStops(t *testing.T) {
	_, _, err := interactiveAssess(strings.NewReader("1\n1\n"), io.Discard)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, _, err = interactiveAssess(strings.NewReader("1\nq\n"), io.Discard)
	assert.ErrorIs(t, err, errQuit)
}

func TestParseRatings(t *testing.T) {
	got, err := parseRatings("0, 1,2 ,,1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 1}, got)

	_, err = parseRatings("1,two")
	assert.ErrorContains(t, err, "rating 2")
}

func TestParseEmotion(t *testing.T) {
	e, err := parseEmotion("anger:7")
	require.NoError(t, err)
	assert.Equal(t, model.EmotionEntry{Emotion: "anger", Intensity: 7}, e)

	e, err = parseEmotion("shame")
	require.NoError(t, err)
	assert.Equal(t, 5, e.Intensity)

	for _, bad := range []string{":3", "fear:0", "fear:11", "fear:lots"} {
		_, err := parseEmotion(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimelineEvents(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	milestones := []model.TimelineEvent{
		{ID: "m4", Date: day(4), Title: "boundary", Type: model.EventBreakthrough},
	}
	journals := []model.JournalEntry{
		{ID: "j3", Date: day(3), Title: "third"},
		{ID: "j1", Date: day(1), Title: "first"},
	}
	triggers := []model.TriggerLog{
		{ID: "t2", Date: day(2), Situation: "second"},
	}

	events := timelineEvents(milestones, journals, triggers, 0)
	require.Len(t, events, 4)
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"m4", "j3", "t2", "j1"}, ids)
	assert.Equal(t, model.EventBreakthrough, events[0].Type)
	assert.Equal(t, "trigger", events[2].Type)
	assert.Equal(t, "2025-01-02", events[2].Date)

	assert.Len(t, timelineEvents(milestones, journals, triggers, 2), 2)
	assert.Empty(t, timelineEvents(nil, nil, nil, 0))
}

func TestJudgmentLogKeepsOnlyLiveDecoding(t *testing.T) {
	insight := gateway.JudgmentInsight{Projection: "control", GoldValue: "Freedom", IntegrationTip: "Loosen one rule"}

	live := judgmentLog("They're so rigid", "boss", gateway.Result[gateway.JudgmentInsight]{Value: insight, Outcome: gateway.Live})
	require.NotNil(t, live.AIDecoded)
	assert.Equal(t, "Freedom", live.AIDecoded.GoldValue)
	assert.Equal(t, "Freedom", live.Value)
	assert.Equal(t, "boss", live.Target)

	degraded := judgmentLog("They're so rigid", "boss", gateway.Result[gateway.JudgmentInsight]{
		Value: gateway.FallbackJudgment(), Outcome: gateway.Degraded, Err: errors.New("status 503"),
	})
	assert.Nil(t, degraded.AIDecoded)
	assert.Empty(t, degraded.Value)
	assert.Equal(t, "They're so rigid", degraded.Judgment)
}

func TestSaboteurInterview(t *testing.T) {
	reply := gateway.SaboteurResponse{SaboteurMessage: "I keep you small so you stay safe.", Tone: gateway.ToneProtective, UnderlyingFear: "rejection"}

	iv, ok := saboteurInterview("Why do you stop me?", gateway.Result[gateway.SaboteurResponse]{Value: reply, Outcome: gateway.Live})
	require.True(t, ok)
	assert.Equal(t, []model.InterviewTurn{
		{Role: "user", Content: "Why do you stop me?"},
		{Role: "saboteur", Content: reply.SaboteurMessage},
	}, iv.Conversation)
	assert.Equal(t, "rejection", iv.UnderlyingFear)

	_, ok = saboteurInterview("Why?", gateway.Result[gateway.SaboteurResponse]{Value: gateway.FallbackSaboteur(), Outcome: gateway.Degraded})
	assert.False(t, ok)
}

func TestNeedSortCountsMartyrYes(t *testing.T) {
	cards := model.DefaultNeedCards()
	cards[1].Bucket = model.BucketMartyr
	cards[4].Bucket = model.BucketMartyr
	cards[5].Bucket = model.BucketJoyful
	assert.Equal(t, 2, newNeedSort(cards).Martyr)
	assert.Zero(t, newNeedSort(model.DefaultNeedCards()).Martyr)
}

func TestChapterStatus(t *testing.T) {
	c, ok := model.ChapterByID(2)
	require.True(t, ok)
	cs := newChapterStatus(c, model.Progress{
		ChaptersCompleted:   []int{2},
		ActivitiesCompleted: []string{"inner-child-letter", "projection-journal"},
	})
	assert.True(t, cs.Completed)
	assert.Equal(t, 1, cs.ActivitiesCompleted)
	assert.Equal(t, 3, cs.ActivitiesTotal)
}

func TestExitClosersFlushQueuedWrites(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	cfg.DBPath = dbPath
	cfg.Write = config.Write{Policy: state.WriteBehind.String(), Interval: time.Hour}

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	st, done := openState(cmd)
	_, err := st.AddJournalEntry(cmd.Context(), model.JournalEntry{Content: "queued"})
	require.NoError(t, err)
	require.Equal(t, 1, st.Dirty())

	runClosers()
	done()

	kv, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer kv.Close()
	journals, err := store.GetJSON[[]model.JournalEntry](context.Background(), kv, state.KeyJournals)
	require.NoError(t, err)
	require.Len(t, journals, 1)
	assert.Equal(t, "queued", journals[0].Content)
}

func TestCouncilViewLoudest(t *testing.T) {
	view := newCouncilView(map[model.Archetype]int{
		model.Tyrant: 10, model.Victim: 80, model.Martyr: 80, model.Saboteur: 0, model.Judge: 30, model.Rebel: 5,
	})
	require.Len(t, view.Loudest, 3)
	assert.Equal(t, model.Victim, view.Loudest[0].Archetype)
	assert.Equal(t, model.Martyr, view.Loudest[1].Archetype)
	assert.Equal(t, model.Judge, view.Loudest[2].Archetype)

	assert.Empty(t, newCouncilView(map[model.Archetype]int{}).Loudest)
}

func TestParseEntries(t *testing.T) {
	jsonIn := `[{"id":"a","key":"k","value":"[]","version":2,"created_at":"2025-01-01T00:00:00Z"}]`
	entries, err := parseEntries([]byte(jsonIn))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k", entries[0].Key)
	assert.Equal(t, 2, entries[0].Version)

	yamlIn := "- id: a\n  key: k\n  value: '{\"x\":1}'\n  version: 1\n  created_at: \"2025-01-01T00:00:00Z\"\n"
	entries, err = parseEntries([]byte(yamlIn))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, `{"x":1}`, entries[0].Value)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), entries[0].CreatedAt.UTC())

	_, err = parseEntries([]byte("{not: [valid"))
	assert.Error(t, err)
}

func TestRenderFormats(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })

	v := map[string]any{"name": "Seeker", "crystals": 2}
	out := func(format string, text func(io.Writer)) string {
		cfg.Format = format
		var buf bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&buf)
		render(cmd, v, text)
		return buf.String()
	}

	assert.JSONEq(t, `{"name":"Seeker","crystals":2}`, out(config.FormatJSON, nil))
	assert.Equal(t, "crystals: 2\nname: Seeker\n", out(config.FormatYAML, nil))
	assert.Equal(t, "hello\n", out(config.FormatText, func(w io.Writer) { io.WriteString(w, "hello\n") }))
	assert.JSONEq(t, `{"name":"Seeker","crystals":2}`, out(config.FormatText, nil))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b,"))
	assert.Nil(t, splitList(""))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"assess", "show"}, {"journal", "search"}, {"trigger", "add"}, {"capsule", "open"},
		{"dream", "add"}, {"archetype", "claim"}, {"insight", "list"}, {"profile", "complete-chapter"},
		{"practice", "rebel", "answer"}, {"council", "checkin"}, {"council", "show"}, {"profile", "show"}, {"kv", "history"}, {"analyze", "saboteur"},
		{"kv", "export"}, {"kv", "import"}, {"serve"},
		{"chapter", "list"}, {"chapter", "show"}, {"timeline", "add"}, {"timeline", "rm"},
		{"practice", "martyr", "sort"}, {"practice", "saboteur-letter", "add"}, {"practice", "saboteur-letter", "interviews"},
	} {
		cmd, _, err := RootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
