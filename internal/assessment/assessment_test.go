package assessment

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/shadow-journal/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestTaxonomyShape(t *testing.T) {
	require.Len(t, Questions, 30)
	seen := map[string]bool{}
	var perCategory [model.NumArchetypes]int
	for _, q := range Questions {
		assert.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
		perCategory[q.Category]++
	}
	for _, a := range model.Archetypes {
		assert.Equal(t, 5, perCategory[a], a.String())
		assert.Equal(t, 10, MaxScore(a), a.String())
	}
}

func TestComputeScoresEmpty(t *testing.T) {
	scores := ComputeScores(nil, Questions)
	assert.Equal(t, Scores{}, scores)

	scores = ComputeScores(map[string]int{}, Questions)
	for _, a := range model.Archetypes {
		assert.Zero(t, scores.Get(a))
	}
}

func TestComputeScoresTyrantOnly(t *testing.T) {
	responses := map[string]int{}
	for _, q := range Questions {
		if q.Category == model.Tyrant {
			responses[q.ID] = 2
		} else {
			responses[q.ID] = 0
		}
	}
	scores := ComputeScores(responses, Questions)
	assert.Equal(t, 100, scores.Get(model.Tyrant))
	for _, a := range model.Archetypes[1:] {
		assert.Zero(t, scores.Get(a), a.String())
	}
}

func TestComputeScoresRounding(t *testing.T) {
	// victim: 1+1+1 = 3/10 -> 30; martyr: 2+2+1 = 5/10 -> 50
	responses := map[string]int{"6": 1, "7": 1, "8": 1, "11": 2, "12": 2, "13": 1}
	scores := ComputeScores(responses, Questions)
	assert.Equal(t, 30, scores.Get(model.Victim))
	assert.Equal(t, 50, scores.Get(model.Martyr))
}

func TestComputeScoresPartialDeflates(t *testing.T) {
	// Only one judge question answered at max: divisor stays 10.
	scores := ComputeScores(map[string]int{"21": 2}, Questions)
	assert.Equal(t, 20, scores.Get(model.Judge))
}

func TestComputeScoresBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		responses := map[string]int{}
		for _, q := range Questions {
			if rng.Intn(4) == 0 {
				continue
			}
			responses[q.ID] = rng.Intn(11) - 5
		}
		scores := ComputeScores(responses, Questions)
		for _, a := range model.Archetypes {
			v := scores.Get(a)
			require.GreaterOrEqual(t, v, 0)
			require.LessOrEqual(t, v, 100)
		}
	}
}

func TestComputeScoresOversizedQuestionList(t *testing.T) {
	questions := append([]model.Question{}, Questions...)
	questions = append(questions, model.Question{ID: "extra", Category: model.Rebel})
	responses := map[string]int{}
	for _, q := range questions {
		responses[q.ID] = MaxRating
	}
	scores := ComputeScores(responses, questions)
	assert.Equal(t, 100, scores.Get(model.Rebel))
}

func TestComputeScoresDeterministic(t *testing.T) {
	responses := map[string]int{"1": 2, "9": 1, "17": 2, "30": 1}
	first := ComputeScores(responses, Questions)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeScores(responses, Questions))
	}
}

func TestRankTopEqualScoresKeepOrder(t *testing.T) {
	scores := Scores{40, 40, 40, 40, 40, 40}
	ranked := RankTop(scores, len(scores))
	require.Len(t, ranked, model.NumArchetypes)
	for i, r := range ranked {
		assert.Equal(t, model.Archetypes[i], r.Archetype)
	}
}

func TestRankTop(t *testing.T) {
	var scores Scores
	scores[model.Victim] = 30
	scores[model.Judge] = 80
	scores[model.Rebel] = 30

	got := RankTop(scores, DefaultTop)
	want := []Ranked{
		{Archetype: model.Judge, Score: 80},
		{Archetype: model.Victim, Score: 30},
		{Archetype: model.Rebel, Score: 30},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RankTop mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, RankTop(scores, 1), 1)
	assert.Empty(t, RankTop(Scores{}, DefaultTop))
	assert.Empty(t, RankTop(scores, -1))
}

func TestRankTopTruncatesBeforeFilter(t *testing.T) {
	var scores Scores
	scores[model.Martyr] = 10
	got := RankTop(scores, 3)
	require.Len(t, got, 1)
	assert.Equal(t, model.Martyr, got[0].Archetype)
}

func TestDescribe(t *testing.T) {
	insights := Describe([]Ranked{{Archetype: model.Saboteur, Score: 70}})
	require.Len(t, insights, 1)
	assert.Equal(t, "The Saboteur", insights[0].Name)
	assert.Equal(t, 70, insights[0].Score)
	assert.Contains(t, insights[0].Profile, "undermine your own success")
	assert.NotEmpty(t, insights[0].Practice)
}

func TestScoresJSON(t *testing.T) {
	var scores Scores
	scores[model.Tyrant] = 100
	b, err := scores.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"tyrant":100,"victim":0,"martyr":0,"saboteur":0,"judge":0,"rebel":0}`, string(b))

	assert.Equal(t, scores, ScoresFromList(scores.List()))
}

func TestSessionFlow(t *testing.T) {
	s := NewSession(Questions, fixedNow)
	assert.Equal(t, AwaitingQuestion, s.Phase())

	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "1", q.ID)

	require.ErrorIs(t, s.Previous(), ErrFirstQuestion)
	require.ErrorIs(t, s.Answer(3), ErrRatingRange)
	require.ErrorIs(t, s.Answer(-1), ErrRatingRange)

	require.NoError(t, s.Answer(2))
	assert.Equal(t, 1, s.Index())

	// Going back keeps the earlier answer and allows overwriting it.
	require.NoError(t, s.Previous())
	r, ok := s.Rating()
	require.True(t, ok)
	assert.Equal(t, 2, r)
	require.NoError(t, s.Answer(1))

	for s.Phase() == AwaitingQuestion {
		require.NoError(t, s.Answer(0))
	}
	assert.Equal(t, ShowingResults, s.Phase())

	scores, rec, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 10, scores.Get(model.Tyrant))
	assert.Equal(t, fixedNow(), rec.Date)
	require.Len(t, rec.Responses, 30)
	assert.Equal(t, model.Response{QuestionID: "1", Rating: 1}, rec.Responses[0])
	assert.Equal(t, "30", rec.Responses[29].QuestionID)

	require.ErrorIs(t, s.Answer(1), ErrFinished)
	require.ErrorIs(t, s.Previous(), ErrFinished)
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestSessionResultBeforeFinish(t *testing.T) {
	s := NewSession(Questions, fixedNow)
	_, _, ok := s.Result()
	assert.False(t, ok)
}

func TestSessionEmpty(t *testing.T) {
	s := NewSession(nil, fixedNow)
	assert.Equal(t, ShowingResults, s.Phase())
	scores, _, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, Scores{}, scores)
}

func TestRun(t *testing.T) {
	ratings := make([]int, len(Questions))
	for i, q := range Questions {
		if q.Category == model.Tyrant {
			ratings[i] = 2
		}
	}
	scores, rec, err := Run(Questions, ratings, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 100, scores.Get(model.Tyrant))
	assert.Len(t, rec.Scores, model.NumArchetypes)

	_, _, err = Run(Questions, ratings[:3], fixedNow)
	assert.Error(t, err)

	ratings[4] = 9
	_, _, err = Run(Questions, ratings, fixedNow)
	assert.ErrorIs(t, err, ErrRatingRange)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "scoring", Scoring.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}
