package assessment

import (
	"encoding/json"
	"math"

	"github.com/rcliao/shadow-journal/internal/model"
)

// Scores holds a normalised 0..100 value per archetype, indexed by
// enumeration order.
type Scores [model.NumArchetypes]int

// Get returns the score for a.
func (s Scores) Get(a model.Archetype) int {
	return s[a]
}

// Map returns the scores keyed by archetype.
func (s Scores) Map() map[model.Archetype]int {
	m := make(map[model.Archetype]int, len(s))
	for _, a := range model.Archetypes {
		m[a] = s[a]
	}
	return m
}

// List returns the scores as records in enumeration order.
func (s Scores) List() []model.NormalizedScore {
	out := make([]model.NormalizedScore, 0, len(s))
	for _, a := range model.Archetypes {
		out = append(out, model.NormalizedScore{Category: a, Value: s[a]})
	}
	return out
}

// MarshalJSON encodes the scores as {"tyrant": n, ...}.
func (s Scores) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// ScoresFromList rebuilds Scores from stored records. Unknown categories
// are ignored.
func ScoresFromList(list []model.NormalizedScore) Scores {
	var s Scores
	for _, ns := range list {
		if ns.Category.Valid() {
			s[ns.Category] = ns.Value
		}
	}
	return s
}

// ComputeScores sums ratings per category and normalises each sum against
// the category's taxonomy maximum. Unanswered questions count as 0 and
// ratings are clamped to 0..MaxRating. A question list with more items in a
// category than the taxonomy is normalised against its own count, so every
// score stays within 0..100.
func ComputeScores(responses map[string]int, questions []model.Question) Scores {
	var sums, counts [model.NumArchetypes]int
	for _, q := range questions {
		if !q.Category.Valid() {
			continue
		}
		sums[q.Category] += clampRating(responses[q.ID])
		counts[q.Category]++
	}

	var scores Scores
	for _, a := range model.Archetypes {
		limit := MaxScore(a)
		if counts[a]*MaxRating > limit {
			limit = counts[a] * MaxRating
		}
		if limit == 0 {
			continue
		}
		scores[a] = int(math.Round(float64(sums[a]) / float64(limit) * 100))
	}
	return scores
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}
