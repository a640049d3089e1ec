package assessment

import (
	"sort"

	"github.com/rcliao/shadow-journal/internal/model"
)

// DefaultTop is how many archetypes a result highlights.
const DefaultTop = 3

// Ranked is one archetype with its score.
type Ranked struct {
	Archetype model.Archetype `json:"archetype"`
	Score     int             `json:"score"`
}

// RankTop returns up to n archetypes ordered by descending score. Ties keep
// enumeration order. Zero scores are never included.
func RankTop(scores Scores, n int) []Ranked {
	ranked := make([]Ranked, 0, len(scores))
	for _, a := range model.Archetypes {
		ranked = append(ranked, Ranked{Archetype: a, Score: scores[a]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	top := ranked[:0:0]
	for _, r := range ranked[:n] {
		if r.Score > 0 {
			top = append(top, r)
		}
	}
	return top
}

// Insight is a ranked archetype with its narrative text.
type Insight struct {
	Archetype model.Archetype `json:"archetype"`
	Name      string          `json:"name"`
	Score     int             `json:"score"`
	Profile   string          `json:"profile"`
	Practice  string          `json:"practice"`
}

// Describe attaches static text to each ranked archetype.
func Describe(ranked []Ranked) []Insight {
	out := make([]Insight, 0, len(ranked))
	for _, r := range ranked {
		info := r.Archetype.Info()
		out = append(out, Insight{
			Archetype: r.Archetype,
			Name:      info.Name,
			Score:     r.Score,
			Profile:   info.Profile,
			Practice:  info.Practice,
		})
	}
	return out
}
