package gateway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rcliao/shadow-journal/internal/model"
)

// DialogueResponse is one turn from the shadow in a dialogue.
type DialogueResponse struct {
	Message            string   `json:"message"`
	EmotionalTone      string   `json:"emotionalTone"`
	SuggestedQuestions []string `json:"suggestedQuestions"`
}

func (r DialogueResponse) validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("missing message")
	}
	return nil
}

// Pattern is one recurring relationship pattern.
type Pattern struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Frequency      int      `json:"frequency"`
	Triggers       []string `json:"triggers"`
	Behaviors      []string `json:"behaviors"`
	Outcomes       []string `json:"outcomes"`
	Archetype      string   `json:"archetype"`
	Type           string   `json:"type"`
	Impact         int      `json:"impact"`
	RelatedAspects []string `json:"relatedAspects"`
}

// PatternAnalysis is the result of the patterns feature.
type PatternAnalysis struct {
	Patterns        []Pattern `json:"patterns"`
	OverallInsights []string  `json:"overallInsights"`
	Recommendations []string  `json:"recommendations"`
	Insights        []string  `json:"insights"`
	Confidence      float64   `json:"confidence"`
}

func (r PatternAnalysis) validate() error {
	if len(r.Patterns) == 0 && len(r.OverallInsights) == 0 {
		return errors.New("no patterns or insights")
	}
	return checkUnit("confidence", r.Confidence)
}

// AuthenticityScore rates authenticity per dimension, each 0..100.
type AuthenticityScore struct {
	Overall     int      `json:"overall"`
	Emotional   int      `json:"emotional"`
	Behavioral  int      `json:"behavioral"`
	Cognitive   int      `json:"cognitive"`
	Social      int      `json:"social"`
	Strengths   []string `json:"strengths"`
	GrowthAreas []string `json:"growthAreas"`
	Insights    []string `json:"insights"`
}

func (r AuthenticityScore) validate() error {
	for name, v := range map[string]int{
		"overall": r.Overall, "emotional": r.Emotional, "behavioral": r.Behavioral,
		"cognitive": r.Cognitive, "social": r.Social,
	} {
		if err := checkPercent(name, v); err != nil {
			return err
		}
	}
	return nil
}

// TimelineEvent is one step on the transformation timeline.
type TimelineEvent struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// TimelineAnalysis summarises progress across timeline events.
type TimelineAnalysis struct {
	GrowthTrajectory string   `json:"growthTrajectory"`
	KeyThemes        []string `json:"keyThemes"`
	Breakthroughs    []string `json:"breakthroughs"`
	NextSteps        []string `json:"nextSteps"`
	OverallProgress  int      `json:"overallProgress"`
}

func (r TimelineAnalysis) validate() error {
	if strings.TrimSpace(r.GrowthTrajectory) == "" {
		return errors.New("missing growthTrajectory")
	}
	return checkPercent("overallProgress", r.OverallProgress)
}

// JournalAnalysis scores a journal entry against every archetype.
type JournalAnalysis struct {
	Tyrant             int    `json:"tyrant"`
	Victim             int    `json:"victim"`
	Martyr             int    `json:"martyr"`
	Saboteur           int    `json:"saboteur"`
	Judge              int    `json:"judge"`
	Rebel              int    `json:"rebel"`
	TopArchetype       string `json:"topArchetype"`
	SecondaryArchetype string `json:"secondaryArchetype"`
	Insight            string `json:"insight"`
	SuggestedActivity  string `json:"suggestedActivity"`
}

// Score returns the analysis value for a.
func (r JournalAnalysis) Score(a model.Archetype) int {
	switch a {
	case model.Tyrant:
		return r.Tyrant
	case model.Victim:
		return r.Victim
	case model.Martyr:
		return r.Martyr
	case model.Saboteur:
		return r.Saboteur
	case model.Judge:
		return r.Judge
	case model.Rebel:
		return r.Rebel
	}
	panic(fmt.Sprintf("gateway: score for %v", a))
}

func (r JournalAnalysis) validate() error {
	for _, a := range model.Archetypes {
		if err := checkPercent(a.String(), r.Score(a)); err != nil {
			return err
		}
	}
	if _, err := model.ParseArchetype(r.TopArchetype); err != nil {
		return fmt.Errorf("topArchetype: %w", err)
	}
	return nil
}

// TriggerAnalysis names the archetype a triggering story activated.
type TriggerAnalysis struct {
	PrimaryArchetype   string   `json:"primaryArchetype"`
	SecondaryArchetype string   `json:"secondaryArchetype,omitempty"`
	EmotionalKeywords  []string `json:"emotionalKeywords"`
	Analysis           string   `json:"analysis"`
	SuggestedModule    string   `json:"suggestedModule"`
	Confidence         float64  `json:"confidence"`
}

func (r TriggerAnalysis) validate() error {
	if _, err := model.ParseArchetype(r.PrimaryArchetype); err != nil {
		return fmt.Errorf("primaryArchetype: %w", err)
	}
	return checkUnit("confidence", r.Confidence)
}

// JudgmentInsight decodes a judgment into its projection and hidden value.
type JudgmentInsight struct {
	Archetype      string `json:"archetype"`
	Projection     string `json:"projection"`
	GoldValue      string `json:"goldValue"`
	IntegrationTip string `json:"integrationTip"`
}

// Decode converts the insight into the record stored on a judgment log.
func (r JudgmentInsight) Decode() model.JudgmentDecode {
	return model.JudgmentDecode{
		Projection:     r.Projection,
		GoldValue:      r.GoldValue,
		IntegrationTip: r.IntegrationTip,
	}
}

func (r JudgmentInsight) validate() error {
	if strings.TrimSpace(r.GoldValue) == "" {
		return errors.New("missing goldValue")
	}
	return nil
}

// Turn is one message in a coaching conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SocraticStep is the next coaching question.
type SocraticStep struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

func (r SocraticStep) validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return errors.New("missing question")
	}
	return nil
}

// Saboteur tones.
const (
	ToneProtective = "protective"
	ToneFearful    = "fearful"
	ToneDefensive  = "defensive"
	TonePleading   = "pleading"
)

// SaboteurResponse is the saboteur's voice in an interview.
type SaboteurResponse struct {
	SaboteurMessage string `json:"saboteurMessage"`
	Tone            string `json:"tone"`
	UnderlyingFear  string `json:"underlyingFear"`
}

func (r SaboteurResponse) validate() error {
	if strings.TrimSpace(r.SaboteurMessage) == "" {
		return errors.New("missing saboteurMessage")
	}
	switch r.Tone {
	case ToneProtective, ToneFearful, ToneDefensive, TonePleading:
		return nil
	}
	return fmt.Errorf("unknown tone %q", r.Tone)
}

func checkPercent(name string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s out of range: %d", name, v)
	}
	return nil
}

func checkUnit(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s out of range: %g", name, v)
	}
	return nil
}
