package model

import "time"

// Question is a static assessment item classified into one archetype.
type Question struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Category Archetype `json:"category"`
}

// Response is the rating given to one question.
type Response struct {
	QuestionID string `json:"questionId"`
	Rating     int    `json:"rating"`
}

// NormalizedScore is a category's summed rating rescaled to 0..100.
type NormalizedScore struct {
	Category Archetype `json:"category"`
	Value    int       `json:"value"`
}

// InsightRecord is the snapshot written once per completed assessment.
// A new assessment overwrites it wholesale.
type InsightRecord struct {
	Scores    []NormalizedScore `json:"scores"`
	Date      time.Time         `json:"date"`
	Responses []Response        `json:"responses"`
}

// UserProfile is the single mutable user aggregate.
type UserProfile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Progress        Progress `json:"progress"`
	InsightCrystals int      `json:"insightCrystals"`
}

// Progress tracks completion events.
type Progress struct {
	ChaptersCompleted   []int     `json:"chaptersCompleted"`
	ActivitiesCompleted []string  `json:"activitiesCompleted"`
	QuizzesCompleted    []string  `json:"quizzesCompleted"`
	PathProgress        float64   `json:"pathProgress"`
	LastVisit           time.Time `json:"lastVisit"`
}

// Journal entry types.
const (
	JournalGeneral    = "general"
	JournalInnerChild = "inner-child"
	JournalShadow     = "shadow"
	JournalDream      = "dream"
	JournalTrigger    = "trigger"
)

// ValidJournalTypes are the allowed journal entry types.
var ValidJournalTypes = map[string]bool{
	JournalGeneral:    true,
	JournalInnerChild: true,
	JournalShadow:     true,
	JournalDream:      true,
	JournalTrigger:    true,
}

// JournalEntry is a free-form journal submission.
type JournalEntry struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Mood    string    `json:"mood,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
}

// EmotionEntry is one felt emotion and how strongly.
type EmotionEntry struct {
	Emotion   string `json:"emotion"`
	Intensity int    `json:"intensity"`
}

// TriggerLog records a triggering situation.
type TriggerLog struct {
	ID                 string         `json:"id"`
	Date               time.Time      `json:"date"`
	Situation          string         `json:"situation"`
	Emotions           []EmotionEntry `json:"emotions"`
	Memories           string         `json:"memories"`
	PhysicalSensations string         `json:"physicalSensations"`
}

// TimeCapsule is a letter to open on or after OpenDate.
type TimeCapsule struct {
	ID          string    `json:"id"`
	CreatedDate time.Time `json:"createdDate"`
	OpenDate    time.Time `json:"openDate"`
	Letter      string    `json:"letter"`
	Opened      bool      `json:"opened"`
}

// DreamLog records a dream and its symbols.
type DreamLog struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Characters  []string  `json:"characters"`
	Symbols     []string  `json:"symbols"`
	Emotions    []string  `json:"emotions"`
	AIQuestion  string    `json:"aiQuestion,omitempty"`
}

// ArchetypeCard is a catalogue entry the user may claim as their own.
type ArchetypeCard struct {
	ID                  Archetype `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Fears               []string  `json:"fears"`
	IntegratedPotential string    `json:"integratedPotential"`
	ImageURL            string    `json:"imageUrl"`
	Claimed             bool      `json:"claimed"`
}

// DefaultArchetypeCards seeds the catalogue from the static archetype info.
func DefaultArchetypeCards() []ArchetypeCard {
	cards := make([]ArchetypeCard, 0, NumArchetypes)
	for _, a := range Archetypes {
		info := a.Info()
		cards = append(cards, ArchetypeCard{
			ID:                  a,
			Name:                info.Name,
			Description:         info.Description,
			Fears:               info.Fears,
			IntegratedPotential: info.IntegratedPotential,
			ImageURL:            info.ImageURL,
		})
	}
	return cards
}

// CommunityInsight is a short shared reflection.
type CommunityInsight struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
}
