package model

// Activity is a guided exercise inside a chapter section.
type Activity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Section is one reading of a chapter with its exercises.
type Section struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// Chapter is a unit of the guided path. Quiz is empty when the chapter
// has none.
type Chapter struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections"`
	Quiz        string    `json:"quiz,omitempty"`
}

// Activity types.
const (
	ActivityReflection = "reflection"
	ActivityJournal    = "journal"
	ActivityExercise   = "exercise"
)

// Chapters is the guided path, in reading order.
var Chapters = []Chapter{
	{
		ID:          1,
		Title:       "Chapter I",
		Subtitle:    "The Shadow Self",
		Description: "Discover the hidden aspects of your psyche and begin the journey of integration.",
		Quiz:        "shadow-quiz",
		Sections: []Section{
			{ID: "shadow-intro", Title: "Understanding the Shadow", Activities: []Activity{
				{ID: "shadow-reflection-1", Title: "Shadow Reflection Exercise", Type: ActivityReflection, Description: "What traits in others trigger strong negative reactions in you? These often point to shadow aspects."},
			}},
			{ID: "projection", Title: "The Mirror of Projection", Activities: []Activity{
				{ID: "projection-journal", Title: "Projection Journal", Type: ActivityJournal, Description: "Write about a recent time someone triggered you. What quality did you judge in them? How might you possess this quality yourself?"},
			}},
			{ID: "ego-persona", Title: "Ego and Persona", Activities: []Activity{
				{ID: "persona-exploration", Title: "Persona Exploration", Type: ActivityExercise, Description: "List the different personas you wear (professional, family member, friend). How do they differ? Which feels most authentic?"},
			}},
			{ID: "before-after", Title: "Before & After Shadow Work", Activities: []Activity{
				{ID: "before-after-checklist", Title: "Before & After Checklist", Type: ActivityReflection, Description: "Review the before and after behaviors. Check off which ones you recognize in yourself now, and which ones you aspire to embody."},
			}},
		},
	},
	{
		ID:          2,
		Title:       "Chapter II",
		Subtitle:    "The Inner Child",
		Description: "Heal childhood wounds and reconnect with your authentic, playful nature.",
		Sections: []Section{
			{ID: "inner-child-intro", Title: "Meeting Your Inner Child", Activities: []Activity{
				{ID: "inner-child-letter", Title: "Letter to Your Inner Child", Type: ActivityJournal, Description: "Write a compassionate letter to your younger self. What does that child need to hear from you?"},
			}},
			{ID: "childhood-wounds", Title: "Understanding Childhood Wounds", Activities: []Activity{
				{ID: "wound-identification", Title: "Wound Identification", Type: ActivityReflection, Description: "Which childhood wounds resonate most with you? How do they show up in your adult life?"},
			}},
			{ID: "reparenting", Title: "The Practice of Reparenting", Activities: []Activity{
				{ID: "reparenting-practice", Title: "Daily Reparenting Practice", Type: ActivityExercise, Description: "Choose one reparenting practice to do daily for a week. Notice how it feels to care for yourself this way."},
			}},
		},
	},
	{
		ID:          3,
		Title:       "Chapter III",
		Subtitle:    "Archetypes & The Collective Unconscious",
		Description: "Explore the universal patterns that shape human experience and consciousness.",
		Sections: []Section{
			{ID: "archetypes-intro", Title: "Understanding Archetypes", Activities: []Activity{
				{ID: "archetype-identification", Title: "Personal Archetype Identification", Type: ActivityReflection, Description: "Which archetypes are most active in your life right now? How do they manifest in your behavior and choices?"},
			}},
			{ID: "shadow-archetypes", Title: "Shadow Archetypes", Activities: []Activity{
				{ID: "shadow-archetype-exploration", Title: "Shadow Archetype Deep Dive", Type: ActivityJournal, Description: "Choose one shadow archetype that resonates with you. Write about how it shows up in your life and what its integrated potential might look like."},
			}},
		},
	},
}

// ChapterByID returns chapter id from the catalogue.
func ChapterByID(id int) (Chapter, bool) {
	for _, c := range Chapters {
		if c.ID == id {
			return c, true
		}
	}
	return Chapter{}, false
}

// ActivityByID returns the activity with id and the chapter holding it.
func ActivityByID(id string) (Activity, int, bool) {
	for _, c := range Chapters {
		for _, s := range c.Sections {
			for _, a := range s.Activities {
				if a.ID == id {
					return a, c.ID, true
				}
			}
		}
	}
	return Activity{}, 0, false
}
