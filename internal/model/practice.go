package model

import (
	"fmt"
	"time"
)

// ControlEntry maps a Tyrant control behaviour to the fear it protects.
type ControlEntry struct {
	ID       string `json:"id"`
	Behavior string `json:"behavior"`
	Fear     string `json:"fear"`
}

// Reframe turns a victim thought into an empowered one.
type Reframe struct {
	ID        string    `json:"id"`
	Thought   string    `json:"thought"`
	Reframe   string    `json:"reframe"`
	Timestamp time.Time `json:"timestamp"`
}

// JudgmentDecode is the AI reading of a judgment.
type JudgmentDecode struct {
	Projection     string `json:"projection"`
	GoldValue      string `json:"goldValue"`
	IntegrationTip string `json:"integrationTip"`
}

// JudgmentLog records a judgment and the value hidden beneath it.
type JudgmentLog struct {
	ID        string          `json:"id"`
	Judgment  string          `json:"judgment"`
	Target    string          `json:"target"`
	Mirror    string          `json:"mirror"`
	Fear      string          `json:"fear"`
	Value     string          `json:"value"`
	Timestamp time.Time       `json:"timestamp"`
	AIDecoded *JudgmentDecode `json:"aiDecoded,omitempty"`
}

// RebelChoice is the answer to a Reactive vs. Authentic No scenario.
type RebelChoice string

const (
	RebelReactive  RebelChoice = "reactive"
	RebelAuthentic RebelChoice = "authentic"
)

// Scenario is a Rebel practice prompt.
type Scenario struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	ReactiveNo  string `json:"reactiveNo"`
	AuthenticNo string `json:"authenticNo"`
}

// RebelScenarios are the fixed Reactive vs. Authentic No prompts.
var RebelScenarios = []Scenario{
	{ID: "1", Text: "Your doctor tells you to eat healthier", ReactiveNo: "You can't tell me what to do! I'll eat what I want.", AuthenticNo: "I will not follow this specific diet, but I will find a healthy-eating path that feels authentic to me."},
	{ID: "2", Text: "Your partner asks you to move in together", ReactiveNo: "I feel trapped! I have to get out! (starts a fight)", AuthenticNo: "I value this relationship, but I need to be honest that I'm not ready for that step because I value my own space."},
	{ID: "3", Text: "Your boss sets a new deadline for a project", ReactiveNo: "They're always controlling me. I'll miss it on purpose to prove a point.", AuthenticNo: "I disagree with this timeline. Let me propose an alternative that works better."},
	{ID: "4", Text: "A friend suggests you should quit your toxic job", ReactiveNo: "Don't tell me what to do with my life!", AuthenticNo: "I appreciate your concern. I'm working through this at my own pace."},
	{ID: "5", Text: "Your therapist recommends a daily meditation practice", ReactiveNo: "I'm not going to be one of those meditation people. That's not me.", AuthenticNo: "Traditional meditation doesn't resonate with me, but I'm open to finding my own mindfulness practice."},
	{ID: "6", Text: "Your family expects you to attend a holiday gathering", ReactiveNo: "They can't force me. I'm not going just to spite them.", AuthenticNo: "I love you, but I need to skip this year to prioritize my mental health."},
	{ID: "7", Text: "Someone suggests you should save more money", ReactiveNo: "I'll spend my money however I want. You're not my parent.", AuthenticNo: "I hear you, and I'm working on my financial goals in a way that feels right for me."},
	{ID: "8", Text: "Your company implements a new mandatory policy", ReactiveNo: "This is ridiculous. I'm going to ignore it and see what happens.", AuthenticNo: "I have concerns about this policy. Let me bring them to the appropriate channels."},
}

// Volumes holds the Inner Council slider position (0..100) per archetype.
type Volumes struct {
	Current map[Archetype]int `json:"current"`
}

// CheckIn is a saved snapshot of council volumes.
type CheckIn struct {
	Timestamp time.Time         `json:"timestamp"`
	Volumes   map[Archetype]int `json:"volumes"`
}

// MaxCheckIns is how many council check-ins are retained.
const MaxCheckIns = 10

// NeedBucket is where a Yes/No Need Sorter card was placed. The empty
// bucket means unsorted.
type NeedBucket string

const (
	BucketUnsorted   NeedBucket = ""
	BucketJoyful     NeedBucket = "joyful"
	BucketBoundaried NeedBucket = "boundaried"
	BucketMartyr     NeedBucket = "martyr"
)

// ParseNeedBucket accepts joyful, boundaried, martyr or unsorted.
func ParseNeedBucket(s string) (NeedBucket, error) {
	switch b := NeedBucket(s); b {
	case BucketJoyful, BucketBoundaried, BucketMartyr:
		return b, nil
	case "unsorted":
		return BucketUnsorted, nil
	}
	return "", fmt.Errorf("unknown bucket %q (want joyful, boundaried, martyr or unsorted)", s)
}

// Label is the sorter's display name for b.
func (b NeedBucket) Label() string {
	switch b {
	case BucketJoyful:
		return "Joyful Yes"
	case BucketBoundaried:
		return "Boundaried No"
	case BucketMartyr:
		return "Martyr Yes"
	}
	return "Unsorted"
}

// NeedCard is one Martyr scenario and the bucket it was sorted into.
type NeedCard struct {
	ID       string     `json:"id"`
	Scenario string     `json:"scenario"`
	Bucket   NeedBucket `json:"bucket"`
}

// MartyrScenarios are the requests sorted by the Yes/No Need Sorter.
var MartyrScenarios = []string{
	"Your boss asks you to work late on a Friday",
	"Your friend asks for a big favor when you're already exhausted",
	"Your partner wants to watch a movie you hate",
	"Your child wants you to play, but you're depleted",
	"A colleague asks you to cover their shift",
	"Your mom wants you to visit this weekend (you need rest)",
	"Someone asks for your help with a project you're not interested in",
	"Your friend needs emotional support, but you're overwhelmed",
	"Your partner wants you to attend a social event you dread",
	"Someone asks you to volunteer for something that doesn't excite you",
}

// DefaultNeedCards returns every scenario unsorted.
func DefaultNeedCards() []NeedCard {
	cards := make([]NeedCard, len(MartyrScenarios))
	for i, sc := range MartyrScenarios {
		cards[i] = NeedCard{ID: fmt.Sprintf("card-%d", i), Scenario: sc}
	}
	return cards
}

// SaboteurLetter is a letter written in the saboteur's voice.
type SaboteurLetter struct {
	ID          string    `json:"id"`
	Goal        string    `json:"goal"`
	Behavior    string    `json:"behavior"`
	Fear        string    `json:"fear"`
	Reassurance string    `json:"reassurance"`
	Letter      string    `json:"letter"`
	Timestamp   time.Time `json:"timestamp"`
}

// ComposeLetter fills the letter template from l's fields.
func (l SaboteurLetter) ComposeLetter() string {
	return fmt.Sprintf(`Dear Self,

I know you want to %s. But I need you to understand something: I'm the one who makes you %s. And I do it because I'm terrified that %s.

I know it seems like I'm working against you, but please see this: I'm trying to protect you. If you never try, you can never fail. If you stay small, nobody can judge you. If you self-sabotage first, at least the pain is on YOUR terms.

But here's what I need you to know: %s

We can do this together, but I need you to reassure me. Can you show me it's safe to let you succeed?

Your Saboteur`, l.Goal, l.Behavior, l.Fear, l.Reassurance)
}

// InterviewTurn is one message in a saboteur interview. Role is "user" or
// "saboteur".
type InterviewTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SaboteurInterview is a saved exchange with the saboteur.
type SaboteurInterview struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	Conversation   []InterviewTurn `json:"conversation"`
	UnderlyingFear string          `json:"underlyingFear"`
}

// Timeline event types.
const (
	EventBreakthrough = "breakthrough"
	EventChallenge    = "challenge"
	EventIntegration  = "integration"
	EventReflection   = "reflection"
)

// ValidEventTypes are the allowed transformation timeline event types.
var ValidEventTypes = map[string]bool{
	EventBreakthrough: true,
	EventChallenge:    true,
	EventIntegration:  true,
	EventReflection:   true,
}

// DefaultImpact is the impact given to an event that sets none.
const DefaultImpact = 5

// TimelineEvent is a milestone on the transformation timeline. Impact is
// 1..10.
type TimelineEvent struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Impact      int       `json:"impact"`
	Emotions    []string  `json:"emotions"`
	Learnings   []string  `json:"learnings"`
}
