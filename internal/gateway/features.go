package gateway

import (
	"context"
	"strings"

	"github.com/rcliao/shadow-journal/internal/model"
)

// DialogueRequest is the body of a dialogue call.
type DialogueRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
	State   string `json:"state"`
}

// Dialogue asks the shadow to answer message.
func (c *Client) Dialogue(ctx context.Context, req DialogueRequest) Result[DialogueResponse] {
	if blank(req.Message) {
		return failed[DialogueResponse](ErrEmptyInput)
	}
	return call(ctx, c, FeatureDialogue, req, FallbackDialogue)
}

// PatternsRequest is the body of a patterns call.
type PatternsRequest struct {
	JournalEntries      []model.JournalEntry `json:"journalEntries"`
	RelationshipHistory []string             `json:"relationshipHistory"`
}

// Patterns looks for recurring relationship patterns across entries.
func (c *Client) Patterns(ctx context.Context, req PatternsRequest) Result[PatternAnalysis] {
	if len(req.JournalEntries) == 0 && len(req.RelationshipHistory) == 0 {
		return failed[PatternAnalysis](ErrEmptyInput)
	}
	return call(ctx, c, FeaturePatterns, req, FallbackPatterns)
}

// AuthenticityRequest is the body of an authenticity call.
type AuthenticityRequest struct {
	Responses []any    `json:"responses"`
	Behaviors []string `json:"behaviors"`
	Values    []string `json:"values"`
}

// Authenticity scores self-assessment responses.
func (c *Client) Authenticity(ctx context.Context, req AuthenticityRequest) Result[AuthenticityScore] {
	if len(req.Responses) == 0 {
		return failed[AuthenticityScore](ErrEmptyInput)
	}
	return call(ctx, c, FeatureAuthenticity, req, FallbackAuthenticity)
}

// TimelineRequest is the body of a timeline call.
type TimelineRequest struct {
	Events []TimelineEvent `json:"events"`
}

// Timeline analyses progress across events.
func (c *Client) Timeline(ctx context.Context, req TimelineRequest) Result[TimelineAnalysis] {
	if len(req.Events) == 0 {
		return failed[TimelineAnalysis](ErrEmptyInput)
	}
	return call(ctx, c, FeatureTimeline, req, FallbackTimeline)
}

// Journal scores a journal entry against the archetypes.
func (c *Client) Journal(ctx context.Context, entry string) Result[JournalAnalysis] {
	if blank(entry) {
		return failed[JournalAnalysis](ErrEmptyInput)
	}
	return call(ctx, c, FeatureJournal, map[string]string{"entry": entry}, FallbackJournal)
}

// Trigger identifies the archetype behind a triggering story.
func (c *Client) Trigger(ctx context.Context, story string) Result[TriggerAnalysis] {
	if blank(story) {
		return failed[TriggerAnalysis](ErrEmptyInput)
	}
	return call(ctx, c, FeatureTrigger, map[string]string{"story": story}, FallbackTrigger)
}

// Judgment decodes a judgment about target.
func (c *Client) Judgment(ctx context.Context, judgment, target string) Result[JudgmentInsight] {
	if blank(judgment) {
		return failed[JudgmentInsight](ErrEmptyInput)
	}
	return call(ctx, c, FeatureJudgment, map[string]string{"judgment": judgment, "target": target}, FallbackJudgment)
}

type socraticRequest struct {
	Thought string `json:"thought"`
	History []Turn `json:"history"`
}

// Socratic returns the next reframing question for thought.
func (c *Client) Socratic(ctx context.Context, thought string, history []Turn) Result[SocraticStep] {
	if blank(thought) {
		return failed[SocraticStep](ErrEmptyInput)
	}
	if history == nil {
		history = []Turn{}
	}
	return call(ctx, c, FeatureSocratic, socraticRequest{Thought: thought, History: history}, FallbackSocratic)
}

// Saboteur answers message in the saboteur's voice.
func (c *Client) Saboteur(ctx context.Context, message, situation string) Result[SaboteurResponse] {
	if blank(message) {
		return failed[SaboteurResponse](ErrEmptyInput)
	}
	return call(ctx, c, FeatureSaboteur, map[string]string{"message": message, "context": situation}, FallbackSaboteur)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
