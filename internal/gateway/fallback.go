package gateway

// Static fallbacks. Each call returns a fresh value so callers may modify it.

// FallbackDialogue is the canned empathetic reply.
func FallbackDialogue() DialogueResponse {
	return DialogueResponse{
		Message:       "I seem to be having trouble connecting right now. Please try again in a moment.",
		EmotionalTone: "neutral",
		SuggestedQuestions: []string{
			"What are you trying to protect me from?",
			"When did you first appear in my life?",
		},
	}
}

// FallbackPatterns is the generic pattern reading.
func FallbackPatterns() PatternAnalysis {
	return PatternAnalysis{
		Patterns: []Pattern{{
			ID:             "1",
			Name:           "Seeking Validation",
			Description:    "Pattern of seeking external approval in relationships",
			Frequency:      8,
			Triggers:       []string{"Criticism", "Uncertainty", "Conflict"},
			Behaviors:      []string{"Over-explaining", "Apologizing excessively", "People-pleasing"},
			Outcomes:       []string{"Resentment", "Loss of self", "Burnout"},
			Archetype:      "Victim",
			Type:           "emotional",
			Impact:         7,
			RelatedAspects: []string{"Self-worth", "Boundaries", "Authenticity"},
		}},
		OverallInsights: []string{"Strong pattern of external validation seeking detected"},
		Recommendations: []string{"Practice setting boundaries", "Develop self-validation practices"},
		Insights:        []string{"Your relationships often reflect your inner child needs"},
		Confidence:      0.85,
	}
}

// FallbackAuthenticity is a neutral authenticity score.
func FallbackAuthenticity() AuthenticityScore {
	return AuthenticityScore{
		Overall:     50,
		Emotional:   50,
		Behavioral:  50,
		Cognitive:   50,
		Social:      50,
		Strengths:   []string{"Willingness to look inward"},
		GrowthAreas: []string{"Expressing needs directly"},
		Insights:    []string{"Authenticity grows through small, honest choices made consistently."},
	}
}

// FallbackTimeline is the generic progress summary.
func FallbackTimeline() TimelineAnalysis {
	return TimelineAnalysis{
		GrowthTrajectory: "steady",
		KeyThemes:        []string{"Self-awareness"},
		Breakthroughs:    []string{},
		NextSteps:        []string{"Keep logging events so patterns in your growth become visible."},
		OverallProgress:  0,
	}
}

// FallbackJournal is the archetype reading used when journal analysis is unavailable.
func FallbackJournal() JournalAnalysis {
	return JournalAnalysis{
		Tyrant:             40,
		Victim:             30,
		Martyr:             60,
		Saboteur:           20,
		Judge:              35,
		Rebel:              25,
		TopArchetype:       "Martyr",
		SecondaryArchetype: "Tyrant",
		Insight:            "Your entry suggests themes of over-giving and control. Consider exploring boundaries.",
		SuggestedActivity:  "Yes/No Need Sorter",
	}
}

// FallbackTrigger is the generic trigger reading.
func FallbackTrigger() TriggerAnalysis {
	return TriggerAnalysis{
		PrimaryArchetype:  "Victim",
		EmotionalKeywords: []string{"helpless", "frustrated"},
		Analysis:          "This situation seems to have activated a feeling of powerlessness. Let's explore what you do have control over.",
		SuggestedModule:   "Victim-to-Victor Reframer",
		Confidence:        0.7,
	}
}

// FallbackJudgment is the generic projection reading.
func FallbackJudgment() JudgmentInsight {
	return JudgmentInsight{
		Archetype:      "Judge",
		Projection:     "This judgment may reflect a part of yourself you struggle to accept",
		GoldValue:      "Authenticity and integrity",
		IntegrationTip: "Practice being 10% more authentic in your daily interactions",
	}
}

// FallbackSocratic is a stock reframing question.
func FallbackSocratic() SocraticStep {
	return SocraticStep{
		Question: "That sounds incredibly challenging. What is one part of this situation, no matter how small, that you do have control over?",
		Context:  "fallback",
	}
}

// FallbackSaboteur is the saboteur's stock protective reply.
func FallbackSaboteur() SaboteurResponse {
	return SaboteurResponse{
		SaboteurMessage: "I'm just trying to protect you. What if you fail? It's safer to stay where you are, even if you're unhappy. At least it's familiar.",
		Tone:            ToneProtective,
		UnderlyingFear:  "Being exposed as not good enough",
	}
}
