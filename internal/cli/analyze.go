package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/gateway"
	"github.com/rcliao/shadow-journal/internal/model"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Ask the AI gateway for insight (falls back to static guidance when unavailable)",
}

// analysis is the printed envelope for every gateway feature.
type analysis[T any] struct {
	Feature string          `json:"feature"`
	Outcome gateway.Outcome `json:"outcome"`
	Error   string          `json:"error,omitempty"`
	Value   T               `json:"value"`
}

func init() {
	dialogueCmd := &cobra.Command{
		Use:   "dialogue [message]",
		Short: "Talk with your shadow",
		Run:   runAnalyzeDialogue,
	}
	dialogueCmd.Flags().String("context", "", "What the dialogue is about")
	dialogueCmd.Flags().String("state", "", "Your current emotional state")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "Find relationship patterns across your journal",
		Args:  cobra.NoArgs,
		Run:   runAnalyzePatterns,
	}
	patternsCmd.Flags().StringArray("history", nil, "Relationship history note, repeatable")
	patternsCmd.Flags().IntP("limit", "n", 20, "Most recent journal entries to include")

	authenticityCmd := &cobra.Command{
		Use:   "authenticity",
		Short: "Score how authentically you are living",
		Args:  cobra.NoArgs,
		Run:   runAnalyzeAuthenticity,
	}
	authenticityCmd.Flags().StringArray("response", nil, "Self-assessment answer, repeatable")
	authenticityCmd.Flags().String("behaviors", "", "Comma-separated behaviours")
	authenticityCmd.Flags().String("values", "", "Comma-separated values")

	timelineCmd := &cobra.Command{
		Use:   "timeline",
		Short: "Summarise growth across journal entries and triggers",
		Args:  cobra.NoArgs,
		Run:   runAnalyzeTimeline,
	}
	timelineCmd.Flags().IntP("limit", "n", 20, "Most recent events to include")

	journalAnalyzeCmd := &cobra.Command{
		Use:   "journal [entry]",
		Short: "Score an entry against every archetype",
		Run:   runAnalyzeJournal,
	}
	journalAnalyzeCmd.Flags().String("id", "", "Analyse a saved journal entry by id")
	journalAnalyzeCmd.Flags().Bool("save", false, "Save the text as a shadow journal entry")

	triggerCmd := &cobra.Command{
		Use:   "trigger [story]",
		Short: "Name the archetype a triggering story activated",
		Run:   runAnalyzeTrigger,
	}
	triggerCmd.Flags().Bool("save", false, "Log the story as a trigger")

	judgmentCmd := &cobra.Command{
		Use:   "judgment [judgment]",
		Short: "Decode a judgment into projection and hidden value",
		Run:   runAnalyzeJudgment,
	}
	judgmentCmd.Flags().String("target", "", "Who or what was judged")
	judgmentCmd.Flags().Bool("save", false, "Log the judgment with its decoding")

	socraticCmd := &cobra.Command{
		Use:   "socratic [thought]",
		Short: "Get the next coaching question for a thought",
		Run:   runAnalyzeSocratic,
	}
	socraticCmd.Flags().StringArray("turn", nil, "Earlier turn as role:content, repeatable")

	saboteurCmd := &cobra.Command{
		Use:   "saboteur [message]",
		Short: "Interview your inner saboteur",
		Run:   runAnalyzeSaboteur,
	}
	saboteurCmd.Flags().String("situation", "", "The situation being sabotaged")
	saboteurCmd.Flags().Bool("save", false, "Save the exchange to your Saboteur interviews (live answers only)")

	analyzeCmd.AddCommand(dialogueCmd, patternsCmd, authenticityCmd, timelineCmd,
		journalAnalyzeCmd, triggerCmd, judgmentCmd, socraticCmd, saboteurCmd)
	RootCmd.AddCommand(analyzeCmd)
}

// printAnalysis renders res and exits non-zero when it failed outright.
func printAnalysis[T any](cmd *cobra.Command, feature string, res gateway.Result[T], text func(w io.Writer, v T)) {
	if res.Outcome == gateway.Failed {
		exitErr("analyze "+feature, res.Err)
	}
	out := analysis[T]{Feature: feature, Outcome: res.Outcome, Value: res.Value}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	render(cmd, out, func(w io.Writer) {
		if res.Outcome == gateway.Degraded {
			fmt.Fprintf(w, "%s\n\n", dim("(offline guidance: "+out.Error+")"))
		}
		text(w, res.Value)
	})
}

func requireText(cmd *cobra.Command, args []string, what string) string {
	s := readContent(cmd, args)
	if s == "" {
		exitErr("analyze", fmt.Errorf("%s is required (pass as argument or pipe to stdin)", what))
	}
	return s
}

func bullets(w io.Writer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s\n", title(heading))
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

func runAnalyzeDialogue(cmd *cobra.Command, args []string) {
	message := requireText(cmd, args, "message")
	ctxFlag, _ := cmd.Flags().GetString("context")
	stateFlag, _ := cmd.Flags().GetString("state")

	res := newGateway().Dialogue(cmd.Context(), gateway.DialogueRequest{Message: message, Context: ctxFlag, State: stateFlag})
	printAnalysis(cmd, gateway.FeatureDialogue, res, func(w io.Writer, v gateway.DialogueResponse) {
		fmt.Fprintf(w, "%s\n", v.Message)
		bullets(w, "\nYou might ask:", v.SuggestedQuestions)
	})
}

func runAnalyzePatterns(cmd *cobra.Command, args []string) {
	history, _ := cmd.Flags().GetStringArray("history")
	limit, _ := cmd.Flags().GetInt("limit")

	st, done := openState(cmd)
	entries := st.JournalEntries()
	done()
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	res := newGateway().Patterns(cmd.Context(), gateway.PatternsRequest{JournalEntries: entries, RelationshipHistory: orEmpty(history)})
	printAnalysis(cmd, gateway.FeaturePatterns, res, func(w io.Writer, v gateway.PatternAnalysis) {
		for _, p := range v.Patterns {
			fmt.Fprintf(w, "%s  %s\n  %s\n", title(p.Name), dim(p.Archetype), p.Description)
		}
		bullets(w, "Insights", v.OverallInsights)
		bullets(w, "Recommendations", v.Recommendations)
	})
}

func runAnalyzeAuthenticity(cmd *cobra.Command, args []string) {
	responses, _ := cmd.Flags().GetStringArray("response")
	behaviors, _ := cmd.Flags().GetString("behaviors")
	values, _ := cmd.Flags().GetString("values")

	req := gateway.AuthenticityRequest{Behaviors: orEmpty(splitList(behaviors)), Values: orEmpty(splitList(values))}
	for _, r := range responses {
		req.Responses = append(req.Responses, r)
	}
	res := newGateway().Authenticity(cmd.Context(), req)
	printAnalysis(cmd, gateway.FeatureAuthenticity, res, func(w io.Writer, v gateway.AuthenticityScore) {
		for _, d := range []struct {
			name  string
			value int
		}{
			{"overall", v.Overall}, {"emotional", v.Emotional}, {"behavioral", v.Behavioral},
			{"cognitive", v.Cognitive}, {"social", v.Social},
		} {
			fmt.Fprintf(w, "  %-10s %3d\n", d.name, d.value)
		}
		bullets(w, "Strengths", v.Strengths)
		bullets(w, "Growth areas", v.GrowthAreas)
		bullets(w, "Insights", v.Insights)
	})
}

// timelineEvents merges transformation milestones, journal entries and
// triggers, newest first. Equal dates keep that source order.
func timelineEvents(milestones []model.TimelineEvent, journals []model.JournalEntry, triggers []model.TriggerLog, limit int) []gateway.TimelineEvent {
	type dated struct {
		at time.Time
		ev gateway.TimelineEvent
	}
	all := make([]dated, 0, len(milestones)+len(journals)+len(triggers))
	for _, m := range milestones {
		all = append(all, dated{m.Date, gateway.TimelineEvent{
			ID: m.ID, Date: m.Date.Format(dateLayout), Title: m.Title, Description: m.Description, Type: m.Type,
		}})
	}
	for _, e := range journals {
		all = append(all, dated{e.Date, gateway.TimelineEvent{
			ID: e.ID, Date: e.Date.Format(dateLayout), Title: e.Title, Description: e.Content, Type: "journal",
		}})
	}
	for _, t := range triggers {
		all = append(all, dated{t.Date, gateway.TimelineEvent{
			ID: t.ID, Date: t.Date.Format(dateLayout), Title: t.Situation, Description: t.Memories, Type: "trigger",
		}})
	}
	slices.SortStableFunc(all, func(a, b dated) int { return b.at.Compare(a.at) })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	events := make([]gateway.TimelineEvent, len(all))
	for i, d := range all {
		events[i] = d.ev
	}
	return events
}

func runAnalyzeTimeline(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	st, done := openState(cmd)
	events := timelineEvents(st.TimelineEvents(), st.JournalEntries(), st.Triggers(), limit)
	done()

	res := newGateway().Timeline(cmd.Context(), gateway.TimelineRequest{Events: events})
	printAnalysis(cmd, gateway.FeatureTimeline, res, func(w io.Writer, v gateway.TimelineAnalysis) {
		fmt.Fprintf(w, "%s (%d%%)\n", v.GrowthTrajectory, v.OverallProgress)
		bullets(w, "Themes", v.KeyThemes)
		bullets(w, "Breakthroughs", v.Breakthroughs)
		bullets(w, "Next steps", v.NextSteps)
	})
}

func runAnalyzeJournal(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	save, _ := cmd.Flags().GetBool("save")
	if id != "" && save {
		exitErr("analyze journal", errors.New("--id and --save cannot be combined"))
	}

	st, done := openState(cmd)
	defer done()

	var text string
	if id != "" {
		for _, e := range st.JournalEntries() {
			if e.ID == id {
				text = e.Content
			}
		}
		if text == "" {
			exitErr("analyze journal", fmt.Errorf("journal entry %s not found", id))
		}
	} else {
		text = requireText(cmd, args, "entry")
	}

	res := newGateway().Journal(cmd.Context(), text)
	if save && res.Usable() {
		if _, err := st.AddJournalEntry(cmd.Context(), model.JournalEntry{Type: model.JournalShadow, Content: text}); err != nil {
			exitErr("analyze journal", err)
		}
	}
	printAnalysis(cmd, gateway.FeatureJournal, res, func(w io.Writer, v gateway.JournalAnalysis) {
		for _, a := range model.Archetypes {
			fmt.Fprintf(w, "  %-10s %s %3d\n", a.Info().Name, bar(a, v.Score(a)), v.Score(a))
		}
		fmt.Fprintf(w, "\n%s\n", v.Insight)
		if v.SuggestedActivity != "" {
			fmt.Fprintf(w, "%s %s\n", dim("Try:"), v.SuggestedActivity)
		}
	})
}

func runAnalyzeTrigger(cmd *cobra.Command, args []string) {
	story := requireText(cmd, args, "story")
	save, _ := cmd.Flags().GetBool("save")

	res := newGateway().Trigger(cmd.Context(), story)
	if save && res.Usable() {
		st, done := openState(cmd)
		defer done()
		if _, err := st.AddTrigger(cmd.Context(), model.TriggerLog{Situation: story}); err != nil {
			exitErr("analyze trigger", err)
		}
	}
	printAnalysis(cmd, gateway.FeatureTrigger, res, func(w io.Writer, v gateway.TriggerAnalysis) {
		if a, err := model.ParseArchetype(v.PrimaryArchetype); err == nil {
			fmt.Fprintf(w, "%s (%.0f%% confidence)\n", archetypeName(a), v.Confidence*100)
		}
		fmt.Fprintf(w, "%s\n", v.Analysis)
		if v.SuggestedModule != "" {
			fmt.Fprintf(w, "%s %s\n", dim("Next:"), v.SuggestedModule)
		}
	})
}

func runAnalyzeJudgment(cmd *cobra.Command, args []string) {
	judgment := requireText(cmd, args, "judgment")
	target, _ := cmd.Flags().GetString("target")
	save, _ := cmd.Flags().GetBool("save")

	res := newGateway().Judgment(cmd.Context(), judgment, target)
	if save && res.Usable() {
		st, done := openState(cmd)
		defer done()
		if _, err := st.AddJudgmentLog(cmd.Context(), judgmentLog(judgment, target, res)); err != nil {
			exitErr("analyze judgment", err)
		}
	}
	printAnalysis(cmd, gateway.FeatureJudgment, res, func(w io.Writer, v gateway.JudgmentInsight) {
		fmt.Fprintf(w, "%s %s\n", title("Projection:"), v.Projection)
		fmt.Fprintf(w, "%s %s\n", title("Gold:"), v.GoldValue)
		fmt.Fprintf(w, "%s %s\n", title("Integrate:"), v.IntegrationTip)
	})
}

// judgmentLog builds the log saved for judgment. Only a live decoding is
// attached.
func judgmentLog(judgment, target string, res gateway.Result[gateway.JudgmentInsight]) model.JudgmentLog {
	log := model.JudgmentLog{Judgment: judgment, Target: target}
	if res.Outcome == gateway.Live {
		decoded := res.Value.Decode()
		log.Value = res.Value.GoldValue
		log.AIDecoded = &decoded
	}
	return log
}

func runAnalyzeSocratic(cmd *cobra.Command, args []string) {
	thought := requireText(cmd, args, "thought")
	rawTurns, _ := cmd.Flags().GetStringArray("turn")

	history := make([]gateway.Turn, 0, len(rawTurns))
	for _, r := range rawTurns {
		role, content, ok := strings.Cut(r, ":")
		if !ok {
			exitErr("analyze socratic", fmt.Errorf("turn %q: want role:content", r))
		}
		history = append(history, gateway.Turn{Role: strings.TrimSpace(role), Content: strings.TrimSpace(content)})
	}

	res := newGateway().Socratic(cmd.Context(), thought, history)
	printAnalysis(cmd, gateway.FeatureSocratic, res, func(w io.Writer, v gateway.SocraticStep) {
		fmt.Fprintf(w, "%s\n", title(v.Question))
		if v.Context != "" {
			fmt.Fprintf(w, "%s\n", dim(v.Context))
		}
	})
}

func runAnalyzeSaboteur(cmd *cobra.Command, args []string) {
	message := requireText(cmd, args, "message")
	situation, _ := cmd.Flags().GetString("situation")
	save, _ := cmd.Flags().GetBool("save")

	res := newGateway().Saboteur(cmd.Context(), message, situation)
	if iv, ok := saboteurInterview(message, res); save && ok {
		st, done := openState(cmd)
		defer done()
		if _, err := st.AddSaboteurInterview(cmd.Context(), iv); err != nil {
			exitErr("analyze saboteur", err)
		}
	}
	printAnalysis(cmd, gateway.FeatureSaboteur, res, func(w io.Writer, v gateway.SaboteurResponse) {
		fmt.Fprintf(w, "%s %s\n", archetypeName(model.Saboteur), dim("("+v.Tone+")"))
		fmt.Fprintf(w, "%s\n", v.SaboteurMessage)
		fmt.Fprintf(w, "%s %s\n", dim("Underlying fear:"), v.UnderlyingFear)
	})
}

// saboteurInterview turns a live exchange into an interview record.
func saboteurInterview(message string, res gateway.Result[gateway.SaboteurResponse]) (model.SaboteurInterview, bool) {
	if res.Outcome != gateway.Live {
		return model.SaboteurInterview{}, false
	}
	return model.SaboteurInterview{
		Conversation: []model.InterviewTurn{
			{Role: "user", Content: message},
			{Role: "saboteur", Content: res.Value.SaboteurMessage},
		},
		UnderlyingFear: res.Value.UnderlyingFear,
	}, true
}
