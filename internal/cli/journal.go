package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/gateway"
	"github.com/rcliao/shadow-journal/internal/model"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write and browse journal entries",
}

func init() {
	addCmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Add a journal entry (content from args or stdin)",
		Run:   runJournalAdd,
	}
	addCmd.Flags().StringP("type", "t", model.JournalGeneral, "Entry type: general, inner-child, shadow, dream, trigger")
	addCmd.Flags().String("title", "", "Entry title")
	addCmd.Flags().String("mood", "", "Mood")
	addCmd.Flags().String("tags", "", "Comma-separated tags")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Args:  cobra.NoArgs,
		Run:   runJournalList,
	}
	listCmd.Flags().IntP("limit", "n", 0, "Max entries (0 = all)")
	listCmd.Flags().StringP("type", "t", "", "Only entries of this type")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search entries by title, content, mood, type or tag",
		Args:  cobra.MinimumNArgs(1),
		Run:   runJournalSearch,
	}

	journalCmd.AddCommand(addCmd, listCmd, searchCmd)
	RootCmd.AddCommand(journalCmd)

	triggerCmd := &cobra.Command{
		Use:   "trigger",
		Short: "Log triggering situations",
	}
	triggerAdd := &cobra.Command{
		Use:   "add [situation]",
		Short: "Log a trigger (situation from args or stdin)",
		Run:   runTriggerAdd,
	}
	triggerAdd.Flags().StringArrayP("emotion", "e", nil, "Emotion as name:intensity (1-10), repeatable")
	triggerAdd.Flags().String("memories", "", "Memories the situation stirred")
	triggerAdd.Flags().String("sensations", "", "Physical sensations")
	triggerList := &cobra.Command{
		Use:   "list",
		Short: "List trigger logs, newest first",
		Args:  cobra.NoArgs,
		Run:   runTriggerList,
	}
	triggerCmd.AddCommand(triggerAdd, triggerList)
	RootCmd.AddCommand(triggerCmd)

	dreamCmd := &cobra.Command{
		Use:   "dream",
		Short: "Record dreams and their symbols",
	}
	dreamAdd := &cobra.Command{
		Use:   "add [description]",
		Short: "Record a dream (description from args or stdin)",
		Run:   runDreamAdd,
	}
	dreamAdd.Flags().String("title", "", "Dream title")
	dreamAdd.Flags().String("characters", "", "Comma-separated characters")
	dreamAdd.Flags().String("symbols", "", "Comma-separated symbols")
	dreamAdd.Flags().String("emotions", "", "Comma-separated emotions")
	dreamAdd.Flags().Bool("ask", false, "Ask the AI gateway for a reflection question")
	dreamList := &cobra.Command{
		Use:   "list",
		Short: "List dreams, newest first",
		Args:  cobra.NoArgs,
		Run:   runDreamList,
	}
	dreamCmd.AddCommand(dreamAdd, dreamList)
	RootCmd.AddCommand(dreamCmd)
}

func runJournalAdd(cmd *cobra.Command, args []string) {
	content := readContent(cmd, args)
	if content == "" {
		exitErr("journal add", errors.New("content is required (pass as argument or pipe to stdin)"))
	}
	typ, _ := cmd.Flags().GetString("type")
	titleFlag, _ := cmd.Flags().GetString("title")
	mood, _ := cmd.Flags().GetString("mood")
	tags, _ := cmd.Flags().GetString("tags")

	st, done := openState(cmd)
	defer done()

	e, err := st.AddJournalEntry(cmd.Context(), model.JournalEntry{
		Type:    typ,
		Title:   titleFlag,
		Content: content,
		Mood:    mood,
		Tags:    splitList(tags),
	})
	if err != nil {
		exitErr("journal add", err)
	}
	render(cmd, e, func(w io.Writer) {
		fmt.Fprintf(w, "saved %s\n", e.ID)
	})
}

func runJournalList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	typ, _ := cmd.Flags().GetString("type")

	st, done := openState(cmd)
	defer done()

	var entries []model.JournalEntry
	for _, e := range st.JournalEntries() {
		if typ != "" && e.Type != typ {
			continue
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	printJournal(cmd, entries)
}

func runJournalSearch(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()
	printJournal(cmd, st.SearchJournal(strings.Join(args, " ")))
}

func printJournal(cmd *cobra.Command, entries []model.JournalEntry) {
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	render(cmd, entries, func(w io.Writer) {
		if len(entries) == 0 {
			fmt.Fprintln(w, "No entries.")
			return
		}
		for _, e := range entries {
			heading := e.Title
			if heading == "" {
				heading = "(untitled)"
			}
			fmt.Fprintf(w, "%s  %s  %s\n", dim(fmtDate(e.Date)), title(heading), dim(e.Type))
			fmt.Fprintf(w, "  %s\n", e.Content)
			if len(e.Tags) > 0 {
				fmt.Fprintf(w, "  %s\n", dim("#"+strings.Join(e.Tags, " #")))
			}
		}
	})
}

// parseEmotion reads "name:intensity". Intensity defaults to 5.
func parseEmotion(s string) (model.EmotionEntry, error) {
	name, level, found := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return model.EmotionEntry{}, fmt.Errorf("emotion %q has no name", s)
	}
	e := model.EmotionEntry{Emotion: name, Intensity: 5}
	if found {
		n, err := strconv.Atoi(strings.TrimSpace(level))
		if err != nil || n < 1 || n > 10 {
			return model.EmotionEntry{}, fmt.Errorf("emotion %q: intensity must be 1-10", s)
		}
		e.Intensity = n
	}
	return e, nil
}

func runTriggerAdd(cmd *cobra.Command, args []string) {
	situation := readContent(cmd, args)
	if situation == "" {
		exitErr("trigger add", errors.New("situation is required (pass as argument or pipe to stdin)"))
	}
	raw, _ := cmd.Flags().GetStringArray("emotion")
	memories, _ := cmd.Flags().GetString("memories")
	sensations, _ := cmd.Flags().GetString("sensations")

	emotions := make([]model.EmotionEntry, 0, len(raw))
	for _, r := range raw {
		e, err := parseEmotion(r)
		if err != nil {
			exitErr("trigger add", err)
		}
		emotions = append(emotions, e)
	}

	st, done := openState(cmd)
	defer done()

	t, err := st.AddTrigger(cmd.Context(), model.TriggerLog{
		Situation:          situation,
		Emotions:           emotions,
		Memories:           memories,
		PhysicalSensations: sensations,
	})
	if err != nil {
		exitErr("trigger add", err)
	}
	render(cmd, t, func(w io.Writer) {
		fmt.Fprintf(w, "logged %s\n", t.ID)
	})
}

func runTriggerList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	triggers := st.Triggers()
	render(cmd, triggers, func(w io.Writer) {
		if len(triggers) == 0 {
			fmt.Fprintln(w, "No triggers logged.")
			return
		}
		for _, t := range triggers {
			fmt.Fprintf(w, "%s  %s\n", dim(fmtDate(t.Date)), title(t.Situation))
			for _, e := range t.Emotions {
				fmt.Fprintf(w, "  %-12s %s\n", e.Emotion, strings.Repeat("*", e.Intensity))
			}
			if t.Memories != "" {
				fmt.Fprintf(w, "  %s %s\n", dim("memories:"), t.Memories)
			}
			if t.PhysicalSensations != "" {
				fmt.Fprintf(w, "  %s %s\n", dim("body:"), t.PhysicalSensations)
			}
		}
	})
}

func runDreamAdd(cmd *cobra.Command, args []string) {
	description := readContent(cmd, args)
	if description == "" {
		exitErr("dream add", errors.New("description is required (pass as argument or pipe to stdin)"))
	}
	titleFlag, _ := cmd.Flags().GetString("title")
	characters, _ := cmd.Flags().GetString("characters")
	symbols, _ := cmd.Flags().GetString("symbols")
	emotions, _ := cmd.Flags().GetString("emotions")
	ask, _ := cmd.Flags().GetBool("ask")

	d := model.DreamLog{
		Title:       titleFlag,
		Description: description,
		Characters:  orEmpty(splitList(characters)),
		Symbols:     orEmpty(splitList(symbols)),
		Emotions:    orEmpty(splitList(emotions)),
	}
	if ask {
		res := newGateway().Dialogue(cmd.Context(), gateway.DialogueRequest{
			Message: description,
			Context: "dream",
			State:   "reflecting",
		})
		if res.Usable() {
			d.AIQuestion = res.Value.Message
			if len(res.Value.SuggestedQuestions) > 0 {
				d.AIQuestion = res.Value.SuggestedQuestions[0]
			}
		}
	}

	st, done := openState(cmd)
	defer done()

	d, err := st.AddDreamLog(cmd.Context(), d)
	if err != nil {
		exitErr("dream add", err)
	}
	render(cmd, d, func(w io.Writer) {
		fmt.Fprintf(w, "recorded %s\n", d.ID)
		if d.AIQuestion != "" {
			fmt.Fprintf(w, "%s %s\n", dim("reflect:"), d.AIQuestion)
		}
	})
}

func runDreamList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	dreams := st.DreamLogs()
	render(cmd, dreams, func(w io.Writer) {
		if len(dreams) == 0 {
			fmt.Fprintln(w, "No dreams recorded.")
			return
		}
		for _, d := range dreams {
			fmt.Fprintf(w, "%s  %s\n", dim(fmtDate(d.Date)), title(d.Title))
			fmt.Fprintf(w, "  %s\n", d.Description)
			if len(d.Symbols) > 0 {
				fmt.Fprintf(w, "  %s %s\n", dim("symbols:"), strings.Join(d.Symbols, ", "))
			}
			if d.AIQuestion != "" {
				fmt.Fprintf(w, "  %s %s\n", dim("reflect:"), d.AIQuestion)
			}
		}
	})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
