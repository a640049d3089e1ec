package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/model"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Archetype practices: control matrix, reframes, judgments, rebel scenarios",
}

func init() {
	controlCmd := &cobra.Command{Use: "control", Short: "Tyrant control matrix"}
	controlAdd := &cobra.Command{
		Use:   "add",
		Short: "Map a control behaviour to the fear beneath it",
		Args:  cobra.NoArgs,
		Run:   runControlAdd,
	}
	controlAdd.Flags().String("behavior", "", "Control behaviour")
	controlAdd.Flags().String("fear", "", "Fear it protects")
	controlList := &cobra.Command{Use: "list", Short: "List the control matrix", Args: cobra.NoArgs, Run: runControlList}
	controlRm := &cobra.Command{Use: "rm <id>", Short: "Remove a control entry", Args: cobra.ExactArgs(1), Run: runControlRm}
	controlCmd.AddCommand(controlAdd, controlList, controlRm)

	reframeCmd := &cobra.Command{Use: "reframe", Short: "Victim to victor reframes"}
	reframeAdd := &cobra.Command{
		Use:   "add",
		Short: "Reframe a victim thought",
		Args:  cobra.NoArgs,
		Run:   runReframeAdd,
	}
	reframeAdd.Flags().String("thought", "", "The victim thought")
	reframeAdd.Flags().String("reframe", "", "The empowered reframe")
	reframeList := &cobra.Command{Use: "list", Short: "List reframes", Args: cobra.NoArgs, Run: runReframeList}
	reframeCmd.AddCommand(reframeAdd, reframeList)

	judgmentCmd := &cobra.Command{Use: "judgment", Short: "Judge's judgment log"}
	judgmentAdd := &cobra.Command{
		Use:   "add [judgment]",
		Short: "Log a judgment (text from args or stdin)",
		Run:   runJudgmentAdd,
	}
	judgmentAdd.Flags().String("target", "", "Who or what was judged")
	judgmentAdd.Flags().String("mirror", "", "Where the same trait lives in you")
	judgmentAdd.Flags().String("fear", "", "What you fear about it")
	judgmentAdd.Flags().String("value", "", "The value hidden beneath it")
	judgmentAdd.Flags().Bool("decode", false, "Ask the AI gateway to decode the judgment")
	judgmentList := &cobra.Command{Use: "list", Short: "List judgments, newest first", Args: cobra.NoArgs, Run: runJudgmentList}
	judgmentCmd.AddCommand(judgmentAdd, judgmentList)

	rebelCmd := &cobra.Command{Use: "rebel", Short: "Reactive vs. authentic no"}
	rebelScenarios := &cobra.Command{Use: "scenarios", Short: "List scenarios", Args: cobra.NoArgs, Run: runRebelScenarios}
	rebelAnswer := &cobra.Command{
		Use:   "answer <scenario-id> <reactive|authentic>",
		Short: "Record your choice for a scenario",
		Args:  cobra.ExactArgs(2),
		Run:   runRebelAnswer,
	}
	rebelResults := &cobra.Command{Use: "results", Short: "Show recorded choices", Args: cobra.NoArgs, Run: runRebelResults}
	rebelReset := &cobra.Command{Use: "reset", Short: "Clear every recorded choice", Args: cobra.NoArgs, Run: runRebelReset}
	rebelCmd.AddCommand(rebelScenarios, rebelAnswer, rebelResults, rebelReset)

	practiceCmd.AddCommand(controlCmd, reframeCmd, judgmentCmd, rebelCmd)
	RootCmd.AddCommand(practiceCmd)
}

func runControlAdd(cmd *cobra.Command, args []string) {
	behavior, _ := cmd.Flags().GetString("behavior")
	fear, _ := cmd.Flags().GetString("fear")

	st, done := openState(cmd)
	defer done()

	e, err := st.AddControlEntry(cmd.Context(), model.ControlEntry{Behavior: behavior, Fear: fear})
	if err != nil {
		exitErr("control add", err)
	}
	render(cmd, e, func(w io.Writer) {
		fmt.Fprintf(w, "added %s\n", e.ID)
	})
}

func runControlList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	entries := st.ControlEntries()
	render(cmd, entries, func(w io.Writer) {
		if len(entries) == 0 {
			fmt.Fprintln(w, "Control matrix is empty.")
			return
		}
		for _, e := range entries {
			fmt.Fprintf(w, "%s  %s\n  %s %s\n", dim(e.ID), e.Behavior, dim("fear:"), e.Fear)
		}
	})
}

func runControlRm(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	if err := st.RemoveControlEntry(cmd.Context(), args[0]); err != nil {
		exitErr("control rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
}

func runReframeAdd(cmd *cobra.Command, args []string) {
	thought, _ := cmd.Flags().GetString("thought")
	reframe, _ := cmd.Flags().GetString("reframe")

	st, done := openState(cmd)
	defer done()

	r, err := st.AddReframe(cmd.Context(), model.Reframe{Thought: thought, Reframe: reframe})
	if err != nil {
		exitErr("reframe add", err)
	}
	render(cmd, r, func(w io.Writer) {
		fmt.Fprintf(w, "added %s\n", r.ID)
	})
}

func runReframeList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	reframes := st.Reframes()
	render(cmd, reframes, func(w io.Writer) {
		if len(reframes) == 0 {
			fmt.Fprintln(w, "No reframes yet.")
			return
		}
		for _, r := range reframes {
			fmt.Fprintf(w, "%s  %s\n  -> %s\n", dim(fmtDate(r.Timestamp.Local())), r.Thought, r.Reframe)
		}
	})
}

func runJudgmentAdd(cmd *cobra.Command, args []string) {
	judgment := readContent(cmd, args)
	if judgment == "" {
		exitErr("judgment add", errors.New("judgment is required (pass as argument or pipe to stdin)"))
	}
	target, _ := cmd.Flags().GetString("target")
	mirror, _ := cmd.Flags().GetString("mirror")
	fear, _ := cmd.Flags().GetString("fear")
	value, _ := cmd.Flags().GetString("value")
	decode, _ := cmd.Flags().GetBool("decode")

	st, done := openState(cmd)
	defer done()

	j, err := st.AddJudgmentLog(cmd.Context(), model.JudgmentLog{
		Judgment: judgment,
		Target:   target,
		Mirror:   mirror,
		Fear:     fear,
		Value:    value,
	})
	if err != nil {
		exitErr("judgment add", err)
	}
	if decode {
		res := newGateway().Judgment(cmd.Context(), judgment, target)
		if !res.Usable() {
			exitErr("judgment decode", res.Err)
		}
		if j, err = st.SetJudgmentDecode(cmd.Context(), j.ID, res.Value.Decode()); err != nil {
			exitErr("judgment decode", err)
		}
	}
	printJudgments(cmd, j)
}

func runJudgmentList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()
	printJudgments(cmd, st.JudgmentLogs()...)
}

func printJudgments(cmd *cobra.Command, logs ...model.JudgmentLog) {
	var v any = logs
	if len(logs) == 1 {
		v = logs[0]
	}
	render(cmd, v, func(w io.Writer) {
		if len(logs) == 0 {
			fmt.Fprintln(w, "No judgments logged.")
			return
		}
		for _, j := range logs {
			fmt.Fprintf(w, "%s  %s\n", dim(fmtDate(j.Timestamp.Local())), title(j.Judgment))
			if j.Target != "" {
				fmt.Fprintf(w, "  %s %s\n", dim("about:"), j.Target)
			}
			if j.Value != "" {
				fmt.Fprintf(w, "  %s %s\n", dim("value:"), j.Value)
			}
			if d := j.AIDecoded; d != nil {
				fmt.Fprintf(w, "  %s %s\n", dim("projection:"), d.Projection)
				fmt.Fprintf(w, "  %s %s\n", dim("gold:"), d.GoldValue)
				fmt.Fprintf(w, "  %s %s\n", dim("integrate:"), d.IntegrationTip)
			}
		}
	})
}

func runRebelScenarios(cmd *cobra.Command, args []string) {
	render(cmd, model.RebelScenarios, func(w io.Writer) {
		for _, sc := range model.RebelScenarios {
			fmt.Fprintf(w, "%s. %s\n", sc.ID, title(sc.Text))
			fmt.Fprintf(w, "   %s %s\n", dim("reactive: "), sc.ReactiveNo)
			fmt.Fprintf(w, "   %s %s\n", dim("authentic:"), sc.AuthenticNo)
		}
	})
}

func runRebelAnswer(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	if err := st.RecordRebelChoice(cmd.Context(), args[0], model.RebelChoice(args[1])); err != nil {
		exitErr("rebel answer", err)
	}
	printRebelResults(cmd, st.RebelResults())
}

type rebelSummary struct {
	Choices   map[string]model.RebelChoice `json:"choices"`
	Answered  int                          `json:"answered"`
	Authentic int                          `json:"authentic"`
	Reactive  int                          `json:"reactive"`
	Total     int                          `json:"total"`
}

func runRebelResults(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()
	printRebelResults(cmd, st.RebelResults())
}

func printRebelResults(cmd *cobra.Command, choices map[string]model.RebelChoice) {
	sum := rebelSummary{Choices: choices, Answered: len(choices), Total: len(model.RebelScenarios)}
	for _, c := range choices {
		switch c {
		case model.RebelAuthentic:
			sum.Authentic++
		case model.RebelReactive:
			sum.Reactive++
		}
	}
	render(cmd, sum, func(w io.Writer) {
		for _, sc := range model.RebelScenarios {
			choice, ok := choices[sc.ID]
			if !ok {
				choice = "-"
			}
			fmt.Fprintf(w, "%s. %-9s %s\n", sc.ID, choice, dim(sc.Text))
		}
		fmt.Fprintf(w, "\n%d/%d answered: %d authentic, %d reactive\n", sum.Answered, sum.Total, sum.Authentic, sum.Reactive)
	})
}

func runRebelReset(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	if err := st.ResetRebel(cmd.Context()); err != nil {
		exitErr("rebel reset", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Rebel results cleared")
}
