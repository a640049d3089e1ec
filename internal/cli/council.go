package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/assessment"
	"github.com/rcliao/shadow-journal/internal/model"
)

var councilCmd = &cobra.Command{
	Use:   "council",
	Short: "Inner council: how loud each archetype is right now",
	Args:  cobra.NoArgs,
	Run:   runCouncilShow,
}

func init() {
	setCmd := &cobra.Command{
		Use:   "set <archetype> <0-100>",
		Short: "Set an archetype's volume",
		Args:  cobra.ExactArgs(2),
		Run:   runCouncilSet,
	}
	checkinCmd := &cobra.Command{
		Use:   "checkin",
		Short: "Save a snapshot of the current volumes",
		Args:  cobra.NoArgs,
		Run:   runCouncilCheckIn,
	}
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current volumes and the loudest archetypes",
		Args:  cobra.NoArgs,
		Run:   runCouncilShow,
	}
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List saved check-ins, newest first",
		Args:  cobra.NoArgs,
		Run:   runCouncilHistory,
	}
	councilCmd.AddCommand(showCmd, setCmd, checkinCmd, historyCmd)
	RootCmd.AddCommand(councilCmd)
}

type councilView struct {
	Volumes map[model.Archetype]int `json:"volumes"`
	Loudest []assessment.Ranked     `json:"loudest"`
}

func newCouncilView(volumes map[model.Archetype]int) councilView {
	var scores assessment.Scores
	for a, v := range volumes {
		if a.Valid() {
			scores[a] = v
		}
	}
	return councilView{Volumes: volumes, Loudest: assessment.RankTop(scores, assessment.DefaultTop)}
}

func runCouncilShow(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()
	printCouncil(cmd, newCouncilView(st.Volumes()))
}

func printCouncil(cmd *cobra.Command, view councilView) {
	render(cmd, view, func(w io.Writer) {
		for _, a := range model.Archetypes {
			v := view.Volumes[a]
			fmt.Fprintf(w, "  %-10s %s %3d\n", a.Info().Name, bar(a, v), v)
		}
		if len(view.Loudest) > 0 {
			fmt.Fprintf(w, "\n%s", title("Loudest:"))
			for _, r := range view.Loudest {
				fmt.Fprintf(w, " %s", archetypeName(r.Archetype))
			}
			fmt.Fprintln(w)
		}
	})
}

func runCouncilSet(cmd *cobra.Command, args []string) {
	a := parseArchetypeArg(args[0])
	v, err := strconv.Atoi(args[1])
	if err != nil {
		exitErr("council set", err)
	}

	st, done := openState(cmd)
	defer done()

	if err := st.SetVolume(cmd.Context(), a, v); err != nil {
		exitErr("council set", err)
	}
	printCouncil(cmd, newCouncilView(st.Volumes()))
}

func runCouncilCheckIn(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	c, err := st.SaveCheckIn(cmd.Context())
	if err != nil {
		exitErr("council checkin", err)
	}
	render(cmd, c, func(w io.Writer) {
		fmt.Fprintf(w, "checked in at %s\n", fmtDate(c.Timestamp.Local()))
	})
}

func runCouncilHistory(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	checkIns := st.CheckIns()
	render(cmd, checkIns, func(w io.Writer) {
		if len(checkIns) == 0 {
			fmt.Fprintln(w, "No check-ins yet.")
			return
		}
		for _, c := range checkIns {
			fmt.Fprintf(w, "%s\n", dim(c.Timestamp.Local().Format(time.DateTime)))
			for _, a := range model.Archetypes {
				fmt.Fprintf(w, "  %-10s %s %3d\n", a.Info().Name, bar(a, c.Volumes[a]), c.Volumes[a])
			}
		}
	})
}
