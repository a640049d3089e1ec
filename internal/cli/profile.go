package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/model"
	"github.com/rcliao/shadow-journal/internal/state"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and update your profile and progress",
	Args:  cobra.NoArgs,
	Run:   runProfileShow,
}

func init() {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		Run:   runProfileShow,
	}
	nameCmd := &cobra.Command{
		Use:   "name <name>",
		Short: "Set your display name",
		Args:  cobra.MinimumNArgs(1),
		Run:   runProfileName,
	}
	activityCmd := &cobra.Command{
		Use:   "complete-activity <id>",
		Short: "Mark an activity complete (awards a crystal once)",
		Args:  cobra.ExactArgs(1),
		Run:   runCompleteActivity,
	}
	chapterCmd := &cobra.Command{
		Use:   "complete-chapter <n>",
		Short: "Mark a chapter complete (awards a crystal once)",
		Args:  cobra.ExactArgs(1),
		Run:   runCompleteChapter,
	}
	progressCmd := &cobra.Command{
		Use:   "progress <percent>",
		Short: "Set path progress (0-100)",
		Args:  cobra.ExactArgs(1),
		Run:   runProfileProgress,
	}
	awardCmd := &cobra.Command{
		Use:   "award [n]",
		Short: "Award insight crystals (default 1)",
		Args:  cobra.MaximumNArgs(1),
		Run:   runProfileAward,
	}
	profileCmd.AddCommand(showCmd, nameCmd, activityCmd, chapterCmd, progressCmd, awardCmd)
	RootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()
	printProfile(cmd, st.Profile())
}

func printProfile(cmd *cobra.Command, u model.UserProfile) {
	render(cmd, u, func(w io.Writer) {
		fmt.Fprintf(w, "%s\n", title(u.Name))
		fmt.Fprintf(w, "  crystals   %d\n", u.InsightCrystals)
		fmt.Fprintf(w, "  path       %.0f%%\n", u.Progress.PathProgress)
		fmt.Fprintf(w, "  chapters   %s\n", joinInts(u.Progress.ChaptersCompleted))
		fmt.Fprintf(w, "  activities %s\n", strings.Join(u.Progress.ActivitiesCompleted, ", "))
		fmt.Fprintf(w, "  quizzes    %s\n", strings.Join(u.Progress.QuizzesCompleted, ", "))
		fmt.Fprintf(w, "  %s\n", dim("last visit "+fmtDate(u.Progress.LastVisit.Local())))
	})
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func runProfileName(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	if err := st.SetUserName(cmd.Context(), strings.Join(args, " ")); err != nil {
		exitErr("profile name", err)
	}
	printProfile(cmd, st.Profile())
}

func runCompleteActivity(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	added, err := st.CompleteActivity(cmd.Context(), args[0])
	if err != nil {
		exitErr("complete activity", err)
	}
	printCompletion(cmd, st, "activity "+args[0], added)
}

func runCompleteChapter(cmd *cobra.Command, args []string) {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		exitErr("complete chapter", err)
	}

	st, done := openState(cmd)
	defer done()

	added, err := st.CompleteChapter(cmd.Context(), n)
	if err != nil {
		exitErr("complete chapter", err)
	}
	printCompletion(cmd, st, "chapter "+args[0], added)
}

type completion struct {
	Completed bool              `json:"completed"`
	Profile   model.UserProfile `json:"profile"`
}

func printCompletion(cmd *cobra.Command, st *state.State, what string, added bool) {
	u := st.Profile()
	render(cmd, completion{Completed: added, Profile: u}, func(w io.Writer) {
		if !added {
			fmt.Fprintf(w, "%s was already complete\n", what)
			return
		}
		fmt.Fprintf(w, "completed %s, %d crystals\n", what, u.InsightCrystals)
	})
}

func runProfileProgress(cmd *cobra.Command, args []string) {
	p, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
	if err != nil {
		exitErr("profile progress", err)
	}

	st, done := openState(cmd)
	defer done()

	if err := st.UpdatePathProgress(cmd.Context(), p); err != nil {
		exitErr("profile progress", err)
	}
	printProfile(cmd, st.Profile())
}

func runProfileAward(cmd *cobra.Command, args []string) {
	n := 1
	if len(args) == 1 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil {
			exitErr("profile award", err)
		}
	}

	st, done := openState(cmd)
	defer done()

	if err := st.AwardCrystal(cmd.Context(), n); err != nil {
		exitErr("profile award", err)
	}
	printProfile(cmd, st.Profile())
}
