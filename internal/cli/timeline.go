package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/model"
)

var milestonesCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Transformation timeline: breakthroughs, challenges, integrations",
}

func init() {
	addCmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Add a milestone (description from args or stdin)",
		Run:   runTimelineAdd,
	}
	addCmd.Flags().StringP("title", "t", "", "Milestone title")
	addCmd.Flags().String("type", model.EventReflection, "breakthrough, challenge, integration or reflection")
	addCmd.Flags().Int("impact", model.DefaultImpact, "Impact 1-10")
	addCmd.Flags().String("emotions", "", "Comma-separated emotions")
	addCmd.Flags().String("learnings", "", "Comma-separated learnings")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List milestones, newest first",
		Args:  cobra.NoArgs,
		Run:   runTimelineList,
	}
	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a milestone",
		Args:  cobra.ExactArgs(1),
		Run:   runTimelineRm,
	}
	milestonesCmd.AddCommand(addCmd, listCmd, rmCmd)
	RootCmd.AddCommand(milestonesCmd)
}

func runTimelineAdd(cmd *cobra.Command, args []string) {
	ev := model.TimelineEvent{Description: readContent(cmd, args)}
	ev.Title, _ = cmd.Flags().GetString("title")
	ev.Type, _ = cmd.Flags().GetString("type")
	ev.Impact, _ = cmd.Flags().GetInt("impact")
	emotions, _ := cmd.Flags().GetString("emotions")
	learnings, _ := cmd.Flags().GetString("learnings")
	ev.Emotions = splitList(emotions)
	ev.Learnings = splitList(learnings)

	st, done := openState(cmd)
	defer done()

	ev, err := st.AddTimelineEvent(cmd.Context(), ev)
	if err != nil {
		exitErr("timeline add", err)
	}
	render(cmd, ev, func(w io.Writer) {
		fmt.Fprintf(w, "added %s\n", ev.ID)
	})
}

func runTimelineList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	events := st.TimelineEvents()
	render(cmd, events, func(w io.Writer) {
		if len(events) == 0 {
			fmt.Fprintln(w, "Timeline is empty.")
			return
		}
		for _, e := range events {
			fmt.Fprintf(w, "%s  %s  %s %s\n", dim(e.ID), fmtDate(e.Date.Local()), title(e.Title), dim(fmt.Sprintf("(%s, impact %d)", e.Type, e.Impact)))
			fmt.Fprintf(w, "  %s\n", e.Description)
			for _, l := range e.Learnings {
				fmt.Fprintf(w, "  - %s\n", l)
			}
		}
	})
}

func runTimelineRm(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	if err := st.RemoveTimelineEvent(cmd.Context(), args[0]); err != nil {
		exitErr("timeline rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
}
