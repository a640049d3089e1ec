package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/model"
)

func init() {
	martyrCmd := &cobra.Command{Use: "martyr", Short: "Martyr Yes/No Need Sorter"}
	martyrList := &cobra.Command{Use: "list", Short: "Show the cards by bucket", Args: cobra.NoArgs, Run: runMartyrList}
	martyrSort := &cobra.Command{
		Use:   "sort <card-id> <joyful|boundaried|martyr|unsorted>",
		Short: "Move a card into a bucket",
		Args:  cobra.ExactArgs(2),
		Run:   runMartyrSort,
	}
	martyrReset := &cobra.Command{Use: "reset", Short: "Move every card back to unsorted", Args: cobra.NoArgs, Run: runMartyrReset}
	martyrCmd.AddCommand(martyrList, martyrSort, martyrReset)

	letterCmd := &cobra.Command{Use: "saboteur-letter", Short: "Letters from your Saboteur"}
	letterAdd := &cobra.Command{
		Use:   "add",
		Short: "Write a letter in your Saboteur's voice",
		Args:  cobra.NoArgs,
		Run:   runLetterAdd,
	}
	letterAdd.Flags().String("goal", "", "What you want to do")
	letterAdd.Flags().String("behavior", "", "What the Saboteur makes you do")
	letterAdd.Flags().String("fear", "", "What the Saboteur is terrified of")
	letterAdd.Flags().String("reassurance", "", "What the Saboteur needs to hear")
	letterList := &cobra.Command{Use: "list", Short: "List letters, newest first", Args: cobra.NoArgs, Run: runLetterList}
	interviewList := &cobra.Command{Use: "interviews", Short: "List saved Saboteur interviews", Args: cobra.NoArgs, Run: runInterviewList}
	letterCmd.AddCommand(letterAdd, letterList, interviewList)

	practiceCmd.AddCommand(martyrCmd, letterCmd)
}

type needSort struct {
	Cards  []model.NeedCard `json:"cards"`
	Martyr int              `json:"martyrYes"`
}

func newNeedSort(cards []model.NeedCard) needSort {
	out := needSort{Cards: cards}
	for _, c := range cards {
		if c.Bucket == model.BucketMartyr {
			out.Martyr++
		}
	}
	return out
}

func printNeeds(cmd *cobra.Command, view needSort) {
	render(cmd, view, func(w io.Writer) {
		for _, b := range []model.NeedBucket{model.BucketUnsorted, model.BucketJoyful, model.BucketBoundaried, model.BucketMartyr} {
			fmt.Fprintf(w, "%s\n", title(b.Label()))
			for _, c := range view.Cards {
				if c.Bucket == b {
					fmt.Fprintf(w, "  %s  %s\n", dim(c.ID), c.Scenario)
				}
			}
		}
		if view.Martyr > 0 {
			fmt.Fprintf(w, "\nYou have %d \"Martyr Yes\" scenarios. What is ONE you can turn into a \"Boundaried No\" this week?\n", view.Martyr)
		}
	})
}

func runMartyrList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()
	printNeeds(cmd, newNeedSort(st.NeedCards()))
}

func runMartyrSort(cmd *cobra.Command, args []string) {
	bucket, err := model.ParseNeedBucket(strings.ToLower(args[1]))
	if err != nil {
		exitErr("martyr sort", err)
	}

	st, done := openState(cmd)
	defer done()

	if _, err := st.SortNeed(cmd.Context(), args[0], bucket); err != nil {
		exitErr("martyr sort", err)
	}
	printNeeds(cmd, newNeedSort(st.NeedCards()))
}

func runMartyrReset(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	if err := st.ResetNeeds(cmd.Context()); err != nil {
		exitErr("martyr reset", err)
	}
	printNeeds(cmd, newNeedSort(st.NeedCards()))
}

func runLetterAdd(cmd *cobra.Command, args []string) {
	var l model.SaboteurLetter
	l.Goal, _ = cmd.Flags().GetString("goal")
	l.Behavior, _ = cmd.Flags().GetString("behavior")
	l.Fear, _ = cmd.Flags().GetString("fear")
	l.Reassurance, _ = cmd.Flags().GetString("reassurance")

	st, done := openState(cmd)
	defer done()

	l, err := st.AddSaboteurLetter(cmd.Context(), l)
	if err != nil {
		exitErr("saboteur-letter add", err)
	}
	render(cmd, l, func(w io.Writer) {
		fmt.Fprintf(w, "%s\n", l.Letter)
	})
}

func runLetterList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	letters := st.SaboteurLetters()
	render(cmd, letters, func(w io.Writer) {
		if len(letters) == 0 {
			fmt.Fprintln(w, "No letters yet.")
			return
		}
		for _, l := range letters {
			fmt.Fprintf(w, "%s  %s\n%s\n\n", dim(l.ID), fmtDate(l.Timestamp.Local()), l.Letter)
		}
	})
}

func runInterviewList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	interviews := st.SaboteurInterviews()
	render(cmd, interviews, func(w io.Writer) {
		if len(interviews) == 0 {
			fmt.Fprintln(w, "No interviews yet.")
			return
		}
		for _, iv := range interviews {
			fmt.Fprintf(w, "%s  %s\n", dim(iv.ID), fmtDate(iv.Date.Local()))
			for _, turn := range iv.Conversation {
				fmt.Fprintf(w, "  %s: %s\n", turn.Role, turn.Content)
			}
			if iv.UnderlyingFear != "" {
				fmt.Fprintf(w, "  %s %s\n", dim("Underlying fear:"), iv.UnderlyingFear)
			}
		}
	})
}
