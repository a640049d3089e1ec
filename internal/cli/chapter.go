package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/model"
)

var chapterCmd = &cobra.Command{
	Use:     "chapter",
	Aliases: []string{"chapters"},
	Short:   "Browse the guided chapters and their exercises",
}

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List chapters with your progress",
		Args:  cobra.NoArgs,
		Run:   runChapterList,
	}
	showCmd := &cobra.Command{
		Use:   "show <n>",
		Short: "Show a chapter's sections and exercises",
		Args:  cobra.ExactArgs(1),
		Run:   runChapterShow,
	}
	chapterCmd.AddCommand(listCmd, showCmd)
	RootCmd.AddCommand(chapterCmd)
}

type chapterStatus struct {
	model.Chapter
	Completed           bool `json:"completed"`
	ActivitiesCompleted int  `json:"activitiesCompleted"`
	ActivitiesTotal     int  `json:"activitiesTotal"`
}

func newChapterStatus(c model.Chapter, p model.Progress) chapterStatus {
	cs := chapterStatus{Chapter: c, Completed: slices.Contains(p.ChaptersCompleted, c.ID)}
	for _, s := range c.Sections {
		for _, a := range s.Activities {
			cs.ActivitiesTotal++
			if slices.Contains(p.ActivitiesCompleted, a.ID) {
				cs.ActivitiesCompleted++
			}
		}
	}
	return cs
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func runChapterList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	progress := st.Profile().Progress
	done()

	out := make([]chapterStatus, len(model.Chapters))
	for i, c := range model.Chapters {
		out[i] = newChapterStatus(c, progress)
	}
	render(cmd, out, func(w io.Writer) {
		for _, c := range out {
			fmt.Fprintf(w, "%s %d. %s %s\n", checkbox(c.Completed), c.ID, title(c.Subtitle),
				dim(fmt.Sprintf("(%d/%d exercises)", c.ActivitiesCompleted, c.ActivitiesTotal)))
			fmt.Fprintf(w, "    %s\n", c.Description)
		}
	})
}

func runChapterShow(cmd *cobra.Command, args []string) {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		exitErr("chapter show", err)
	}
	c, ok := model.ChapterByID(n)
	if !ok {
		exitErr("chapter show", fmt.Errorf("no chapter %d", n))
	}

	st, done := openState(cmd)
	progress := st.Profile().Progress
	done()

	cs := newChapterStatus(c, progress)
	render(cmd, cs, func(w io.Writer) {
		fmt.Fprintf(w, "%s: %s %s\n", c.Title, title(c.Subtitle), checkbox(cs.Completed))
		fmt.Fprintf(w, "%s\n", c.Description)
		for _, s := range c.Sections {
			fmt.Fprintf(w, "\n%s\n", title(s.Title))
			for _, a := range s.Activities {
				fmt.Fprintf(w, "  %s %s %s\n", checkbox(slices.Contains(progress.ActivitiesCompleted, a.ID)), a.Title, dim(a.ID))
				fmt.Fprintf(w, "      %s\n", a.Description)
			}
		}
		if c.Quiz != "" {
			fmt.Fprintf(w, "\n%s %s\n", dim("Quiz:"), c.Quiz)
		}
	})
}
