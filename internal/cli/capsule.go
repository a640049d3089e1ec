package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/model"
	"github.com/rcliao/shadow-journal/internal/state"
)

const dateLayout = "2006-01-02"

var capsuleCmd = &cobra.Command{
	Use:   "capsule",
	Short: "Seal letters to your future self",
}

func init() {
	addCmd := &cobra.Command{
		Use:   "add [letter]",
		Short: "Seal a time capsule (letter from args or stdin)",
		Run:   runCapsuleAdd,
	}
	addCmd.Flags().String("open-on", "", "Date the capsule may be opened (YYYY-MM-DD)")
	addCmd.Flags().Duration("open-in", 0, "Open after this long instead of --open-on (e.g. 720h)")

	openCmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a capsule, or close it again if already open",
		Args:  cobra.ExactArgs(1),
		Run:   runCapsuleOpen,
	}
	openCmd.Flags().Bool("force", false, "Open before the open date")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List capsules in creation order",
		Args:  cobra.NoArgs,
		Run:   runCapsuleList,
	}

	capsuleCmd.AddCommand(addCmd, openCmd, listCmd)
	RootCmd.AddCommand(capsuleCmd)
}

func runCapsuleAdd(cmd *cobra.Command, args []string) {
	letter := readContent(cmd, args)
	if letter == "" {
		exitErr("capsule add", errors.New("letter is required (pass as argument or pipe to stdin)"))
	}
	openOn, _ := cmd.Flags().GetString("open-on")
	openIn, _ := cmd.Flags().GetDuration("open-in")

	var openDate time.Time
	switch {
	case openOn != "" && openIn != 0:
		exitErr("capsule add", errors.New("use either --open-on or --open-in"))
	case openOn != "":
		d, err := time.ParseInLocation(dateLayout, openOn, time.Local)
		if err != nil {
			exitErr("capsule add", fmt.Errorf("--open-on: %w", err))
		}
		openDate = d.UTC()
	case openIn > 0:
		openDate = time.Now().Add(openIn).UTC()
	default:
		exitErr("capsule add", errors.New("--open-on or --open-in is required"))
	}

	st, done := openState(cmd)
	defer done()

	c, err := st.AddTimeCapsule(cmd.Context(), model.TimeCapsule{OpenDate: openDate, Letter: letter})
	if err != nil {
		exitErr("capsule add", err)
	}
	render(cmd, c, func(w io.Writer) {
		fmt.Fprintf(w, "sealed %s until %s\n", c.ID, c.OpenDate.Local().Format(dateLayout))
	})
}

func runCapsuleOpen(cmd *cobra.Command, args []string) {
	force, _ := cmd.Flags().GetBool("force")

	st, done := openState(cmd)
	defer done()

	for _, c := range st.TimeCapsules() {
		if c.ID == args[0] && !c.Opened && !force && !state.Ready(c, time.Now()) {
			exitErr("capsule open", fmt.Errorf("capsule %s is sealed until %s (use --force)", c.ID, c.OpenDate.Local().Format(dateLayout)))
		}
	}

	c, err := st.OpenTimeCapsule(cmd.Context(), args[0])
	if err != nil {
		exitErr("capsule open", err)
	}
	render(cmd, c, func(w io.Writer) {
		if !c.Opened {
			fmt.Fprintf(w, "closed %s\n", c.ID)
			return
		}
		fmt.Fprintf(w, "%s %s\n\n%s\n", title("Letter from"), fmtDate(c.CreatedDate.Local()), c.Letter)
	})
}

func runCapsuleList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	capsules := st.TimeCapsules()
	now := time.Now()
	render(cmd, capsules, func(w io.Writer) {
		if len(capsules) == 0 {
			fmt.Fprintln(w, "No capsules.")
			return
		}
		for _, c := range capsules {
			status := "sealed"
			switch {
			case c.Opened:
				status = "opened"
			case state.Ready(c, now):
				status = "ready"
			}
			fmt.Fprintf(w, "%s  %-6s  opens %s\n", c.ID, status, c.OpenDate.Local().Format(dateLayout))
			if c.Opened {
				fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(c.Letter, "\n", "\n  "))
			}
		}
	})
}
