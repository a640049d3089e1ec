package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/model"
)

var archetypeCmd = &cobra.Command{
	Use:     "archetype",
	Aliases: []string{"archetypes"},
	Short:   "Browse and claim the six shadow archetypes",
}

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archetype cards",
		Args:  cobra.NoArgs,
		Run:   runArchetypeList,
	}
	showCmd := &cobra.Command{
		Use:   "show <archetype>",
		Short: "Show an archetype's profile and practice",
		Args:  cobra.ExactArgs(1),
		Run:   runArchetypeShow,
	}
	claimCmd := &cobra.Command{
		Use:   "claim <archetype>",
		Short: "Claim an archetype as yours, or release it if already claimed",
		Args:  cobra.ExactArgs(1),
		Run:   runArchetypeClaim,
	}
	archetypeCmd.AddCommand(listCmd, showCmd, claimCmd)
	RootCmd.AddCommand(archetypeCmd)

	insightCmd := &cobra.Command{
		Use:   "insight",
		Short: "Share and read short community insights",
	}
	insightAdd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add an insight (text from args or stdin)",
		Run:   runInsightAdd,
	}
	insightAdd.Flags().String("category", "general", "Insight category")
	insightList := &cobra.Command{
		Use:   "list",
		Short: "List insights, newest first",
		Args:  cobra.NoArgs,
		Run:   runInsightList,
	}
	insightCmd.AddCommand(insightAdd, insightList)
	RootCmd.AddCommand(insightCmd)
}

func parseArchetypeArg(arg string) model.Archetype {
	a, err := model.ParseArchetype(strings.ToLower(strings.TrimSpace(arg)))
	if err != nil {
		exitErr("archetype", err)
	}
	return a
}

func runArchetypeList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	cards := st.ArchetypeCards()
	render(cmd, cards, func(w io.Writer) {
		for _, c := range cards {
			mark := " "
			if c.Claimed {
				mark = "*"
			}
			fmt.Fprintf(w, "%s %s  %s\n", mark, archetypeName(c.ID), dim(c.Description))
		}
	})
}

func runArchetypeShow(cmd *cobra.Command, args []string) {
	a := parseArchetypeArg(args[0])
	info := a.Info()
	render(cmd, info, func(w io.Writer) {
		fmt.Fprintf(w, "%s\n%s\n\n", archetypeName(a), dim(info.Description))
		fmt.Fprintf(w, "%s\n", info.Profile)
		fmt.Fprintf(w, "\n%s %s\n", title("Practice:"), info.Practice)
		fmt.Fprintf(w, "%s %s\n", title("Fears:"), strings.Join(info.Fears, ", "))
		fmt.Fprintf(w, "%s %s\n", title("Integrated:"), info.IntegratedPotential)
	})
}

func runArchetypeClaim(cmd *cobra.Command, args []string) {
	a := parseArchetypeArg(args[0])

	st, done := openState(cmd)
	defer done()

	card, err := st.ClaimArchetype(cmd.Context(), a)
	if err != nil {
		exitErr("archetype claim", err)
	}
	render(cmd, card, func(w io.Writer) {
		verb := "released"
		if card.Claimed {
			verb = "claimed"
		}
		fmt.Fprintf(w, "%s %s\n", verb, archetypeName(a))
	})
}

func runInsightAdd(cmd *cobra.Command, args []string) {
	text := readContent(cmd, args)
	if text == "" {
		exitErr("insight add", errors.New("text is required (pass as argument or pipe to stdin)"))
	}
	category, _ := cmd.Flags().GetString("category")

	st, done := openState(cmd)
	defer done()

	in, err := st.AddCommunityInsight(cmd.Context(), model.CommunityInsight{Text: text, Category: category})
	if err != nil {
		exitErr("insight add", err)
	}
	render(cmd, in, func(w io.Writer) {
		fmt.Fprintf(w, "shared %s\n", in.ID)
	})
}

func runInsightList(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	insights := st.CommunityInsights()
	render(cmd, insights, func(w io.Writer) {
		if len(insights) == 0 {
			fmt.Fprintln(w, "No insights yet.")
			return
		}
		for _, in := range insights {
			fmt.Fprintf(w, "%s  %s  %s\n", dim(fmtDate(in.Date)), dim(in.Category), in.Text)
		}
	})
}
