package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-journal/internal/assessment"
	"github.com/rcliao/shadow-journal/internal/model"
	"github.com/rcliao/shadow-journal/internal/state"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Take the archetype trigger assessment",
	Long: `Rate 30 situations 0 (not triggering), 1 (somewhat) or 2 (very triggering).
Answers are read one per line from stdin; "b" steps back, "q" quits.
Use --ratings to answer non-interactively.`,
	Run: runAssess,
}

type assessOutput struct {
	Date   time.Time            `json:"date"`
	Scores assessment.Scores    `json:"scores"`
	Top    []assessment.Insight `json:"top"`
}

func init() {
	assessCmd.Flags().String("ratings", "", "Comma-separated ratings, one per question in order")
	assessCmd.Flags().Bool("no-save", false, "Do not store the result")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the last saved assessment result",
		Args:  cobra.NoArgs,
		Run:   runAssessShow,
	}
	questionsCmd := &cobra.Command{
		Use:   "questions",
		Short: "List the assessment questions",
		Args:  cobra.NoArgs,
		Run:   runAssessQuestions,
	}
	assessCmd.AddCommand(showCmd, questionsCmd)
	RootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) {
	ratingsFlag, _ := cmd.Flags().GetString("ratings")
	noSave, _ := cmd.Flags().GetBool("no-save")

	var (
		scores assessment.Scores
		rec    model.InsightRecord
		err    error
	)
	if ratingsFlag != "" {
		ratings, perr := parseRatings(ratingsFlag)
		if perr != nil {
			exitErr("assess", perr)
		}
		scores, rec, err = assessment.Run(assessment.Questions, ratings, time.Now)
	} else {
		scores, rec, err = interactiveAssess(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
	if err != nil {
		exitErr("assess", err)
	}

	if !noSave {
		st, done := openState(cmd)
		defer done()
		if err := st.SaveAssessment(cmd.Context(), rec); err != nil {
			exitErr("save assessment", err)
		}
		if _, err := st.CompleteQuiz(cmd.Context(), state.QuizTriggerIdentifier); err != nil {
			exitErr("save assessment", err)
		}
	}
	printAssessment(cmd, scores, rec.Date)
}

func parseRatings(s string) ([]int, error) {
	parts := splitList(s)
	ratings := make([]int, 0, len(parts))
	for i, p := range parts {
		r, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("rating %d: %w", i+1, err)
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}

var errQuit = errors.New("assessment abandoned")

// interactiveAssess drives a Session from line input, prompting on prompt.
func interactiveAssess(in io.Reader, prompt io.Writer) (assessment.Scores, model.InsightRecord, error) {
	sess := assessment.NewSession(assessment.Questions, time.Now)
	sc := bufio.NewScanner(in)

	for sess.Phase() == assessment.AwaitingQuestion {
		q, _ := sess.Current()
		fmt.Fprintf(prompt, "\n%s %s\n", dim(fmt.Sprintf("[%d/%d]", sess.Index()+1, sess.Len())), title(q.Text))
		for r, label := range assessment.RatingLabels {
			fmt.Fprintf(prompt, "  %d) %s\n", r, label)
		}
		if prev, ok := sess.Rating(); ok {
			fmt.Fprintf(prompt, "  %s\n", dim(fmt.Sprintf("current answer: %d", prev)))
		}
		fmt.Fprint(prompt, "> ")

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return assessment.Scores{}, model.InsightRecord{}, err
			}
			return assessment.Scores{}, model.InsightRecord{}, io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "q", "quit":
			return assessment.Scores{}, model.InsightRecord{}, errQuit
		case "b", "back":
			if err := sess.Previous(); err != nil {
				fmt.Fprintln(prompt, err)
			}
			continue
		}
		r, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(prompt, "enter 0-%d, b or q\n", assessment.MaxRating)
			continue
		}
		if err := sess.Answer(r); err != nil {
			fmt.Fprintln(prompt, err)
		}
	}

	scores, rec, _ := sess.Result()
	return scores, rec, nil
}

func runAssessShow(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	rec, ok := st.LatestAssessment()
	if !ok {
		exitErr("assess show", fmt.Errorf("%w: no assessment saved yet", state.ErrNotFound))
	}
	printAssessment(cmd, assessment.ScoresFromList(rec.Scores), rec.Date)
}

func runAssessQuestions(cmd *cobra.Command, args []string) {
	render(cmd, assessment.Questions, func(w io.Writer) {
		for _, q := range assessment.Questions {
			fmt.Fprintf(w, "%3s  %-9s %s\n", q.ID, q.Category, q.Text)
		}
	})
}

func printAssessment(cmd *cobra.Command, scores assessment.Scores, date time.Time) {
	out := assessOutput{
		Date:   date,
		Scores: scores,
		Top:    assessment.Describe(assessment.RankTop(scores, assessment.DefaultTop)),
	}
	render(cmd, out, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s\n\n", title("Assessment"), dim(fmtDate(date)))
		for _, a := range model.Archetypes {
			fmt.Fprintf(w, "  %-10s %s %3d\n", a.Info().Name, bar(a, scores[a]), scores[a])
		}
		if len(out.Top) == 0 {
			fmt.Fprintln(w, "\nNo archetype was triggered.")
			return
		}
		for i, in := range out.Top {
			fmt.Fprintf(w, "\n%d. %s (%d)\n", i+1, archetypeName(in.Archetype), in.Score)
			fmt.Fprintf(w, "   %s\n", in.Profile)
			fmt.Fprintf(w, "   %s %s\n", dim("Practice:"), in.Practice)
		}
	})
}
