package mcptools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rcliao/shadow-journal/internal/assessment"
	"github.com/rcliao/shadow-journal/internal/state"
)

// QuestionsTool handles assessment_questions.
type QuestionsTool struct{}

// NewQuestionsTool creates a QuestionsTool.
func NewQuestionsTool() *QuestionsTool {
	return &QuestionsTool{}
}

// Definition returns the MCP tool definition for assessment_questions.
func (t *QuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("assessment_questions",
		mcp.WithDescription(
			"List the 30 archetype trigger questions in order. Each is rated 0 (not triggering), "+
				"1 (somewhat) or 2 (very triggering); pass the ratings to assessment_score.",
		),
	)
}

// Handle returns the question list.
func (t *QuestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(assessment.Questions)
}

// ScoreTool handles assessment_score.
type ScoreTool struct {
	state *state.State
	now   func() time.Time
}

// NewScoreTool creates a ScoreTool saving results into st.
func NewScoreTool(st *state.State) *ScoreTool {
	return &ScoreTool{state: st, now: time.Now}
}

// Definition returns the MCP tool definition for assessment_score.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("assessment_score",
		mcp.WithDescription("Score a complete assessment and return per-archetype scores (0-100) with the top archetypes."),
		mcp.WithString("ratings",
			mcp.Required(),
			mcp.Description("Comma-separated ratings (0, 1 or 2), one per question in assessment_questions order"),
		),
		mcp.WithBoolean("save",
			mcp.Description("Store the result as the latest assessment (default: true)"),
		),
	)
}

type scoreResult struct {
	Scores assessment.Scores    `json:"scores"`
	Top    []assessment.Insight `json:"top"`
	Saved  bool                 `json:"saved"`
}

// Handle scores the ratings and optionally saves the record.
func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("ratings", "")
	if raw == "" {
		return mcp.NewToolResultError("'ratings' is required"), nil
	}
	ratings, err := parseRatings(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	scores, rec, err := assessment.Run(assessment.Questions, ratings, t.now)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	save := boolArg(req, "save", true)
	if save {
		if err := t.state.SaveAssessment(ctx, rec); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to save assessment: %v", err)), nil
		}
		if _, err := t.state.CompleteQuiz(ctx, state.QuizTriggerIdentifier); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to record quiz: %v", err)), nil
		}
	}

	return jsonResult(scoreResult{
		Scores: scores,
		Top:    assessment.Describe(assessment.RankTop(scores, assessment.DefaultTop)),
		Saved:  save,
	})
}
