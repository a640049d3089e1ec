package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rcliao/shadow-journal/internal/gateway"
)

// AnalyzeTool handles analyze_text, routing free text to one gateway
// feature.
type AnalyzeTool struct {
	gateway *gateway.Client
}

// NewAnalyzeTool creates an AnalyzeTool.
func NewAnalyzeTool(gw *gateway.Client) *AnalyzeTool {
	return &AnalyzeTool{gateway: gw}
}

// textFeatures are the gateway features that take a single text input.
var textFeatures = []string{
	gateway.FeatureDialogue,
	gateway.FeatureJournal,
	gateway.FeatureTrigger,
	gateway.FeatureJudgment,
	gateway.FeatureSocratic,
	gateway.FeatureSaboteur,
}

// Definition returns the MCP tool definition for analyze_text.
func (t *AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_text",
		mcp.WithDescription(
			"Run an AI analysis over text. When the AI endpoint is unavailable a static fallback is returned "+
				"and outcome is 'degraded'.",
		),
		mcp.WithString("feature",
			mcp.Required(),
			mcp.Description("Which analysis to run"),
			mcp.Enum(textFeatures...),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The message, entry, story, judgment or thought to analyse"),
		),
		mcp.WithString("context",
			mcp.Description("Dialogue context, judgment target, or saboteur situation"),
		),
	)
}

type analyzeResult struct {
	Feature string          `json:"feature"`
	Outcome gateway.Outcome `json:"outcome"`
	Error   string          `json:"error,omitempty"`
	Value   any             `json:"value"`
}

func envelope[T any](feature string, r gateway.Result[T]) (*mcp.CallToolResult, error) {
	if r.Outcome == gateway.Failed {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", feature, r.Err)), nil
	}
	out := analyzeResult{Feature: feature, Outcome: r.Outcome, Value: r.Value}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return jsonResult(out)
}

// Handle runs the requested feature.
func (t *AnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	feature := req.GetString("feature", "")
	text := req.GetString("text", "")
	extra := req.GetString("context", "")
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	switch feature {
	case gateway.FeatureDialogue:
		return envelope(feature, t.gateway.Dialogue(ctx, gateway.DialogueRequest{Message: text, Context: extra}))
	case gateway.FeatureJournal:
		return envelope(feature, t.gateway.Journal(ctx, text))
	case gateway.FeatureTrigger:
		return envelope(feature, t.gateway.Trigger(ctx, text))
	case gateway.FeatureJudgment:
		return envelope(feature, t.gateway.Judgment(ctx, text, extra))
	case gateway.FeatureSocratic:
		return envelope(feature, t.gateway.Socratic(ctx, text, nil))
	case gateway.FeatureSaboteur:
		return envelope(feature, t.gateway.Saboteur(ctx, text, extra))
	}
	return mcp.NewToolResultError(fmt.Sprintf("unknown feature %q", feature)), nil
}
