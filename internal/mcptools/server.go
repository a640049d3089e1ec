package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/rcliao/shadow-journal/internal/gateway"
	"github.com/rcliao/shadow-journal/internal/state"
)

const instructions = `shadow-journal keeps a private shadow work journal.
Use assessment_questions then assessment_score to find the user's most triggered archetypes.
Use journal_add to record reflections and journal_list to recall them.
analyze_text gives AI guidance; a "degraded" outcome means static fallback text was used.`

// NewServer builds an MCP server exposing st and gw as tools.
func NewServer(st *state.State, gw *gateway.Client, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"shadow-journal",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	questions := NewQuestionsTool()
	s.AddTool(questions.Definition(), questions.Handle)

	score := NewScoreTool(st)
	s.AddTool(score.Definition(), score.Handle)

	journalAdd := NewJournalAddTool(st)
	s.AddTool(journalAdd.Definition(), journalAdd.Handle)

	journalList := NewJournalListTool(st)
	s.AddTool(journalList.Definition(), journalList.Handle)

	profile := NewProfileTool(st)
	s.AddTool(profile.Definition(), profile.Handle)

	analyze := NewAnalyzeTool(gw)
	s.AddTool(analyze.Definition(), analyze.Handle)

	return s
}
