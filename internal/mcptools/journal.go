package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rcliao/shadow-journal/internal/model"
	"github.com/rcliao/shadow-journal/internal/state"
)

// JournalAddTool handles journal_add.
type JournalAddTool struct {
	state *state.State
}

// NewJournalAddTool creates a JournalAddTool.
func NewJournalAddTool(st *state.State) *JournalAddTool {
	return &JournalAddTool{state: st}
}

// Definition returns the MCP tool definition for journal_add.
func (t *JournalAddTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_add",
		mcp.WithDescription("Add an entry to the shadow work journal. Entries are stored newest first."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Entry text"),
		),
		mcp.WithString("title",
			mcp.Description("Short title"),
		),
		mcp.WithString("type",
			mcp.Description("Entry type (default: general)"),
			mcp.Enum(model.JournalGeneral, model.JournalInnerChild, model.JournalShadow, model.JournalDream, model.JournalTrigger),
		),
		mcp.WithString("mood",
			mcp.Description("Mood while writing"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
	)
}

// Handle stores the entry.
func (t *JournalAddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := req.GetString("content", "")
	if content == "" {
		return mcp.NewToolResultError("'content' is required"), nil
	}

	e, err := t.state.AddJournalEntry(ctx, model.JournalEntry{
		Type:    req.GetString("type", model.JournalGeneral),
		Title:   req.GetString("title", ""),
		Content: content,
		Mood:    req.GetString("mood", ""),
		Tags:    splitList(req.GetString("tags", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save entry: %v", err)), nil
	}
	return jsonResult(e)
}

// JournalListTool handles journal_list.
type JournalListTool struct {
	state *state.State
}

// NewJournalListTool creates a JournalListTool.
func NewJournalListTool(st *state.State) *JournalListTool {
	return &JournalListTool{state: st}
}

// Definition returns the MCP tool definition for journal_list.
func (t *JournalListTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_list",
		mcp.WithDescription("List journal entries newest first, optionally filtered by a case-insensitive query over title, content, mood, type and tags."),
		mcp.WithString("query",
			mcp.Description("Search text (default: all entries)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max entries (default: 20)"),
		),
	)
}

// Handle lists matching entries.
func (t *JournalListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", 20)
	entries := t.state.SearchJournal(req.GetString("query", ""))
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	return jsonResult(entries)
}

// ProfileTool handles profile_get.
type ProfileTool struct {
	state *state.State
}

// NewProfileTool creates a ProfileTool.
func NewProfileTool(st *state.State) *ProfileTool {
	return &ProfileTool{state: st}
}

// Definition returns the MCP tool definition for profile_get.
func (t *ProfileTool) Definition() mcp.Tool {
	return mcp.NewTool("profile_get",
		mcp.WithDescription("Return the user profile: name, insight crystals and completed chapters, activities and quizzes."),
	)
}

// Handle returns the profile.
func (t *ProfileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.state.Profile())
}
