package mcptools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sakif/ideaforge/internal/service"
)

// CreateIdeaTool handles the create_idea MCP tool.
type CreateIdeaTool struct {
	svc *service.IdeaService
}

func NewCreateIdeaTool(svc *service.IdeaService) *CreateIdeaTool {
	return &CreateIdeaTool{svc: svc}
}

func (t *CreateIdeaTool) Definition() mcp.Tool {
	return mcp.NewTool("create_idea",
		mcp.WithDescription("Record a new project idea together with its enhanced restatement. Returns the stored idea, including its id."),
		mcp.WithString("original_idea",
			mcp.Required(),
			mcp.Description("The idea as the user first described it"),
		),
		mcp.WithString("enhanced_idea",
			mcp.Required(),
			mcp.Description("The refined, more detailed version of the idea"),
		),
	)
}

func (t *CreateIdeaTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Empty values go through to the service so the caller gets the same
	// per-field validation report as the HTTP API.
	body, err := json.Marshal(map[string]string{
		"originalIdea": req.GetString("original_idea", ""),
		"enhancedIdea": req.GetString("enhanced_idea", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return result(t.svc.Create(ctx, body))
}

// ListIdeasTool handles the list_ideas MCP tool.
type ListIdeasTool struct {
	svc *service.IdeaService
}

func NewListIdeasTool(svc *service.IdeaService) *ListIdeasTool {
	return &ListIdeasTool{svc: svc}
}

func (t *ListIdeasTool) Definition() mcp.Tool {
	return mcp.NewTool("list_ideas",
		mcp.WithDescription("List every idea, newest first, without child records."),
	)
}

func (t *ListIdeasTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(t.svc.List(ctx))
}

// GetIdeaTool handles the get_idea MCP tool.
type GetIdeaTool struct {
	svc *service.IdeaService
}

func NewGetIdeaTool(svc *service.IdeaService) *GetIdeaTool {
	return &GetIdeaTool{svc: svc}
}

func (t *GetIdeaTool) Definition() mcp.Tool {
	return mcp.NewTool("get_idea",
		mcp.WithDescription("Fetch one idea with its scores, improvements, features, tech stack, kanban tickets and user flow."),
		mcp.WithString("idea_id", mcp.Required(), mcp.Description("Idea id")),
	)
}

func (t *GetIdeaTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireString(req, "idea_id")
	if errResult != nil {
		return errResult, nil
	}
	return result(t.svc.Get(ctx, id))
}

// BoardTool handles the get_board MCP tool.
type BoardTool struct {
	svc *service.IdeaService
}

func NewBoardTool(svc *service.IdeaService) *BoardTool {
	return &BoardTool{svc: svc}
}

func (t *BoardTool) Definition() mcp.Tool {
	return mcp.NewTool("get_board",
		mcp.WithDescription("Fetch the grouped view of an idea: features by priority, tech stack by category, kanban tickets by status with counts."),
		mcp.WithString("idea_id", mcp.Required(), mcp.Description("Idea id")),
	)
}

func (t *BoardTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireString(req, "idea_id")
	if errResult != nil {
		return errResult, nil
	}
	return result(t.svc.Board(ctx, id))
}
