package mcptools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sakif/ideaforge/internal/service"
)

// BatchTool appends a batch of child records through one of the service's
// Add* methods. The five batch tools differ only in name and description.
type BatchTool[T any] struct {
	name        string
	description string
	add         func(ctx context.Context, ideaID string, body []byte) ([]T, error)
}

func NewBatchTool[T any](name, description string, add func(context.Context, string, []byte) ([]T, error)) *BatchTool[T] {
	return &BatchTool[T]{name: name, description: description, add: add}
}

func (t *BatchTool[T]) Definition() mcp.Tool {
	return mcp.NewTool(t.name,
		mcp.WithDescription(t.description+" The whole batch is rejected if any item is invalid."),
		mcp.WithString("idea_id", mcp.Required(), mcp.Description("Idea id")),
		mcp.WithString("items",
			mcp.Required(),
			mcp.Description("JSON array of items, at least one"),
		),
	)
}

func (t *BatchTool[T]) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireString(req, "idea_id")
	if errResult != nil {
		return errResult, nil
	}
	return result(t.add(ctx, id, []byte(req.GetString("items", ""))))
}

// UpdateTicketStatusTool handles the update_ticket_status MCP tool.
type UpdateTicketStatusTool struct {
	svc *service.IdeaService
}

func NewUpdateTicketStatusTool(svc *service.IdeaService) *UpdateTicketStatusTool {
	return &UpdateTicketStatusTool{svc: svc}
}

func (t *UpdateTicketStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("update_ticket_status",
		mcp.WithDescription("Move a kanban ticket to another status. Any status may follow any other."),
		mcp.WithString("idea_id", mcp.Required(), mcp.Description("Idea the ticket belongs to")),
		mcp.WithString("ticket_id", mcp.Required(), mcp.Description("Ticket id")),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Enum("backlog", "todo", "in-progress", "in-review", "done"),
			mcp.Description("New status"),
		),
	)
}

func (t *UpdateTicketStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ideaID, errResult := requireString(req, "idea_id")
	if errResult != nil {
		return errResult, nil
	}
	ticketID, errResult := requireString(req, "ticket_id")
	if errResult != nil {
		return errResult, nil
	}

	body, err := json.Marshal(map[string]string{"status": req.GetString("status", "")})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return result(t.svc.UpdateTicketStatus(ctx, ideaID, ticketID, body))
}

// ReplaceUserFlowTool handles the replace_user_flow MCP tool.
type ReplaceUserFlowTool struct {
	svc *service.IdeaService
}

func NewReplaceUserFlowTool(svc *service.IdeaService) *ReplaceUserFlowTool {
	return &ReplaceUserFlowTool{svc: svc}
}

func (t *ReplaceUserFlowTool) Definition() mcp.Tool {
	return mcp.NewTool("replace_user_flow",
		mcp.WithDescription("Replace the idea's user flow diagram as a whole."),
		mcp.WithString("idea_id", mcp.Required(), mcp.Description("Idea id")),
		mcp.WithString("user_flow",
			mcp.Required(),
			mcp.Description(`JSON object {"nodes": [{id, type, label, description?}], "edges": [{id, source, target, label?, condition?}]}`),
		),
	)
}

func (t *ReplaceUserFlowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireString(req, "idea_id")
	if errResult != nil {
		return errResult, nil
	}
	return result(t.svc.ReplaceUserFlow(ctx, id, []byte(req.GetString("user_flow", ""))))
}
