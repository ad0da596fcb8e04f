// Package mcptools exposes IdeaService as MCP tools, so an assistant can
// drive the same validation pipeline the HTTP API serves.
//
// Each tool follows the same pattern:
//   - a struct with the service injected via constructor
//   - Definition() returns the mcp.Tool schema
//   - Handle() processes the request and returns a result
//
// Successful results carry the JSON the HTTP API would put under "data".
// Failures are tool errors with the same message the API would return.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sakif/ideaforge/internal/apperror"
	"github.com/sakif/ideaforge/internal/service"
)

// Tool is the shape every tool in this package has.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// All returns every tool bound to svc, in registration order.
func All(svc *service.IdeaService) []Tool {
	return []Tool{
		NewCreateIdeaTool(svc),
		NewListIdeasTool(svc),
		NewGetIdeaTool(svc),
		NewBatchTool("add_scores",
			"Append validation scores to an idea. items is a JSON array of {dimension, score (integer 1-10), justification}.",
			svc.AddScores),
		NewBatchTool("add_improvements",
			"Append improvement suggestions to an idea. items is a JSON array of {dimension, suggestion}.",
			svc.AddImprovements),
		NewBatchTool("add_features",
			"Append features to an idea. items is a JSON array of {name, description, priority (must-have|should-have|nice-to-have)}.",
			svc.AddFeatures),
		NewBatchTool("add_tech_stack",
			"Append tech stack choices to an idea. items is a JSON array of {category, technology, justification}.",
			svc.AddTechStack),
		NewBatchTool("add_kanban_tickets",
			"Append kanban tickets to an idea. items is a JSON array of {title, description, status? (default backlog), effort?}.",
			svc.AddKanbanTickets),
		NewUpdateTicketStatusTool(svc),
		NewReplaceUserFlowTool(svc),
		NewBoardTool(svc),
	}
}

// NewServer builds an MCP server with every tool registered.
func NewServer(svc *service.IdeaService, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"ideaforge",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	for _, tool := range All(svc) {
		s.AddTool(tool.Definition(), tool.Handle)
	}
	return s
}

// result renders data as indented JSON, or err as a tool error.
func result(data any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return errorResult(err), nil
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// errorResult turns a service error into the message an API client would
// see. Validation details are appended so the caller can fix its input.
func errorResult(err error) *mcp.CallToolResult {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || errors.Is(err, apperror.ErrInternal) {
		return mcp.NewToolResultError("Internal server error")
	}

	msg := appErr.Message
	if len(appErr.Details) > 0 {
		if details, err := json.Marshal(appErr.Details); err == nil {
			msg += ": " + string(details)
		}
	}
	return mcp.NewToolResultError(msg)
}

// requireString returns the named argument, or a tool error if it is empty.
func requireString(req mcp.CallToolRequest, key string) (string, *mcp.CallToolResult) {
	v := req.GetString(key, "")
	if v == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("'%s' is required", key))
	}
	return v, nil
}
