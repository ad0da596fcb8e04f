// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer, or an MCP tool) → parses requests, writes responses
//	Service (Business layer)             → checks preconditions, validates, orchestrates
//	Repository (Data layer)              → reads/writes the database
//
// IdeaService takes raw request bodies rather than decoded structs. The
// order in which failures are reported is part of the API: a missing idea
// wins over a missing ticket, which wins over a ticket attached to another
// idea, which wins over a malformed body. Decoding inside the service is
// what lets every caller (HTTP and MCP alike) get that same order.
//
// Errors returned from this package are always *apperror.AppError. Storage
// failures are logged here and surfaced as apperror.Internal, so callers
// never see driver messages.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/ideaforge/internal/apperror"
	"github.com/sakif/ideaforge/internal/board"
	"github.com/sakif/ideaforge/internal/metrics"
	"github.com/sakif/ideaforge/internal/model"
	"github.com/sakif/ideaforge/internal/repository"
	"github.com/sakif/ideaforge/internal/validate"
)

// Record kinds, used as the metrics label and in log lines.
const (
	KindScores       = "scores"
	KindImprovements = "improvements"
	KindFeatures     = "features"
	KindTechStack    = "tech_stack"
	KindTickets      = "kanban_tickets"
)

// IdeaService handles every operation on ideas and their child records.
type IdeaService struct {
	store     repository.Store
	validator *validate.Validator
	metrics   *metrics.Collector
	logger    *slog.Logger
}

// NewIdeaService creates a new IdeaService. metrics may be nil.
func NewIdeaService(store repository.Store, v *validate.Validator, m *metrics.Collector, logger *slog.Logger) *IdeaService {
	return &IdeaService{
		store:     store,
		validator: v,
		metrics:   m,
		logger:    logger,
	}
}

// Create validates body as {originalIdea, enhancedIdea} and stores a new idea.
func (s *IdeaService) Create(ctx context.Context, body []byte) (*model.Idea, error) {
	idea, err := s.validator.Idea(body)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateIdea(ctx, &idea); err != nil {
		return nil, s.fail("creating idea", err)
	}

	s.metrics.IdeaCreated()
	s.logger.Info("idea created", slog.String("id", idea.ID))
	return &idea, nil
}

// List returns every idea, newest first, without children or user flow.
func (s *IdeaService) List(ctx context.Context) ([]model.IdeaSummary, error) {
	ideas, err := s.store.ListIdeas(ctx)
	if err != nil {
		return nil, s.fail("listing ideas", err)
	}
	return ideas, nil
}

// Get returns one idea with all of its child collections attached.
func (s *IdeaService) Get(ctx context.Context, id string) (*model.IdeaDetail, error) {
	idea, err := s.store.GetIdea(ctx, id)
	if err != nil {
		return nil, s.fail("getting idea", err, slog.String("id", id))
	}

	detail := &model.IdeaDetail{Idea: *idea}

	if detail.Scores, err = s.store.ListScores(ctx, id); err != nil {
		return nil, s.fail("listing scores", err, slog.String("id", id))
	}
	if detail.Improvements, err = s.store.ListImprovements(ctx, id); err != nil {
		return nil, s.fail("listing improvements", err, slog.String("id", id))
	}
	if detail.Features, err = s.store.ListFeatures(ctx, id); err != nil {
		return nil, s.fail("listing features", err, slog.String("id", id))
	}
	if detail.TechStack, err = s.store.ListTechStack(ctx, id); err != nil {
		return nil, s.fail("listing tech stack", err, slog.String("id", id))
	}
	if detail.KanbanTickets, err = s.store.ListTickets(ctx, id); err != nil {
		return nil, s.fail("listing kanban tickets", err, slog.String("id", id))
	}

	return detail, nil
}

// Board returns the grouped dashboard view of one idea.
func (s *IdeaService) Board(ctx context.Context, id string) (*board.Board, error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b := board.Build(*detail)
	return &b, nil
}

// AddScores appends a batch of scores to idea ideaID.
func (s *IdeaService) AddScores(ctx context.Context, ideaID string, body []byte) ([]model.Score, error) {
	return appendBatch(ctx, s, ideaID, KindScores, body, s.validator.Scores, s.store.CreateScores)
}

func (s *IdeaService) AddImprovements(ctx context.Context, ideaID string, body []byte) ([]model.Improvement, error) {
	return appendBatch(ctx, s, ideaID, KindImprovements, body, s.validator.Improvements, s.store.CreateImprovements)
}

func (s *IdeaService) AddFeatures(ctx context.Context, ideaID string, body []byte) ([]model.Feature, error) {
	return appendBatch(ctx, s, ideaID, KindFeatures, body, s.validator.Features, s.store.CreateFeatures)
}

func (s *IdeaService) AddTechStack(ctx context.Context, ideaID string, body []byte) ([]model.TechStackItem, error) {
	return appendBatch(ctx, s, ideaID, KindTechStack, body, s.validator.TechStack, s.store.CreateTechStack)
}

// AddKanbanTickets appends tickets; items without a status start in backlog.
func (s *IdeaService) AddKanbanTickets(ctx context.Context, ideaID string, body []byte) ([]model.KanbanTicket, error) {
	return appendBatch(ctx, s, ideaID, KindTickets, body, s.validator.KanbanTickets, s.store.CreateTickets)
}

// appendBatch is the shared shape of the five batch endpoints: the idea must
// exist, then every item must validate, then all items are written at once.
func appendBatch[T any](
	ctx context.Context,
	s *IdeaService,
	ideaID, kind string,
	body []byte,
	parse func([]byte) ([]T, error),
	create func(context.Context, string, []T) error,
) ([]T, error) {
	if err := s.requireIdea(ctx, ideaID); err != nil {
		return nil, err
	}

	items, err := parse(body)
	if err != nil {
		return nil, err
	}

	if err := create(ctx, ideaID, items); err != nil {
		return nil, s.fail("creating "+kind, err, slog.String("idea_id", ideaID))
	}

	s.metrics.RecordsCreated(kind, len(items))
	s.logger.Info("records created",
		slog.String("idea_id", ideaID),
		slog.String("kind", kind),
		slog.Int("count", len(items)),
	)
	return items, nil
}

// UpdateTicketStatus moves ticket ticketID of idea ideaID to the status in
// body. Any status may follow any other.
func (s *IdeaService) UpdateTicketStatus(ctx context.Context, ideaID, ticketID string, body []byte) (*model.KanbanTicket, error) {
	if err := s.requireIdea(ctx, ideaID); err != nil {
		return nil, err
	}

	ticket, err := s.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, s.fail("getting ticket", err, slog.String("ticket_id", ticketID))
	}
	if ticket.IdeaID != ideaID {
		return nil, apperror.RelationMismatch("Ticket does not belong to this idea")
	}

	status, err := s.validator.TicketStatus(body)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateTicketStatus(ctx, ticketID, status); err != nil {
		return nil, s.fail("updating ticket status", err, slog.String("ticket_id", ticketID))
	}

	previous := ticket.Status
	ticket.Status = status

	s.metrics.TicketStatusChanged(string(status))
	s.logger.Info("ticket status updated",
		slog.String("idea_id", ideaID),
		slog.String("ticket_id", ticketID),
		slog.String("from", string(previous)),
		slog.String("to", string(status)),
	)
	return ticket, nil
}

// ReplaceUserFlow overwrites the idea's user flow with the one in body.
func (s *IdeaService) ReplaceUserFlow(ctx context.Context, ideaID string, body []byte) (*model.UserFlowRecord, error) {
	if err := s.requireIdea(ctx, ideaID); err != nil {
		return nil, err
	}

	flow, err := s.validator.UserFlow(body)
	if err != nil {
		return nil, err
	}

	if err := s.store.ReplaceUserFlow(ctx, ideaID, flow); err != nil {
		return nil, s.fail("replacing user flow", err, slog.String("idea_id", ideaID))
	}

	s.logger.Info("user flow replaced",
		slog.String("idea_id", ideaID),
		slog.Int("nodes", len(flow.Nodes)),
		slog.Int("edges", len(flow.Edges)),
	)
	return &model.UserFlowRecord{ID: ideaID, UserFlow: flow}, nil
}

// Ping reports whether storage is reachable.
func (s *IdeaService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// requireIdea returns NotFound("Idea") unless the idea exists. This is a
// read before the write, not a lock; nothing stops the idea from changing
// in between.
func (s *IdeaService) requireIdea(ctx context.Context, id string) error {
	ok, err := s.store.IdeaExists(ctx, id)
	if err != nil {
		return s.fail("checking idea", err, slog.String("idea_id", id))
	}
	if !ok {
		return apperror.NotFound("Idea")
	}
	return nil
}

// fail passes classified errors (not found, validation, ...) through and
// turns anything else into a logged internal error.
func (s *IdeaService) fail(op string, err error, attrs ...any) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	s.logger.Error("failed "+op, append(attrs, slog.String("error", err.Error()))...)
	return apperror.Internal(fmt.Errorf("%s: %w", op, err))
}
