package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/ideaforge/internal/apperror"
	"github.com/sakif/ideaforge/internal/service"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes = 1 << 20

// IdeaHandler exposes IdeaService over HTTP. It only knows about HTTP:
// path parameters, body reading, status codes. Decoding and validation of
// the body happen in the service.
type IdeaHandler struct {
	svc          *service.IdeaService
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewIdeaHandler creates a new IdeaHandler. A maxBodyBytes of zero or less
// means DefaultMaxBodyBytes.
func NewIdeaHandler(svc *service.IdeaService, logger *slog.Logger, maxBodyBytes int64) *IdeaHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &IdeaHandler{svc: svc, logger: logger, maxBodyBytes: maxBodyBytes}
}

// Routes registers every idea endpoint on r, relative to r's mount point.
func (h *IdeaHandler) Routes(r chi.Router) {
	r.Get("/ideas", h.HandleList)
	r.Post("/ideas", h.HandleCreate)

	r.Route("/ideas/{id}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Get("/board", h.HandleBoard)
		r.Post("/scores", batchHandler(h, h.svc.AddScores))
		r.Post("/improvements", batchHandler(h, h.svc.AddImprovements))
		r.Post("/features", batchHandler(h, h.svc.AddFeatures))
		r.Post("/techstack", batchHandler(h, h.svc.AddTechStack))
		r.Post("/kanban", batchHandler(h, h.svc.AddKanbanTickets))
		r.Patch("/kanban/{ticketId}", h.HandleUpdateTicketStatus)
		r.Post("/userflow", h.HandleReplaceUserFlow)
	})
}

// readBody reads the whole request body, refusing anything over the limit.
func (h *IdeaHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperror.InvalidField("body",
				fmt.Sprintf("request body must not exceed %d bytes", tooLarge.Limit))
		}
		return nil, apperror.InvalidField("body", "request body could not be read")
	}
	return body, nil
}

// HandleCreate stores a new idea.
//
// HTTP: POST /ideas
// REQUEST BODY: {"originalIdea": "...", "enhancedIdea": "..."}
func (h *IdeaHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	idea, err := h.svc.Create(r.Context(), body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, idea)
}

// HandleList returns every idea without children, newest first.
//
// HTTP: GET /ideas
func (h *IdeaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, ideas)
}

// HandleGet returns one idea with every child collection.
//
// HTTP: GET /ideas/{id}
func (h *IdeaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, detail)
}

// HandleBoard returns the grouped dashboard view.
//
// HTTP: GET /ideas/{id}/board
func (h *IdeaHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Board(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, b)
}

// batchHandler adapts one of the service's batch methods into a handler.
// All five batch endpoints take an array body and return the created rows.
func batchHandler[T any](h *IdeaHandler, add func(ctx context.Context, ideaID string, body []byte) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := h.readBody(w, r)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}

		created, err := add(r.Context(), chi.URLParam(r, "id"), body)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeData(w, h.logger, created)
	}
}

// HandleUpdateTicketStatus moves a ticket to another status.
//
// HTTP: PATCH /ideas/{id}/kanban/{ticketId}
// REQUEST BODY: {"status": "in-progress"}
func (h *IdeaHandler) HandleUpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	ticket, err := h.svc.UpdateTicketStatus(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "ticketId"), body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, ticket)
}

// HandleReplaceUserFlow replaces the idea's user flow diagram.
//
// HTTP: POST /ideas/{id}/userflow
// REQUEST BODY: {"nodes": [...], "edges": [...]}
func (h *IdeaHandler) HandleReplaceUserFlow(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	record, err := h.svc.ReplaceUserFlow(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, record)
}
