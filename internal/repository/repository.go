package repository

import (
	"context"

	"github.com/sakif/ideaforge/internal/model"
)

// IdeaRepository stores the aggregate root.
type IdeaRepository interface {
	CreateIdea(ctx context.Context, idea *model.Idea) error
	GetIdea(ctx context.Context, id string) (*model.Idea, error)
	// ListIdeas returns every idea, newest first, without children.
	ListIdeas(ctx context.Context) ([]model.IdeaSummary, error)
	IdeaExists(ctx context.Context, id string) (bool, error)
	ReplaceUserFlow(ctx context.Context, id string, flow model.UserFlow) error
}

// The Create* methods below insert the whole slice as one unit. They fill
// in ID, IdeaID, Seq and CreatedAt on each element.

type ScoreRepository interface {
	CreateScores(ctx context.Context, ideaID string, scores []model.Score) error
	ListScores(ctx context.Context, ideaID string) ([]model.Score, error)
}

type ImprovementRepository interface {
	CreateImprovements(ctx context.Context, ideaID string, items []model.Improvement) error
	ListImprovements(ctx context.Context, ideaID string) ([]model.Improvement, error)
}

type FeatureRepository interface {
	CreateFeatures(ctx context.Context, ideaID string, features []model.Feature) error
	ListFeatures(ctx context.Context, ideaID string) ([]model.Feature, error)
}

type TechStackRepository interface {
	CreateTechStack(ctx context.Context, ideaID string, items []model.TechStackItem) error
	ListTechStack(ctx context.Context, ideaID string) ([]model.TechStackItem, error)
}

type KanbanRepository interface {
	CreateTickets(ctx context.Context, ideaID string, tickets []model.KanbanTicket) error
	ListTickets(ctx context.Context, ideaID string) ([]model.KanbanTicket, error)
	GetTicket(ctx context.Context, id string) (*model.KanbanTicket, error)
	UpdateTicketStatus(ctx context.Context, id string, status model.TicketStatus) error
}

// Store is everything the service layer needs from storage.
type Store interface {
	IdeaRepository
	ScoreRepository
	ImprovementRepository
	FeatureRepository
	TechStackRepository
	KanbanRepository
	Ping(ctx context.Context) error
}
