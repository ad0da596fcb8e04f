package sqldb

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/xid"

	"github.com/sakif/ideaforge/internal/model"
)

// childTable describes one of the per-idea record tables. Rows of a batch
// share one timestamp and are told apart by seq. row returns the values for
// columns in order, after stamp has set the bookkeeping fields.
type childTable[T any] struct {
	name    string
	columns []string
	stamp   func(item *T, id, ideaID string, seq int, at time.Time)
	row     func(item *T) []any
}

// insert writes all items with a single multi-row INSERT, so either every
// row lands or none do.
func (t childTable[T]) insert(ctx context.Context, db *DB, ideaID string, items []T) error {
	if len(items) == 0 {
		return nil
	}

	now := db.now()
	builder := db.sb.Insert(t.name).Columns(t.columns...)
	for i := range items {
		t.stamp(&items[i], xid.New().String(), ideaID, i, now)
		builder = builder.Values(t.row(&items[i])...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("sqldb: building %s insert: %w", t.name, err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqldb: inserting %s: %w", t.name, err)
	}
	return nil
}

// list returns the rows of ideaID in creation order. The result is never nil.
func (t childTable[T]) list(ctx context.Context, db *DB, ideaID string) ([]T, error) {
	query, args, err := db.sb.Select(t.columns...).
		From(t.name).
		Where(sq.Eq{"idea_id": ideaID}).
		OrderBy("created_at", "seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqldb: building %s select: %w", t.name, err)
	}

	items := []T{}
	if err := db.conn.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("sqldb: listing %s: %w", t.name, err)
	}
	return items, nil
}

var scoresTable = childTable[model.Score]{
	name:    "scores",
	columns: []string{"id", "idea_id", "seq", "dimension", "score", "justification", "created_at"},
	stamp: func(s *model.Score, id, ideaID string, seq int, at time.Time) {
		s.ID, s.IdeaID, s.Seq, s.CreatedAt = id, ideaID, seq, at
	},
	row: func(s *model.Score) []any {
		return []any{s.ID, s.IdeaID, s.Seq, s.Dimension, s.Score, s.Justification, s.CreatedAt}
	},
}

var improvementsTable = childTable[model.Improvement]{
	name:    "improvements",
	columns: []string{"id", "idea_id", "seq", "dimension", "suggestion", "created_at"},
	stamp: func(s *model.Improvement, id, ideaID string, seq int, at time.Time) {
		s.ID, s.IdeaID, s.Seq, s.CreatedAt = id, ideaID, seq, at
	},
	row: func(s *model.Improvement) []any {
		return []any{s.ID, s.IdeaID, s.Seq, s.Dimension, s.Suggestion, s.CreatedAt}
	},
}

var featuresTable = childTable[model.Feature]{
	name:    "features",
	columns: []string{"id", "idea_id", "seq", "name", "description", "priority", "created_at"},
	stamp: func(f *model.Feature, id, ideaID string, seq int, at time.Time) {
		f.ID, f.IdeaID, f.Seq, f.CreatedAt = id, ideaID, seq, at
	},
	row: func(f *model.Feature) []any {
		return []any{f.ID, f.IdeaID, f.Seq, f.Name, f.Description, string(f.Priority), f.CreatedAt}
	},
}

var techStackTable = childTable[model.TechStackItem]{
	name:    "tech_stack_items",
	columns: []string{"id", "idea_id", "seq", "category", "technology", "justification", "created_at"},
	stamp: func(t *model.TechStackItem, id, ideaID string, seq int, at time.Time) {
		t.ID, t.IdeaID, t.Seq, t.CreatedAt = id, ideaID, seq, at
	},
	row: func(t *model.TechStackItem) []any {
		return []any{t.ID, t.IdeaID, t.Seq, t.Category, t.Technology, t.Justification, t.CreatedAt}
	},
}

var ticketsTable = childTable[model.KanbanTicket]{
	name:    "kanban_tickets",
	columns: []string{"id", "idea_id", "seq", "title", "description", "status", "effort", "created_at"},
	stamp: func(k *model.KanbanTicket, id, ideaID string, seq int, at time.Time) {
		k.ID, k.IdeaID, k.Seq, k.CreatedAt = id, ideaID, seq, at
		if k.Status == "" {
			k.Status = model.DefaultTicketStatus
		}
	},
	row: func(k *model.KanbanTicket) []any {
		return []any{k.ID, k.IdeaID, k.Seq, k.Title, k.Description, string(k.Status), k.Effort, k.CreatedAt}
	},
}

func (db *DB) CreateScores(ctx context.Context, ideaID string, scores []model.Score) error {
	return scoresTable.insert(ctx, db, ideaID, scores)
}

func (db *DB) ListScores(ctx context.Context, ideaID string) ([]model.Score, error) {
	return scoresTable.list(ctx, db, ideaID)
}

func (db *DB) CreateImprovements(ctx context.Context, ideaID string, items []model.Improvement) error {
	return improvementsTable.insert(ctx, db, ideaID, items)
}

func (db *DB) ListImprovements(ctx context.Context, ideaID string) ([]model.Improvement, error) {
	return improvementsTable.list(ctx, db, ideaID)
}

func (db *DB) CreateFeatures(ctx context.Context, ideaID string, features []model.Feature) error {
	return featuresTable.insert(ctx, db, ideaID, features)
}

func (db *DB) ListFeatures(ctx context.Context, ideaID string) ([]model.Feature, error) {
	return featuresTable.list(ctx, db, ideaID)
}

func (db *DB) CreateTechStack(ctx context.Context, ideaID string, items []model.TechStackItem) error {
	return techStackTable.insert(ctx, db, ideaID, items)
}

func (db *DB) ListTechStack(ctx context.Context, ideaID string) ([]model.TechStackItem, error) {
	return techStackTable.list(ctx, db, ideaID)
}

func (db *DB) CreateTickets(ctx context.Context, ideaID string, tickets []model.KanbanTicket) error {
	return ticketsTable.insert(ctx, db, ideaID, tickets)
}

func (db *DB) ListTickets(ctx context.Context, ideaID string) ([]model.KanbanTicket, error) {
	return ticketsTable.list(ctx, db, ideaID)
}
