package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/xid"

	"github.com/sakif/ideaforge/internal/apperror"
	"github.com/sakif/ideaforge/internal/model"
)

var (
	ideaColumns    = []string{"id", "original_idea", "enhanced_idea", "user_flow", "created_at"}
	summaryColumns = []string{"id", "original_idea", "enhanced_idea", "created_at"}
)

// CreateIdea inserts idea, setting its ID and CreatedAt in place.
func (db *DB) CreateIdea(ctx context.Context, idea *model.Idea) error {
	idea.ID = xid.New().String()
	idea.CreatedAt = db.now()

	query, args, err := db.sb.Insert("ideas").
		Columns(ideaColumns...).
		Values(idea.ID, idea.OriginalIdea, idea.EnhancedIdea, idea.UserFlow, idea.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqldb: building idea insert: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqldb: creating idea: %w", err)
	}
	return nil
}

// GetIdea returns the idea row without children.
// A missing id yields apperror.NotFound("Idea").
func (db *DB) GetIdea(ctx context.Context, id string) (*model.Idea, error) {
	query, args, err := db.sb.Select(ideaColumns...).
		From("ideas").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqldb: building idea select: %w", err)
	}

	var idea model.Idea
	if err := db.conn.GetContext(ctx, &idea, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Idea")
		}
		return nil, fmt.Errorf("sqldb: getting idea %s: %w", id, err)
	}
	return &idea, nil
}

// ListIdeas returns the summary projection of every idea, newest first.
func (db *DB) ListIdeas(ctx context.Context) ([]model.IdeaSummary, error) {
	query, args, err := db.sb.Select(summaryColumns...).
		From("ideas").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqldb: building idea list: %w", err)
	}

	ideas := []model.IdeaSummary{}
	if err := db.conn.SelectContext(ctx, &ideas, query, args...); err != nil {
		return nil, fmt.Errorf("sqldb: listing ideas: %w", err)
	}
	return ideas, nil
}

// IdeaExists reports whether an idea with id is stored.
func (db *DB) IdeaExists(ctx context.Context, id string) (bool, error) {
	query, args, err := db.sb.Select("COUNT(*)").
		From("ideas").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("sqldb: building idea lookup: %w", err)
	}

	var count int
	if err := db.conn.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("sqldb: checking idea %s: %w", id, err)
	}
	return count > 0, nil
}

// ReplaceUserFlow overwrites the stored flow of idea id.
func (db *DB) ReplaceUserFlow(ctx context.Context, id string, flow model.UserFlow) error {
	query, args, err := db.sb.Update("ideas").
		Set("user_flow", flow).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqldb: building user flow update: %w", err)
	}

	result, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqldb: replacing user flow of idea %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqldb: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Idea")
	}
	return nil
}
