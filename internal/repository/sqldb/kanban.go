package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sakif/ideaforge/internal/apperror"
	"github.com/sakif/ideaforge/internal/model"
)

// GetTicket looks a ticket up by its own id, regardless of idea.
func (db *DB) GetTicket(ctx context.Context, id string) (*model.KanbanTicket, error) {
	query, args, err := db.sb.Select(ticketsTable.columns...).
		From(ticketsTable.name).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqldb: building ticket select: %w", err)
	}

	var ticket model.KanbanTicket
	if err := db.conn.GetContext(ctx, &ticket, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Ticket")
		}
		return nil, fmt.Errorf("sqldb: getting ticket %s: %w", id, err)
	}
	return &ticket, nil
}

// UpdateTicketStatus changes status and nothing else.
func (db *DB) UpdateTicketStatus(ctx context.Context, id string, status model.TicketStatus) error {
	query, args, err := db.sb.Update(ticketsTable.name).
		Set("status", string(status)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqldb: building ticket update: %w", err)
	}

	result, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqldb: updating ticket %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqldb: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Ticket")
	}
	return nil
}
