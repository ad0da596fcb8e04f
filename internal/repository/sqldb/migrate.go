package sqldb

import (
	"context"
	"fmt"
)

// schema is written in the subset of SQL both engines accept. Every
// statement is idempotent so Migrate can run on every start.
//
// user_flow holds the JSON-encoded model.UserFlow. seq is the index of a
// child row inside its insert batch and breaks created_at ties.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS ideas (
		id            TEXT PRIMARY KEY,
		original_idea TEXT NOT NULL,
		enhanced_idea TEXT NOT NULL,
		user_flow     TEXT,
		created_at    TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ideas_created_at ON ideas(created_at)`,

	`CREATE TABLE IF NOT EXISTS scores (
		id            TEXT PRIMARY KEY,
		idea_id       TEXT NOT NULL REFERENCES ideas(id) ON DELETE CASCADE,
		seq           INTEGER NOT NULL,
		dimension     TEXT NOT NULL,
		score         INTEGER NOT NULL CHECK (score BETWEEN 1 AND 10),
		justification TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_idea_id ON scores(idea_id)`,

	`CREATE TABLE IF NOT EXISTS improvements (
		id         TEXT PRIMARY KEY,
		idea_id    TEXT NOT NULL REFERENCES ideas(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL,
		dimension  TEXT NOT NULL,
		suggestion TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_improvements_idea_id ON improvements(idea_id)`,

	`CREATE TABLE IF NOT EXISTS features (
		id          TEXT PRIMARY KEY,
		idea_id     TEXT NOT NULL REFERENCES ideas(id) ON DELETE CASCADE,
		seq         INTEGER NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL,
		priority    TEXT NOT NULL,
		created_at  TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_features_idea_id ON features(idea_id)`,

	`CREATE TABLE IF NOT EXISTS tech_stack_items (
		id            TEXT PRIMARY KEY,
		idea_id       TEXT NOT NULL REFERENCES ideas(id) ON DELETE CASCADE,
		seq           INTEGER NOT NULL,
		category      TEXT NOT NULL,
		technology    TEXT NOT NULL,
		justification TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tech_stack_items_idea_id ON tech_stack_items(idea_id)`,

	`CREATE TABLE IF NOT EXISTS kanban_tickets (
		id          TEXT PRIMARY KEY,
		idea_id     TEXT NOT NULL REFERENCES ideas(id) ON DELETE CASCADE,
		seq         INTEGER NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'backlog',
		effort      TEXT,
		created_at  TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_kanban_tickets_idea_id ON kanban_tickets(idea_id)`,
}

// Migrate creates any missing tables and indexes.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema statement %d: %w", i, err)
		}
	}
	return nil
}
