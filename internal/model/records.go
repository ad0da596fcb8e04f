package model

import "time"

// Child records share the same bookkeeping columns: a generated ID, the
// owning IdeaID, the creation time and Seq, the index the record had
// inside the batch that created it. Seq is storage detail and is
// never serialised.

// Score rates an idea along one dimension, 1 to 10.
type Score struct {
	ID            string    `json:"id"            db:"id"`
	IdeaID        string    `json:"ideaId"        db:"idea_id"`
	Seq           int       `json:"-" db:"seq"`
	Dimension     string    `json:"dimension"     db:"dimension"`
	Score         int       `json:"score"         db:"score"`
	Justification string    `json:"justification" db:"justification"`
	CreatedAt     time.Time `json:"createdAt"     db:"created_at"`
}

// Improvement is a suggestion for one dimension.
type Improvement struct {
	ID         string    `json:"id"         db:"id"`
	IdeaID     string    `json:"ideaId"     db:"idea_id"`
	Seq        int       `json:"-" db:"seq"`
	Dimension  string    `json:"dimension"  db:"dimension"`
	Suggestion string    `json:"suggestion" db:"suggestion"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
}

type Feature struct {
	ID          string    `json:"id"          db:"id"`
	IdeaID      string    `json:"ideaId"      db:"idea_id"`
	Seq         int       `json:"-" db:"seq"`
	Name        string    `json:"name"        db:"name"`
	Description string    `json:"description" db:"description"`
	Priority    Priority  `json:"priority"    db:"priority"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
}

type TechStackItem struct {
	ID            string    `json:"id"            db:"id"`
	IdeaID        string    `json:"ideaId"        db:"idea_id"`
	Seq           int       `json:"-" db:"seq"`
	Category      string    `json:"category"      db:"category"`
	Technology    string    `json:"technology"    db:"technology"`
	Justification string    `json:"justification" db:"justification"`
	CreatedAt     time.Time `json:"createdAt"     db:"created_at"`
}

// KanbanTicket is a unit of work. Status is the only field that changes
// after creation. Effort is a free-text estimate and may be absent.
type KanbanTicket struct {
	ID          string       `json:"id"          db:"id"`
	IdeaID      string       `json:"ideaId"      db:"idea_id"`
	Seq         int          `json:"-" db:"seq"`
	Title       string       `json:"title"       db:"title"`
	Description string       `json:"description" db:"description"`
	Status      TicketStatus `json:"status"      db:"status"`
	Effort      *string      `json:"effort"      db:"effort"`
	CreatedAt   time.Time    `json:"createdAt"   db:"created_at"`
}
