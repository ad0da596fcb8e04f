// Package model defines the data structures used throughout the application.
//
// An Idea is the aggregate root. Everything else in this package either hangs
// off an Idea through IdeaID (scores, improvements, features, tech stack items,
// kanban tickets) or is embedded in it (the UserFlow diagram).
package model

import "time"

// Idea is the stored record for one submitted project concept.
//
// UserFlow is nil until a flow has been attached; it is the only field that
// changes after creation.
type Idea struct {
	ID           string    `json:"id"           db:"id"`
	OriginalIdea string    `json:"originalIdea" db:"original_idea"`
	EnhancedIdea string    `json:"enhancedIdea" db:"enhanced_idea"`
	UserFlow     *UserFlow `json:"userFlow"     db:"user_flow"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
}

// IdeaSummary is the list projection of an Idea. It deliberately has no
// child collections and no user flow.
type IdeaSummary struct {
	ID           string    `json:"id"           db:"id"`
	OriginalIdea string    `json:"originalIdea" db:"original_idea"`
	EnhancedIdea string    `json:"enhancedIdea" db:"enhanced_idea"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
}

// IdeaDetail is an Idea with every child collection attached.
// The slices are never nil so they encode as [] rather than null.
type IdeaDetail struct {
	Idea
	Scores        []Score         `json:"scores"`
	Improvements  []Improvement   `json:"improvements"`
	Features      []Feature       `json:"features"`
	TechStack     []TechStackItem `json:"techStack"`
	KanbanTickets []KanbanTicket  `json:"kanbanTickets"`
}

// UserFlowRecord is what replacing a flow returns: the idea id and the stored flow.
type UserFlowRecord struct {
	ID       string   `json:"id"`
	UserFlow UserFlow `json:"userFlow"`
}
