// Package board reshapes an idea and its children into the grouped views a
// dashboard renders: features by priority, tech stack by category and
// kanban tickets by status.
package board

import "github.com/sakif/ideaforge/internal/model"

type FeatureGroup struct {
	Priority model.Priority  `json:"priority"`
	Features []model.Feature `json:"features"`
}

type TechCategory struct {
	Category string                `json:"category"`
	Items    []model.TechStackItem `json:"items"`
}

// Column is one kanban lane. Count equals len(Tickets).
type Column struct {
	Status  model.TicketStatus   `json:"status"`
	Count   int                  `json:"count"`
	Tickets []model.KanbanTicket `json:"tickets"`
}

// Board is the grouped view of one idea.
//
// Features always has one group per priority and Kanban one column per
// status, empty or not, in their fixed order. TechStack only has the
// categories that occur, in the order they first appear.
type Board struct {
	IdeaID    string         `json:"ideaId"`
	Features  []FeatureGroup `json:"features"`
	TechStack []TechCategory `json:"techStack"`
	Kanban    []Column       `json:"kanban"`
}

// Build groups the children of detail. Records inside every group keep the
// order they had in detail.
func Build(detail model.IdeaDetail) Board {
	return Board{
		IdeaID:    detail.ID,
		Features:  byPriority(detail.Features),
		TechStack: byCategory(detail.TechStack),
		Kanban:    byStatus(detail.KanbanTickets),
	}
}

func byPriority(features []model.Feature) []FeatureGroup {
	groups := make([]FeatureGroup, len(model.Priorities))
	index := make(map[model.Priority]int, len(model.Priorities))
	for i, p := range model.Priorities {
		groups[i] = FeatureGroup{Priority: p, Features: []model.Feature{}}
		index[p] = i
	}

	for _, f := range features {
		if i, ok := index[f.Priority]; ok {
			groups[i].Features = append(groups[i].Features, f)
		}
	}
	return groups
}

func byCategory(items []model.TechStackItem) []TechCategory {
	groups := []TechCategory{}
	index := map[string]int{}

	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, TechCategory{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

func byStatus(tickets []model.KanbanTicket) []Column {
	columns := make([]Column, len(model.TicketStatuses))
	index := make(map[model.TicketStatus]int, len(model.TicketStatuses))
	for i, s := range model.TicketStatuses {
		columns[i] = Column{Status: s, Tickets: []model.KanbanTicket{}}
		index[s] = i
	}

	for _, t := range tickets {
		if i, ok := index[t.Status]; ok {
			columns[i].Tickets = append(columns[i].Tickets, t)
			columns[i].Count++
		}
	}
	return columns
}
