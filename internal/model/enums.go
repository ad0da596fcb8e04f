package model

// Priority is the MoSCoW classification of a Feature.
type Priority string

const (
	PriorityMustHave   Priority = "must-have"
	PriorityShouldHave Priority = "should-have"
	PriorityNiceToHave Priority = "nice-to-have"
)

// Priorities lists every priority, most important first.
var Priorities = []Priority{PriorityMustHave, PriorityShouldHave, PriorityNiceToHave}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// TicketStatus is the lifecycle stage of a KanbanTicket. Any status may move
// to any other; there is no transition graph.
type TicketStatus string

const (
	StatusBacklog    TicketStatus = "backlog"
	StatusTodo       TicketStatus = "todo"
	StatusInProgress TicketStatus = "in-progress"
	StatusInReview   TicketStatus = "in-review"
	StatusDone       TicketStatus = "done"
)

// DefaultTicketStatus is assigned to tickets created without a status.
const DefaultTicketStatus = StatusBacklog

// TicketStatuses lists every status in lifecycle order.
var TicketStatuses = []TicketStatus{StatusBacklog, StatusTodo, StatusInProgress, StatusInReview, StatusDone}

func (s TicketStatus) Valid() bool {
	for _, known := range TicketStatuses {
		if s == known {
			return true
		}
	}
	return false
}
