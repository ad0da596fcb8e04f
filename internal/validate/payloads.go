package validate

import (
	"github.com/sakif/ideaforge/internal/apperror"
	"github.com/sakif/ideaforge/internal/model"
)

type ideaInput struct {
	OriginalIdea string `json:"originalIdea" validate:"required"`
	EnhancedIdea string `json:"enhancedIdea" validate:"required"`
}

type scoreInput struct {
	Dimension string `json:"dimension" validate:"required"`
	// A pointer so an absent score is distinguishable from 0, and a float so
	// 7.5 decodes and is then rejected as a non-integer.
	Score         *float64 `json:"score"         validate:"required,wholenumber,min=1,max=10"`
	Justification string   `json:"justification" validate:"required"`
}

type improvementInput struct {
	Dimension  string `json:"dimension"  validate:"required"`
	Suggestion string `json:"suggestion" validate:"required"`
}

type featureInput struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority"    validate:"required,oneof=must-have should-have nice-to-have"`
}

type techStackInput struct {
	Category      string `json:"category"      validate:"required"`
	Technology    string `json:"technology"    validate:"required"`
	Justification string `json:"justification" validate:"required"`
}

type ticketInput struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description" validate:"required"`
	Status      *string `json:"status"      validate:"omitempty,oneof=backlog todo in-progress in-review done"`
	Effort      *string `json:"effort"`
}

type statusInput struct {
	Status string `json:"status" validate:"required,oneof=backlog todo in-progress in-review done"`
}

type nodeInput struct {
	ID          string  `json:"id"          validate:"required"`
	Type        string  `json:"type"        validate:"required"`
	Label       string  `json:"label"       validate:"required"`
	Description *string `json:"description"`
}

type edgeInput struct {
	ID        string  `json:"id"        validate:"required"`
	Source    string  `json:"source"    validate:"required"`
	Target    string  `json:"target"    validate:"required"`
	Label     *string `json:"label"`
	Condition *string `json:"condition"`
}

// userFlowInput requires both arrays to be present; either may be empty.
type userFlowInput struct {
	Nodes []nodeInput `json:"nodes" validate:"required,dive"`
	Edges []edgeInput `json:"edges" validate:"required,dive"`
}

// Batch wrappers. The slice lives under "items" so validator namespaces
// come out as "<wrapper>.items[i].<field>".
type (
	scoreBatch struct {
		Items []scoreInput `json:"items" validate:"min=1,dive"`
	}
	improvementBatch struct {
		Items []improvementInput `json:"items" validate:"min=1,dive"`
	}
	featureBatch struct {
		Items []featureInput `json:"items" validate:"min=1,dive"`
	}
	techStackBatch struct {
		Items []techStackInput `json:"items" validate:"min=1,dive"`
	}
	ticketBatch struct {
		Items []ticketInput `json:"items" validate:"min=1,dive"`
	}
)

// Idea validates {originalIdea, enhancedIdea}. The returned Idea has no ID
// or timestamp yet.
func (v *Validator) Idea(body []byte) (model.Idea, error) {
	details := apperror.Details{}
	var in ideaInput
	if decode(body, &in, "", details) {
		if err := v.check(in, details); err != nil {
			return model.Idea{}, err
		}
	}
	if err := result(details); err != nil {
		return model.Idea{}, err
	}
	return model.Idea{OriginalIdea: in.OriginalIdea, EnhancedIdea: in.EnhancedIdea}, nil
}

// Scores validates a non-empty array of scores.
func (v *Validator) Scores(body []byte) ([]model.Score, error) {
	details := apperror.Details{}
	items := decodeItems[scoreInput](body, details)
	if items != nil {
		if err := v.check(scoreBatch{Items: items}, details); err != nil {
			return nil, err
		}
	}
	if err := result(details); err != nil {
		return nil, err
	}

	scores := make([]model.Score, len(items))
	for i, in := range items {
		scores[i] = model.Score{
			Dimension:     in.Dimension,
			Score:         int(*in.Score),
			Justification: in.Justification,
		}
	}
	return scores, nil
}

func (v *Validator) Improvements(body []byte) ([]model.Improvement, error) {
	details := apperror.Details{}
	items := decodeItems[improvementInput](body, details)
	if items != nil {
		if err := v.check(improvementBatch{Items: items}, details); err != nil {
			return nil, err
		}
	}
	if err := result(details); err != nil {
		return nil, err
	}

	out := make([]model.Improvement, len(items))
	for i, in := range items {
		out[i] = model.Improvement{Dimension: in.Dimension, Suggestion: in.Suggestion}
	}
	return out, nil
}

func (v *Validator) Features(body []byte) ([]model.Feature, error) {
	details := apperror.Details{}
	items := decodeItems[featureInput](body, details)
	if items != nil {
		if err := v.check(featureBatch{Items: items}, details); err != nil {
			return nil, err
		}
	}
	if err := result(details); err != nil {
		return nil, err
	}

	out := make([]model.Feature, len(items))
	for i, in := range items {
		out[i] = model.Feature{
			Name:        in.Name,
			Description: in.Description,
			Priority:    model.Priority(in.Priority),
		}
	}
	return out, nil
}

func (v *Validator) TechStack(body []byte) ([]model.TechStackItem, error) {
	details := apperror.Details{}
	items := decodeItems[techStackInput](body, details)
	if items != nil {
		if err := v.check(techStackBatch{Items: items}, details); err != nil {
			return nil, err
		}
	}
	if err := result(details); err != nil {
		return nil, err
	}

	out := make([]model.TechStackItem, len(items))
	for i, in := range items {
		out[i] = model.TechStackItem{
			Category:      in.Category,
			Technology:    in.Technology,
			Justification: in.Justification,
		}
	}
	return out, nil
}

// KanbanTickets validates a non-empty array of tickets. Tickets without a
// status get model.DefaultTicketStatus.
func (v *Validator) KanbanTickets(body []byte) ([]model.KanbanTicket, error) {
	details := apperror.Details{}
	items := decodeItems[ticketInput](body, details)
	if items != nil {
		if err := v.check(ticketBatch{Items: items}, details); err != nil {
			return nil, err
		}
	}
	if err := result(details); err != nil {
		return nil, err
	}

	out := make([]model.KanbanTicket, len(items))
	for i, in := range items {
		status := model.DefaultTicketStatus
		if in.Status != nil {
			status = model.TicketStatus(*in.Status)
		}
		out[i] = model.KanbanTicket{
			Title:       in.Title,
			Description: in.Description,
			Status:      status,
			Effort:      in.Effort,
		}
	}
	return out, nil
}

// TicketStatus validates {status}.
func (v *Validator) TicketStatus(body []byte) (model.TicketStatus, error) {
	details := apperror.Details{}
	var in statusInput
	if decode(body, &in, "", details) {
		if err := v.check(in, details); err != nil {
			return "", err
		}
	}
	if err := result(details); err != nil {
		return "", err
	}
	return model.TicketStatus(in.Status), nil
}

// UserFlow validates {nodes, edges}. Edge endpoints are not cross-checked
// against node ids.
func (v *Validator) UserFlow(body []byte) (model.UserFlow, error) {
	details := apperror.Details{}
	var in userFlowInput
	if decode(body, &in, "", details) {
		if err := v.check(in, details); err != nil {
			return model.UserFlow{}, err
		}
	}
	if err := result(details); err != nil {
		return model.UserFlow{}, err
	}

	flow := model.UserFlow{
		Nodes: make([]model.FlowNode, len(in.Nodes)),
		Edges: make([]model.FlowEdge, len(in.Edges)),
	}
	for i, n := range in.Nodes {
		flow.Nodes[i] = model.FlowNode{ID: n.ID, Type: n.Type, Label: n.Label, Description: n.Description}
	}
	for i, e := range in.Edges {
		flow.Edges[i] = model.FlowEdge{ID: e.ID, Source: e.Source, Target: e.Target, Label: e.Label, Condition: e.Condition}
	}
	return flow, nil
}
