package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/ideaforge/internal/apperror"
	"github.com/sakif/ideaforge/internal/model"
	"github.com/sakif/ideaforge/internal/repository"
)

// mockStore is an in-memory repository.Store. Setting failWith makes every
// call return that error, which is how tests simulate a broken database.
type mockStore struct {
	ideas        map[string]*model.Idea
	order        []string
	scores       []model.Score
	improvements []model.Improvement
	features     []model.Feature
	techStack    []model.TechStackItem
	tickets      []model.KanbanTicket
	nextID       int
	failWith     error
}

var _ repository.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{ideas: make(map[string]*model.Idea)}
}

func (m *mockStore) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *mockStore) CreateIdea(_ context.Context, idea *model.Idea) error {
	if m.failWith != nil {
		return m.failWith
	}
	idea.ID = m.id("idea")
	idea.CreatedAt = time.Now().UTC()
	stored := *idea
	m.ideas[idea.ID] = &stored
	m.order = append(m.order, idea.ID)
	return nil
}

func (m *mockStore) GetIdea(_ context.Context, id string) (*model.Idea, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	idea, ok := m.ideas[id]
	if !ok {
		return nil, apperror.NotFound("Idea")
	}
	result := *idea
	return &result, nil
}

func (m *mockStore) ListIdeas(_ context.Context) ([]model.IdeaSummary, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []model.IdeaSummary{}
	for i := len(m.order) - 1; i >= 0; i-- {
		idea := m.ideas[m.order[i]]
		out = append(out, model.IdeaSummary{
			ID:           idea.ID,
			OriginalIdea: idea.OriginalIdea,
			EnhancedIdea: idea.EnhancedIdea,
			CreatedAt:    idea.CreatedAt,
		})
	}
	return out, nil
}

func (m *mockStore) IdeaExists(_ context.Context, id string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	_, ok := m.ideas[id]
	return ok, nil
}

func (m *mockStore) ReplaceUserFlow(_ context.Context, id string, flow model.UserFlow) error {
	if m.failWith != nil {
		return m.failWith
	}
	idea, ok := m.ideas[id]
	if !ok {
		return apperror.NotFound("Idea")
	}
	idea.UserFlow = &flow
	return nil
}

// createChildren mirrors the bookkeeping sqldb does on insert.
func createChildren[T any](m *mockStore, dst *[]T, items []T, stamp func(*T, string, int)) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i := range items {
		stamp(&items[i], m.id("rec"), i)
	}
	*dst = append(*dst, items...)
	return nil
}

func listChildren[T any](m *mockStore, all []T, ideaID func(T) string, id string) ([]T, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []T{}
	for _, item := range all {
		if ideaID(item) == id {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockStore) CreateScores(_ context.Context, ideaID string, items []model.Score) error {
	return createChildren(m, &m.scores, items, func(s *model.Score, id string, seq int) {
		s.ID, s.IdeaID, s.Seq, s.CreatedAt = id, ideaID, seq, time.Now().UTC()
	})
}

func (m *mockStore) ListScores(_ context.Context, ideaID string) ([]model.Score, error) {
	return listChildren(m, m.scores, func(s model.Score) string { return s.IdeaID }, ideaID)
}

func (m *mockStore) CreateImprovements(_ context.Context, ideaID string, items []model.Improvement) error {
	return createChildren(m, &m.improvements, items, func(s *model.Improvement, id string, seq int) {
		s.ID, s.IdeaID, s.Seq, s.CreatedAt = id, ideaID, seq, time.Now().UTC()
	})
}

func (m *mockStore) ListImprovements(_ context.Context, ideaID string) ([]model.Improvement, error) {
	return listChildren(m, m.improvements, func(s model.Improvement) string { return s.IdeaID }, ideaID)
}

func (m *mockStore) CreateFeatures(_ context.Context, ideaID string, items []model.Feature) error {
	return createChildren(m, &m.features, items, func(f *model.Feature, id string, seq int) {
		f.ID, f.IdeaID, f.Seq, f.CreatedAt = id, ideaID, seq, time.Now().UTC()
	})
}

func (m *mockStore) ListFeatures(_ context.Context, ideaID string) ([]model.Feature, error) {
	return listChildren(m, m.features, func(f model.Feature) string { return f.IdeaID }, ideaID)
}

func (m *mockStore) CreateTechStack(_ context.Context, ideaID string, items []model.TechStackItem) error {
	return createChildren(m, &m.techStack, items, func(t *model.TechStackItem, id string, seq int) {
		t.ID, t.IdeaID, t.Seq, t.CreatedAt = id, ideaID, seq, time.Now().UTC()
	})
}

func (m *mockStore) ListTechStack(_ context.Context, ideaID string) ([]model.TechStackItem, error) {
	return listChildren(m, m.techStack, func(t model.TechStackItem) string { return t.IdeaID }, ideaID)
}

func (m *mockStore) CreateTickets(_ context.Context, ideaID string, items []model.KanbanTicket) error {
	return createChildren(m, &m.tickets, items, func(k *model.KanbanTicket, id string, seq int) {
		k.ID, k.IdeaID, k.Seq, k.CreatedAt = id, ideaID, seq, time.Now().UTC()
	})
}

func (m *mockStore) ListTickets(_ context.Context, ideaID string) ([]model.KanbanTicket, error) {
	return listChildren(m, m.tickets, func(k model.KanbanTicket) string { return k.IdeaID }, ideaID)
}

func (m *mockStore) GetTicket(_ context.Context, id string) (*model.KanbanTicket, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, t := range m.tickets {
		if t.ID == id {
			result := t
			return &result, nil
		}
	}
	return nil, apperror.NotFound("Ticket")
}

func (m *mockStore) UpdateTicketStatus(_ context.Context, id string, status model.TicketStatus) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			m.tickets[i].Status = status
			return nil
		}
	}
	return apperror.NotFound("Ticket")
}

func (m *mockStore) Ping(_ context.Context) error {
	return m.failWith
}
