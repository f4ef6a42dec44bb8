package memory

import (
	"context"

	"go.uber.org/zap"
	"itemsvc/internal/domain"
	"itemsvc/internal/model"
)

func (s *Store) ListItems(_ context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Item, len(s.items))
	copy(result, s.items)
	return result, nil
}

func (s *Store) GetItem(_ context.Context, id int) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Item{}, domain.NewNotFoundError(domain.MsgItemNotFound)
	}
	return s.items[idx], nil
}

func (s *Store) CountItems(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

func (s *Store) AppendItems(_ context.Context, names []string) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nextID := s.nextItemID()
	added := make([]model.Item, 0, len(names))
	for _, name := range names {
		item := model.Item{ID: nextID, Name: name}
		nextID++
		s.items = append(s.items, item)
		added = append(added, item)
	}
	return added, nil
}

func (s *Store) UpdateItemName(_ context.Context, id int, name string) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Item{}, domain.NewNotFoundError(domain.MsgItemNotFound)
	}
	s.items[idx].Name = name
	return s.items[idx], nil
}

func (s *Store) ClearItems(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("clearing items", zap.Int("count", len(s.items)))
	s.items = []model.Item{}
	return nil
}

// nextItemID follows the last item. Ids only ever grow, so the last id is also the max.
func (s *Store) nextItemID() int {
	if len(s.items) == 0 {
		return 1
	}
	return s.items[len(s.items)-1].ID + 1
}

func (s *Store) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
