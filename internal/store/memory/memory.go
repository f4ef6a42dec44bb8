package memory

import (
	"sync"

	"go.uber.org/zap"
	"itemsvc/internal/model"
)

// Store keeps items and users in process memory. A single mutex guards both
// collections so that id assignment and append happen atomically.
type Store struct {
	mu    sync.Mutex
	items []model.Item
	users []model.User
	log   *zap.Logger
}

func SeedItems() []model.Item {
	return []model.Item{
		{ID: 1, Name: "First item"},
		{ID: 2, Name: "Second item"},
	}
}

func New(logger *zap.Logger) *Store {
	return &Store{items: SeedItems(), log: logger}
}
