package memory

import (
	"context"
	"time"

	"itemsvc/internal/model"
)

// CreateUser numbers users by count, unlike items.
func (s *Store) CreateUser(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = len(s.users) + 1
	if user.CreatedAt.Time().IsZero() {
		user.CreatedAt = model.NewTimestamp(time.Now())
	}
	s.users = append(s.users, user)
	return user, nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}
