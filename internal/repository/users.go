package repository

import (
	"context"

	"itemsvc/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	CountUsers(ctx context.Context) (int, error)
}
