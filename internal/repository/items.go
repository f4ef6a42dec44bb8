package repository

import (
	"context"

	"itemsvc/internal/model"
)

type ItemRepository interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	GetItem(ctx context.Context, id int) (model.Item, error)
	CountItems(ctx context.Context) (int, error)
	// AppendItems assigns ids to the given names in one batch and returns the new records.
	AppendItems(ctx context.Context, names []string) ([]model.Item, error)
	UpdateItemName(ctx context.Context, id int, name string) (model.Item, error)
	ClearItems(ctx context.Context) error
}
