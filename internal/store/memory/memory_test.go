package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"itemsvc/internal/domain"
	"itemsvc/internal/model"
)

func TestStoreSeed(t *testing.T) {
	store := New(zap.NewNop())

	items, err := store.ListItems(context.Background())
	require.NoError(t, err)
	require.Equal(t, SeedItems(), items)

	users, err := store.CountUsers(context.Background())
	require.NoError(t, err)
	require.Zero(t, users)
}

func TestStoreInstancesAreIndependent(t *testing.T) {
	ctx := context.Background()
	a := New(zap.NewNop())
	b := New(zap.NewNop())

	require.NoError(t, a.ClearItems(ctx))

	count, err := b.CountItems(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestStoreAppendItems(t *testing.T) {
	ctx := context.Background()

	t.Run("continues after last id", func(t *testing.T) {
		store := New(zap.NewNop())
		added, err := store.AppendItems(ctx, []string{"a", "b", "c"})
		require.NoError(t, err)
		require.Equal(t, []model.Item{{ID: 3, Name: "a"}, {ID: 4, Name: "b"}, {ID: 5, Name: "c"}}, added)
	})

	t.Run("starts at one after clear", func(t *testing.T) {
		store := New(zap.NewNop())
		require.NoError(t, store.ClearItems(ctx))
		added, err := store.AppendItems(ctx, []string{"x"})
		require.NoError(t, err)
		require.Equal(t, 1, added[0].ID)
	})

	t.Run("list returns a copy", func(t *testing.T) {
		store := New(zap.NewNop())
		items, err := store.ListItems(ctx)
		require.NoError(t, err)
		items[0].Name = "mutated"

		got, err := store.GetItem(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, "First item", got.Name)
	})
}

func TestStoreUpdateAndGet(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())

	updated, err := store.UpdateItemName(ctx, 2, "renamed")
	require.NoError(t, err)
	require.Equal(t, model.Item{ID: 2, Name: "renamed"}, updated)

	got, err := store.GetItem(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, updated, got)

	_, err = store.UpdateItemName(ctx, 42, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.GetItem(ctx, 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreCreateUser(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())
	createdAt := model.NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	first, err := store.CreateUser(ctx, model.User{Username: "a", Email: "a@b.com", CreatedAt: createdAt})
	require.NoError(t, err)
	require.Equal(t, 1, first.ID)
	require.Equal(t, createdAt, first.CreatedAt)

	second, err := store.CreateUser(ctx, model.User{Username: "b", Email: "b@b.com"})
	require.NoError(t, err)
	require.Equal(t, 2, second.ID)
	require.False(t, second.CreatedAt.Time().IsZero())
}

func TestStoreConcurrentAppendKeepsIDsUnique(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.AppendItems(ctx, []string{"x", "y"}); err != nil {
				t.Errorf("append: %v", err)
			}
		}()
	}
	wg.Wait()

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2+workers*2)
	for i := 1; i < len(items); i++ {
		require.Greater(t, items[i].ID, items[i-1].ID)
	}
}
