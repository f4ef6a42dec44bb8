package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"itemsvc/internal/config"
	"itemsvc/internal/domain"
	"itemsvc/internal/events"
	"itemsvc/internal/model"
	"itemsvc/internal/store/memory"
)

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, payload []byte, routingKey string) error {
	args := m.Called(ctx, payload, routingKey)
	return args.Error(0)
}

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 500_000_000, time.UTC)

func newTestService(t *testing.T, pub *publisherMock) (*Service, *events.Hub) {
	t.Helper()
	store := memory.New(zap.NewNop())
	hub := events.NewHub()
	svc := NewService(&config.Config{RabbitPublishPrefix: "items"}, store, store, hub, pub, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, hub
}

func quietPublisher() *publisherMock {
	pub := &publisherMock{}
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return pub
}

func TestServiceStatus(t *testing.T) {
	svc, _ := newTestService(t, quietPublisher())
	status := svc.Status()
	require.Equal(t, "OK", status.Status)
	require.Equal(t, "2024-05-06T07:08:09.500Z", status.Timestamp.String())
}

func TestServiceCreateItem(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		pub := &publisherMock{}
		svc, _ := newTestService(t, pub)

		_, err := svc.CreateItem(context.Background(), "")
		require.ErrorIs(t, err, domain.ErrValidation)
		require.Equal(t, domain.MsgItemNameRequired, err.Error())

		count, err := svc.CountItems(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, count)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("assigns next id and publishes", func(t *testing.T) {
		pub := &publisherMock{}
		pub.On("Publish", mock.Anything, mock.Anything, "items."+model.EventItemCreated).Return(nil).Once()
		svc, _ := newTestService(t, pub)

		created, err := svc.CreateItem(context.Background(), "Third")
		require.NoError(t, err)
		require.Equal(t, model.Item{ID: 3, Name: "Third"}, created)
		pub.AssertExpectations(t)

		var event model.Event
		require.NoError(t, json.Unmarshal(pub.Calls[0].Arguments.Get(1).([]byte), &event))
		require.Equal(t, model.EventItemCreated, event.Type)
		require.Equal(t, created, *event.Item)
	})

	t.Run("publish failure does not fail create", func(t *testing.T) {
		pub := &publisherMock{}
		pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
		svc, _ := newTestService(t, pub)

		created, err := svc.CreateItem(context.Background(), "x")
		require.NoError(t, err)
		require.Equal(t, 3, created.ID)
		pub.AssertExpectations(t)
	})

	t.Run("broadcasts to subscribers", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		svc, hub := newTestService(t, quietPublisher())
		go hub.Run(ctx)

		client := &events.Client{Ch: make(chan model.Event, 1)}
		hub.Register(client)
		defer hub.Unregister(client)

		_, err := svc.CreateItem(context.Background(), "streamed")
		require.NoError(t, err)

		select {
		case got := <-client.Ch:
			require.Equal(t, model.EventItemCreated, got.Type)
			require.Equal(t, "streamed", got.Item.Name)
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("expected broadcast to client")
		}
	})
}

func TestServiceBulkCreateItems(t *testing.T) {
	t.Run("skips empty names with contiguous ids", func(t *testing.T) {
		svc, _ := newTestService(t, quietPublisher())

		added, err := svc.BulkCreateItems(context.Background(), []string{"a", "", "b"})
		require.NoError(t, err)
		require.Equal(t, []model.Item{{ID: 3, Name: "a"}, {ID: 4, Name: "b"}}, added)
	})

	t.Run("nothing added", func(t *testing.T) {
		svc, _ := newTestService(t, quietPublisher())

		_, err := svc.BulkCreateItems(context.Background(), []string{"", ""})
		require.ErrorIs(t, err, domain.ErrValidation)
		require.Equal(t, domain.MsgBulkNothingAdded, err.Error())

		count, err := svc.CountItems(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})
}

func TestServiceSearchItems(t *testing.T) {
	svc, _ := newTestService(t, quietPublisher())
	ctx := context.Background()

	_, err := svc.SearchItems(ctx, "")
	require.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.SearchItems(ctx, "first")
	require.NoError(t, err)
	require.Equal(t, []model.Item{{ID: 1, Name: "First item"}}, got)

	got, err = svc.SearchItems(ctx, "ITEM")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].ID)
	require.Equal(t, 2, got[1].ID)

	got, err = svc.SearchItems(ctx, "missing")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestServiceUpdateItem(t *testing.T) {
	svc, _ := newTestService(t, quietPublisher())
	ctx := context.Background()

	updated, err := svc.UpdateItem(ctx, 1, "Renamed")
	require.NoError(t, err)
	require.Equal(t, model.Item{ID: 1, Name: "Renamed"}, updated)

	again, err := svc.UpdateItem(ctx, 1, "Renamed")
	require.NoError(t, err)
	require.Equal(t, updated, again)

	_, err = svc.UpdateItem(ctx, 99, "x")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateItem(ctx, 1, "")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateItem(ctx, 99, "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServiceClearItems(t *testing.T) {
	pub := &publisherMock{}
	pub.On("Publish", mock.Anything, mock.Anything, "items."+model.EventItemsCleared).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.Anything, "items."+model.EventItemCreated).Return(nil).Once()
	svc, _ := newTestService(t, pub)
	ctx := context.Background()

	require.NoError(t, svc.ClearItems(ctx))
	count, err := svc.CountItems(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	created, err := svc.CreateItem(ctx, "fresh")
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)
	pub.AssertExpectations(t)
}

func TestServiceCreateUser(t *testing.T) {
	t.Run("missing username", func(t *testing.T) {
		svc, _ := newTestService(t, quietPublisher())

		_, err := svc.CreateUser(context.Background(), "", "a@b.com")
		require.ErrorIs(t, err, domain.ErrValidation)
		require.Equal(t, domain.MsgUserFieldsRequired, err.Error())
	})

	t.Run("count based ids", func(t *testing.T) {
		svc, _ := newTestService(t, quietPublisher())

		first, err := svc.CreateUser(context.Background(), "alice", "a@b.com")
		require.NoError(t, err)
		require.Equal(t, 1, first.ID)
		require.Equal(t, "2024-05-06T07:08:09.500Z", first.CreatedAt.String())

		second, err := svc.CreateUser(context.Background(), "bob", "b@b.com")
		require.NoError(t, err)
		require.Equal(t, 2, second.ID)
	})
}
