package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"itemsvc/internal/config"
	"itemsvc/internal/domain"
	"itemsvc/internal/events"
	"itemsvc/internal/model"
	"itemsvc/internal/queue"
	"itemsvc/internal/repository"
)

type Service struct {
	items  repository.ItemRepository
	users  repository.UserRepository
	hub    *events.Hub
	pub    queue.Publisher
	prefix string
	log    *zap.Logger
	now    func() time.Time
}

func NewService(
	cfg *config.Config,
	items repository.ItemRepository,
	users repository.UserRepository,
	hub *events.Hub,
	publisher queue.Publisher,
	logger *zap.Logger,
) *Service {
	prefix := cfg.RabbitPublishPrefix
	if prefix == "" {
		prefix = "items"
	}
	return &Service{
		items:  items,
		users:  users,
		hub:    hub,
		pub:    publisher,
		prefix: prefix,
		log:    logger,
		now:    time.Now,
	}
}

// Status is the payload of the status endpoint.
type Status struct {
	Status    string          `json:"status"`
	Timestamp model.Timestamp `json:"timestamp"`
}

func (s *Service) Status() Status {
	return Status{Status: domain.StatusOK, Timestamp: model.NewTimestamp(s.now())}
}

func (s *Service) ListItems(ctx context.Context) ([]model.Item, error) {
	return s.items.ListItems(ctx)
}

func (s *Service) GetItem(ctx context.Context, id int) (model.Item, error) {
	return s.items.GetItem(ctx, id)
}

func (s *Service) CountItems(ctx context.Context) (int, error) {
	return s.items.CountItems(ctx)
}

func (s *Service) CreateItem(ctx context.Context, name string) (model.Item, error) {
	if name == "" {
		return model.Item{}, domain.NewValidationError(domain.MsgItemNameRequired)
	}
	added, err := s.items.AppendItems(ctx, []string{name})
	if err != nil {
		s.log.Error("store append item failed", zap.String("name", name), zap.Error(err))
		return model.Item{}, err
	}
	created := added[0]
	s.emit(ctx, model.Event{Type: model.EventItemCreated, Item: &created})
	return created, nil
}

// BulkCreateItems adds every candidate with a non-empty name and skips the rest.
// It fails only when nothing could be added.
func (s *Service) BulkCreateItems(ctx context.Context, names []string) ([]model.Item, error) {
	valid := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			valid = append(valid, name)
		}
	}
	if len(valid) == 0 {
		return nil, domain.NewValidationError(domain.MsgBulkNothingAdded)
	}

	added, err := s.items.AppendItems(ctx, valid)
	if err != nil {
		s.log.Error("store bulk append failed", zap.Int("count", len(valid)), zap.Error(err))
		return nil, err
	}
	for i := range added {
		item := added[i]
		s.emit(ctx, model.Event{Type: model.EventItemCreated, Item: &item})
	}
	return added, nil
}

// SearchItems matches query as a case-insensitive substring of the item name.
func (s *Service) SearchItems(ctx context.Context, query string) ([]model.Item, error) {
	if query == "" {
		return nil, domain.NewValidationError(domain.MsgSearchNameRequired)
	}
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	result := make([]model.Item, 0)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			result = append(result, item)
		}
	}
	return result, nil
}

// UpdateItem renames item id. An unknown id is reported before an empty name.
func (s *Service) UpdateItem(ctx context.Context, id int, name string) (model.Item, error) {
	if name == "" {
		if _, err := s.items.GetItem(ctx, id); err != nil {
			return model.Item{}, err
		}
		return model.Item{}, domain.NewValidationError(domain.MsgItemNameRequired)
	}
	updated, err := s.items.UpdateItemName(ctx, id, name)
	if err != nil {
		return model.Item{}, err
	}
	s.emit(ctx, model.Event{Type: model.EventItemUpdated, Item: &updated})
	return updated, nil
}

func (s *Service) ClearItems(ctx context.Context) error {
	if err := s.items.ClearItems(ctx); err != nil {
		s.log.Error("store clear items failed", zap.Error(err))
		return err
	}
	s.emit(ctx, model.Event{Type: model.EventItemsCleared})
	return nil
}

func (s *Service) CreateUser(ctx context.Context, username, email string) (model.User, error) {
	if username == "" || email == "" {
		return model.User{}, domain.NewValidationError(domain.MsgUserFieldsRequired)
	}
	created, err := s.users.CreateUser(ctx, model.User{
		Username:  username,
		Email:     email,
		CreatedAt: model.NewTimestamp(s.now()),
	})
	if err != nil {
		s.log.Error("store create user failed", zap.String("username", username), zap.Error(err))
		return model.User{}, err
	}
	s.emit(ctx, model.Event{Type: model.EventUserCreated, User: &created})
	return created, nil
}

// emit fans the event out to stream subscribers and the broker. Broker
// failures are logged and never reach the caller.
func (s *Service) emit(ctx context.Context, event model.Event) {
	event.OccurredAt = model.NewTimestamp(s.now())
	s.hub.Broadcast(event)

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error("event marshal failed", zap.String("type", event.Type), zap.Error(err))
		return
	}
	routingKey := s.prefix + "." + event.Type
	if err := s.pub.Publish(ctx, payload, routingKey); err != nil {
		s.log.Warn("event publish failed", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
