//go:build integration

package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"itemsvc/internal/config"
	"itemsvc/internal/model"
)

func TestPublisherIntegration(t *testing.T) {
	ctx := context.Background()
	amqpURL, cleanup := setupRabbitMQContainer(t, ctx)
	defer cleanup()

	cfg := &config.Config{
		RabbitMQURL:    amqpURL,
		RabbitExchange: "items",
	}
	publisher := NewPublisher(cfg, zap.NewNop())
	publishCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() { _ = publisher.Start(publishCtx) }()

	conn, err := amqp.Dial(amqpURL)
	require.NoError(t, err)
	defer conn.Close()

	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	require.NoError(t, ch.ExchangeDeclare(cfg.RabbitExchange, "topic", true, false, false, false, nil))
	q, err := ch.QueueDeclare("items.changes.test", true, false, false, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "items.#", cfg.RabbitExchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "publisher-test", true, false, false, false, nil)
	require.NoError(t, err)

	body, err := json.Marshal(model.Event{Type: model.EventItemCreated, Item: &model.Item{ID: 3, Name: "x"}})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, body, "items."+model.EventItemCreated))

	select {
	case msg := <-deliveries:
		var got model.Event
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		require.Equal(t, model.EventItemCreated, got.Type)
		require.Equal(t, 3, got.Item.ID)
		require.Equal(t, "items."+model.EventItemCreated, msg.RoutingKey)
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for published message")
	}
}

// setupRabbitMQContainer is defined in testhelpers_integration.go
