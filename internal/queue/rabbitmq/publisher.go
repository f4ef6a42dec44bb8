package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"itemsvc/internal/config"
	"itemsvc/internal/queue"
)

const (
	defaultPublishBuffer  = 256
	defaultDialTimeout    = 5 * time.Second
	publishTimeout        = 5 * time.Second
	publisherHeartbeat    = 10 * time.Second
	publisherRetryBackoff = time.Second
)

type noopPublisher struct{}

func (n *noopPublisher) Publish(context.Context, []byte, string) error {
	return nil
}

func (n *noopPublisher) Start(context.Context) error {
	return nil
}

type outgoing struct {
	routingKey string
	headers    amqp.Table
	payload    []byte
}

// Publisher buffers change events and delivers them to a topic exchange over
// one long-lived connection owned by Start.
type Publisher struct {
	url         string
	exchange    string
	dialTimeout time.Duration
	pending     chan outgoing
	logger      *zap.Logger

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg *config.Config, logger *zap.Logger) queue.Dispatcher {
	if cfg.RabbitMQURL == "" {
		return &noopPublisher{}
	}
	buffer := cfg.RabbitPublishBuffer
	if buffer <= 0 {
		buffer = defaultPublishBuffer
	}
	dialTimeout := cfg.RabbitDialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	return &Publisher{
		url:         cfg.RabbitMQURL,
		exchange:    cfg.RabbitExchange,
		dialTimeout: dialTimeout,
		pending:     make(chan outgoing, buffer),
		logger:      logger,
	}
}

// Publish captures the trace context of ctx and queues the event. It drops the
// event with queue.ErrBacklogFull rather than wait for the broker.
func (p *Publisher) Publish(ctx context.Context, payload []byte, routingKey string) error {
	headers := amqp.Table{}
	otel.GetTextMapPropagator().Inject(ctx, amqpHeaderCarrier(headers))

	select {
	case p.pending <- outgoing{routingKey: routingKey, headers: headers, payload: payload}:
		return nil
	default:
		return queue.ErrBacklogFull
	}
}

// Start delivers queued events until ctx is done. A failed delivery drops the
// event and the connection; the next event redials.
func (p *Publisher) Start(ctx context.Context) error {
	defer p.disconnect()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-p.pending:
			if err := p.deliver(ctx, msg); err != nil {
				p.logger.Warn("rabbitmq publish failed, event dropped",
					zap.String("routing_key", msg.routingKey),
					zap.Error(err),
				)
				p.disconnect()
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(publisherRetryBackoff):
				}
			}
		}
	}
}

func (p *Publisher) deliver(ctx context.Context, msg outgoing) error {
	if err := p.connect(); err != nil {
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.ch.PublishWithContext(publishCtx,
		p.exchange,
		msg.routingKey,
		false,
		false,
		amqp.Publishing{
			Headers:      msg.headers,
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         msg.routingKey,
			Body:         msg.payload,
		},
	); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func (p *Publisher) connect() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.disconnect()

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: publisherHeartbeat,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := declareExchange(ch, p.exchange); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}
	p.conn, p.ch = conn, ch
	p.logger.Info("rabbitmq publisher connected", zap.String("exchange", p.exchange))
	return nil
}

func (p *Publisher) disconnect() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func declareExchange(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	return nil
}
