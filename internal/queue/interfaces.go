// Package queue abstracts the message broker used for item intake and
// change publishing.
package queue

import (
	"context"
	"errors"
)

// ErrBacklogFull is returned by Publish when the outgoing buffer is full and
// the event was dropped.
var ErrBacklogFull = errors.New("publish backlog full")

// Consumer feeds broker messages into the catalog until ctx is done.
type Consumer interface {
	Start(ctx context.Context) error
}

// Publisher queues one serialized change event under routingKey. It must not
// block on the broker.
type Publisher interface {
	Publish(ctx context.Context, payload []byte, routingKey string) error
}

// Dispatcher is a Publisher that delivers its backlog from Start until ctx is done.
type Dispatcher interface {
	Publisher
	Start(ctx context.Context) error
}
