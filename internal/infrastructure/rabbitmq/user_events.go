// Package rabbitmq publishes user lifecycle events to an AMQP queue and
// drives consumers of that queue.
package rabbitmq

import (
	"context"
	"time"

	"github.com/oksasatya/go-identity-service/internal/application"
)

const publishTimeout = 3 * time.Second

// jsonPublisher is satisfied by *helpers.RabbitPublisher.
type jsonPublisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

type UserEventPublisher struct {
	pub jsonPublisher
}

func NewUserEventPublisher(pub jsonPublisher) *UserEventPublisher {
	return &UserEventPublisher{pub: pub}
}

// Publish sends ev with the event type as the AMQP message type. A slow
// broker cannot hold the request longer than publishTimeout.
func (p *UserEventPublisher) Publish(ctx context.Context, ev application.UserEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return p.pub.PublishJSON(ctx, ev.Type, ev)
}

var _ application.EventPublisher = (*UserEventPublisher)(nil)
