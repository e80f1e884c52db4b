package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-service/internal/application"
)

// ErrDrop tells Consume to discard a message instead of requeueing it.
var ErrDrop = errors.New("drop message")

type Handler func(ctx context.Context, ev application.UserEvent) error

// Consume decodes user events from msgs and hands them to h until msgs is
// closed or ctx is done. Undecodable messages and ErrDrop results are
// nacked without requeue; other handler errors are requeued.
func Consume(ctx context.Context, msgs <-chan amqp.Delivery, h Handler, logger *logrus.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-msgs:
			if !open {
				return
			}
			handle(ctx, msg, h, logger)
		}
	}
}

func handle(ctx context.Context, msg amqp.Delivery, h Handler, logger *logrus.Logger) {
	var ev application.UserEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil || ev.UserID == "" {
		logger.WithField("message_id", msg.MessageId).Warn("bad user event message")
		_ = msg.Nack(false, false)
		return
	}
	fields := logrus.Fields{"event": ev.Type, "user_id": ev.UserID, "message_id": msg.MessageId}
	if err := h(ctx, ev); err != nil {
		requeue := !errors.Is(err, ErrDrop)
		logger.WithFields(fields).WithError(err).WithField("requeue", requeue).Warn("user event not handled")
		_ = msg.Nack(false, requeue && !msg.Redelivered)
		return
	}
	_ = msg.Ack(false)
	logger.WithFields(fields).Debug("user event handled")
}
