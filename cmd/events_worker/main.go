package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-identity-service/config"
	"github.com/oksasatya/go-identity-service/internal/application"
	"github.com/oksasatya/go-identity-service/internal/container"
	mqinfra "github.com/oksasatya/go-identity-service/internal/infrastructure/rabbitmq"
	"github.com/oksasatya/go-identity-service/pkg/helpers"
)

// events_worker keeps the user directory index in step with the store by
// re-projecting every user named in a lifecycle event.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-events-worker", cfg.Env)

	if !cfg.SearchEnabled {
		logger.Info("SEARCH_ENABLED=false; events worker has nothing to project")
		return
	}
	// The worker consumes; it must not publish its own events back.
	cfg.EventsEnabled = false

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer c.Close()

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQUserEventsQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries(cfg.AppName + "-events-worker")
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	logger.WithField("queue", cfg.RabbitMQUserEventsQueue).Info("events worker listening")
	mqinfra.Consume(ctx, msgs, func(ctx context.Context, ev application.UserEvent) error {
		res := c.Service.SyncDirectory(ctx, ev.UserID)
		switch res.Kind {
		case application.KindNone:
			return nil
		case application.KindUserNotFound:
			return mqinfra.ErrDrop
		default:
			return fmt.Errorf("sync %s: %s", ev.UserID, res.Kind)
		}
	}, logger)
	logger.Info("events worker stopped")
}
