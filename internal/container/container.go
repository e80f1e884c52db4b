// Package container builds the application graph from configuration and
// owns the lifetime of every external client it opens.
package container

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-service/config"
	"github.com/oksasatya/go-identity-service/internal/application"
	"github.com/oksasatya/go-identity-service/internal/domain/repository"
	"github.com/oksasatya/go-identity-service/internal/domain/security"
	esinfra "github.com/oksasatya/go-identity-service/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/go-identity-service/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-identity-service/internal/infrastructure/postgres"
	mqinfra "github.com/oksasatya/go-identity-service/internal/infrastructure/rabbitmq"
	redisinfra "github.com/oksasatya/go-identity-service/internal/infrastructure/redis"
	"github.com/oksasatya/go-identity-service/pkg/helpers"
)

// Container holds constructed components shared by the router and commands.
// Optional clients are nil when their feature is disabled.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	RabbitPub *helpers.RabbitPublisher
	ES        *elasticsearch.Client

	JWT     *helpers.JWTManager
	Users   repository.UserRepository
	Tokens  security.TokenIssuer
	Service *application.Service

	closers []func()
}

// New wires the graph. On error everything opened so far is closed.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}
	ready := false
	defer func() {
		if !ready {
			c.Close()
		}
	}()

	var err error
	if err = c.initStore(ctx); err != nil {
		return nil, err
	}

	c.JWT = helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	c.Tokens = c.JWT
	if cfg.SessionsEnabled {
		c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		c.closers = append(c.closers, func() { _ = c.Redis.Close() })
		if err = helpers.PingRedis(ctx, c.Redis); err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		c.Tokens = redisinfra.NewSessionIssuer(c.Redis, c.JWT, logger)
	}

	var opts []application.Option
	if cfg.EventsEnabled {
		c.RabbitPub, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQUserEventsQueue, cfg.AppName)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		c.closers = append(c.closers, c.RabbitPub.Close)
		opts = append(opts, application.WithEventPublisher(mqinfra.NewUserEventPublisher(c.RabbitPub)))
	}
	if cfg.SearchEnabled {
		c.ES, err = helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			return nil, fmt.Errorf("elasticsearch: %w", err)
		}
		opts = append(opts, application.WithUserIndex(esinfra.NewUserIndex(c.ES, cfg.ESUsersIndex)))
	}

	c.Service = application.NewService(c.Users, helpers.NewBcryptHasher(cfg.BcryptCost), c.Tokens, logger, opts...)
	logger.WithFields(logrus.Fields{
		"store":    cfg.StoreDriver,
		"sessions": cfg.SessionsEnabled,
		"events":   cfg.EventsEnabled,
		"search":   cfg.SearchEnabled,
	}).Info("container ready")
	ready = true
	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	cfg := c.Config
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		c.Users = memory.NewUserRepository()
		return nil
	case config.StoreDriverPostgres:
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, c.Logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
			DSN:         cfg.PostgresDSN(),
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
			AppName:     cfg.AppName,
		})
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		c.PGPool = pool
		c.closers = append(c.closers, pool.Close)
		c.Users = pginfra.NewUserRepository(pool)
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// Close releases clients in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
