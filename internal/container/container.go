package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-event-management/config"
	"github.com/oksasatya/go-ddd-event-management/internal/domain/repository"
	pginfra "github.com/oksasatya/go-ddd-event-management/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-event-management/pkg/helpers"
)

// Container holds the components built once at startup and shared by the
// router. Optional components are nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Pool      *pgxpool.Pool
	Redis     *redis.Client
	JWT       *helpers.JWTManager
	Publisher helpers.JSONPublisher

	Users  repository.UserRepository
	Events repository.EventRepository

	closers []func()
}

// New connects to every configured backend. On error, whatever was already
// opened is closed again.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (_ *Container, err error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL),
	}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	c.Pool = pool
	c.closers = append(c.closers, pool.Close)

	if cfg.MigrateOnStart {
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	c.Users = pginfra.NewUserRepository(pool)
	c.Events = pginfra.NewEventRepository(pool)

	if cfg.SessionsEnabled() {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Redis = rdb
		logger.WithField("addr", cfg.RedisAddr).Info("redis sessions enabled")
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		c.closers = append(c.closers, pub.Close)
		c.Publisher = pub
		logger.WithField("queue", cfg.RabbitMQEventsQueue).Info("event change notifications enabled")
	}

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
