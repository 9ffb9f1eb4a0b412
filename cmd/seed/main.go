package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-event-management/config"
	"github.com/oksasatya/go-ddd-event-management/internal/domain/entity"
	"github.com/oksasatya/go-ddd-event-management/internal/domain/repository"
	pginfra "github.com/oksasatya/go-ddd-event-management/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-event-management/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if err := seed(ctx, pginfra.NewUserRepository(pool), pginfra.NewEventRepository(pool), cfg.BcryptCost); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	logger.Info("seed complete")
}

const (
	demoUsername = "demo"
	demoPassword = "password123"
)

func seed(ctx context.Context, users repository.UserRepository, events repository.EventRepository, cost int) error {
	hash, err := helpers.HashPassword(demoPassword, cost)
	if err != nil {
		return err
	}
	u := &entity.User{Username: demoUsername, Password: hash}
	switch err := users.Create(ctx, u); {
	case errors.Is(err, repository.ErrUserExists):
		log.Printf("user %q already exists, leaving it alone", demoUsername)
	case err != nil:
		return err
	default:
		log.Printf("seeded user: id=%d username=%s password=%s", u.ID, demoUsername, demoPassword)
	}

	existing, err := events.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.Name == "Launch" {
			log.Printf("event %q already exists (id=%d)", e.Name, e.ID)
			return nil
		}
	}
	desc := "kickoff"
	launch := &entity.Event{Name: "Launch", Date: "2025-01-01", Location: "HQ", Description: &desc}
	if err := events.Create(ctx, launch); err != nil {
		return err
	}
	log.Printf("seeded event: id=%d name=%s", launch.ID, launch.Name)
	return nil
}
