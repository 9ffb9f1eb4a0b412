package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-event-management/internal/domain/entity"
	"github.com/oksasatya/go-ddd-event-management/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (name, date, location, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, e.Name, e.Date, e.Location, e.Description)

	if err := row.Scan(&e.ID); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) List(ctx context.Context) ([]entity.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, date, location, description
		FROM events
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]entity.Event, 0)
	for rows.Next() {
		var e entity.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Description); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	e := &entity.Event{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, date, location, description
		FROM events
		WHERE id = $1
	`, id)

	if err := row.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE events
		SET name = $1, date = $2, location = $3, description = $4
		WHERE id = $5
	`, e.Name, e.Date, e.Location, e.Description, e.ID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
