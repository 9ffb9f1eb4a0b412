package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-event-management/internal/domain/entity"
)

// EventRepository defines the interface for event persistence.
// Update and Delete return ErrNotFound when no row has the given id.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	List(ctx context.Context) ([]entity.Event, error)
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id int64) error
}
