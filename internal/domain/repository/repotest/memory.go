// Package repotest provides in-memory repository implementations for tests.
package repotest

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/go-ddd-event-management/internal/domain/entity"
	"github.com/oksasatya/go-ddd-event-management/internal/domain/repository"
)

// Users is a concurrency-safe in-memory UserRepository. Setting Err makes
// every call fail with it.
type Users struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]entity.User
	Err    error
}

func NewUsers() *Users {
	return &Users{byID: map[int64]entity.User{}}
}

func (r *Users) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return repository.ErrUserExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = *u
	return nil
}

func (r *Users) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *Users) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Events is a concurrency-safe in-memory EventRepository with serial ids.
type Events struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]entity.Event
	Err    error
}

func NewEvents() *Events {
	return &Events{byID: map[int64]entity.Event{}}
}

func (r *Events) Create(_ context.Context, e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	e.ID = r.nextID
	r.byID[e.ID] = cloneEvent(*e)
	return nil
}

func (r *Events) List(_ context.Context) ([]entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Event, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, cloneEvent(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Events) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	e, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e = cloneEvent(e)
	return &e, nil
}

func (r *Events) Update(_ context.Context, e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.byID[e.ID]; !ok {
		return repository.ErrNotFound
	}
	r.byID[e.ID] = cloneEvent(*e)
	return nil
}

func (r *Events) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func cloneEvent(e entity.Event) entity.Event {
	if e.Description != nil {
		d := *e.Description
		e.Description = &d
	}
	return e
}

// Publisher records published messages. Setting Err makes publishing fail.
type Publisher struct {
	mu       sync.Mutex
	Messages []any
	Err      error
}

func (p *Publisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Messages = append(p.Messages, body)
	return nil
}

// Published returns a copy of the recorded messages.
func (p *Publisher) Published() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.Messages...)
}

var (
	_ repository.UserRepository  = (*Users)(nil)
	_ repository.EventRepository = (*Events)(nil)
)
