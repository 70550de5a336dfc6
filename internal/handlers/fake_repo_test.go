package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	dom "Tugas/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeTodoRepo is an in-memory TodoRepo with the same observable
// behavior as the Postgres implementation: id-ascending reads,
// conjunctive filters, unique titles (PG error 23505), hard deletes.
type fakeTodoRepo struct {
	mu     sync.RWMutex
	nextID int64
	todos  map[int64]dom.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{nextID: 1, todos: map[int64]dom.Todo{}}
}

func (r *fakeTodoRepo) titleTaken(title string, exceptID int64) bool {
	for id, t := range r.todos {
		if id != exceptID && t.Title == title {
			return true
		}
	}
	return false
}

func (r *fakeTodoRepo) ordered() []dom.Todo {
	out := make([]dom.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func paginate(list []dom.Todo, page, perPage int) ([]dom.Todo, int64) {
	total := int64(len(list))
	start := (page - 1) * perPage
	if start >= len(list) {
		return nil, total
	}
	end := start + perPage
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], total
}

func (r *fakeTodoRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.titleTaken(t.Title, 0) {
		return dom.Todo{}, &pgconn.PgError{Code: "23505"}
	}
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = nil
	r.todos[t.ID] = t
	return t, nil
}

func (r *fakeTodoRepo) GetByID(_ context.Context, id int64) (dom.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *fakeTodoRepo) List(_ context.Context, page, perPage int) ([]dom.Todo, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, total := paginate(r.ordered(), page, perPage)
	return list, total, nil
}

func (r *fakeTodoRepo) Update(_ context.Context, id int64, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	if r.titleTaken(t.Title, id) {
		return dom.Todo{}, &pgconn.PgError{Code: "23505"}
	}
	now := time.Now().UTC()
	t.ID = id
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = &now
	r.todos[id] = t
	return t, nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.todos, id)
	return nil
}

func (r *fakeTodoRepo) MarkDone(_ context.Context, id int64, done bool) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	now := time.Now().UTC()
	t.Status = done
	t.UpdatedAt = &now
	r.todos[id] = t
	return t, nil
}

func matches(t dom.Todo, f dom.TodoFilter) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Query)) {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Deadline != nil && (t.Deadline == nil || !t.Deadline.Equal(*f.Deadline)) {
		return false
	}
	if f.DeadlineFrom != nil && (t.Deadline == nil || t.Deadline.Before(*f.DeadlineFrom)) {
		return false
	}
	if f.DeadlineTo != nil && (t.Deadline == nil || t.Deadline.After(*f.DeadlineTo)) {
		return false
	}
	return true
}

func (r *fakeTodoRepo) Search(_ context.Context, f dom.TodoFilter) ([]dom.Todo, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var filtered []dom.Todo
	for _, t := range r.ordered() {
		if matches(t, f) {
			filtered = append(filtered, t)
		}
	}
	list, total := paginate(filtered, f.Page, f.PerPage)
	return list, total, nil
}

func (r *fakeTodoRepo) Overdue(_ context.Context, page, perPage int) ([]dom.Todo, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	var overdue []dom.Todo
	for _, t := range r.ordered() {
		if !t.Status && t.Deadline != nil && t.Deadline.Before(today) {
			overdue = append(overdue, t)
		}
	}
	sort.Slice(overdue, func(i, j int) bool {
		if overdue[i].Deadline.Equal(*overdue[j].Deadline) {
			return overdue[i].ID < overdue[j].ID
		}
		return overdue[i].Deadline.Before(*overdue[j].Deadline)
	})
	list, total := paginate(overdue, page, perPage)
	return list, total, nil
}
