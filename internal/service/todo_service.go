package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Tugas/internal/cache"
	dom "Tugas/internal/domain"
	"Tugas/internal/repo"
	"Tugas/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound       = errors.New("todo not found")
	ErrDuplicateTitle = errors.New("title already exists")
)

type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func mapRepoErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if utils.IsPGUniqueViolation(err) {
		return ErrDuplicateTitle
	}
	return err
}

// Create inserts a new todo. An empty priority defaults to Medium.
func (s *TodoService) Create(ctx context.Context, title string, status bool, priority string, deadline *time.Time) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	if priority == "" {
		priority = dom.PriorityMedium
	}

	t, err := s.repo.Create(ctx, dom.Todo{
		Title:    title,
		Status:   status,
		Priority: priority,
		Deadline: deadline,
	})
	if err != nil {
		return dom.Todo{}, mapRepoErr(err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, mapRepoErr(err)
	}
	return t, nil
}

// Update loads the record, applies only the fields present in the
// patch and persists the merged result. updated_at is refreshed by
// the store.
func (s *TodoService) Update(ctx context.Context, id int64, patch dom.TodoPatch) (dom.Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, mapRepoErr(err)
	}
	merged := existing
	if patch.Title != nil {
		merged.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.Priority != nil {
		merged.Priority = *patch.Priority
	}
	if patch.Deadline != nil {
		merged.Deadline = patch.Deadline
	}
	t, err := s.repo.Update(ctx, id, merged)
	if err != nil {
		return dom.Todo{}, mapRepoErr(err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Complete marks the todo as done.
func (s *TodoService) Complete(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.MarkDone(ctx, id, true)
	if err != nil {
		return dom.Todo{}, mapRepoErr(err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Delete hard-deletes the todo. ErrNotFound if the id is absent.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TodoService) List(ctx context.Context, page, perPage int) ([]dom.Todo, int64, error) {
	return s.cached(ctx,
		fmt.Sprintf("list:%d:%d", page, perPage),
		func(ctx context.Context) (*cache.Page, error) { return s.cache.GetList(ctx, page, perPage) },
		func(ctx context.Context, p cache.Page) error { return s.cache.SetList(ctx, page, perPage, p) },
		func(ctx context.Context) ([]dom.Todo, int64, error) { return s.repo.List(ctx, page, perPage) },
	)
}

func (s *TodoService) Search(ctx context.Context, f dom.TodoFilter) ([]dom.Todo, int64, error) {
	f.Query = strings.TrimSpace(f.Query)
	return s.cached(ctx,
		cache.SearchKey(f),
		func(ctx context.Context) (*cache.Page, error) { return s.cache.GetSearch(ctx, f) },
		func(ctx context.Context, p cache.Page) error { return s.cache.SetSearch(ctx, f, p) },
		func(ctx context.Context) ([]dom.Todo, int64, error) { return s.repo.Search(ctx, f) },
	)
}

func (s *TodoService) Overdue(ctx context.Context, page, perPage int) ([]dom.Todo, int64, error) {
	return s.cached(ctx,
		fmt.Sprintf("overdue:%d:%d", page, perPage),
		func(ctx context.Context) (*cache.Page, error) { return s.cache.GetOverdue(ctx, page, perPage) },
		func(ctx context.Context, p cache.Page) error { return s.cache.SetOverdue(ctx, page, perPage, p) },
		func(ctx context.Context) ([]dom.Todo, int64, error) { return s.repo.Overdue(ctx, page, perPage) },
	)
}

// cached serves a read through the cache with singleflight collapsing
// concurrent fills of the same key. Cache errors fall through to the
// repository.
func (s *TodoService) cached(
	ctx context.Context,
	key string,
	get func(context.Context) (*cache.Page, error),
	set func(context.Context, cache.Page) error,
	load func(context.Context) ([]dom.Todo, int64, error),
) ([]dom.Todo, int64, error) {
	if s.cache == nil {
		return load(ctx)
	}
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if p, err := get(ctx); err == nil && p != nil {
			return *p, nil
		}
		items, total, err := load(ctx)
		if err != nil {
			return nil, err
		}
		p := cache.Page{Items: items, Total: total}
		_ = set(ctx, p)
		return p, nil
	})
	if err != nil {
		return nil, 0, err
	}
	p := v.(cache.Page)
	return p.Items, p.Total, nil
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
