package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "Tugas/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "todo:"
	keyList    = keyPrefix + "list:"
	keyOverdue = keyPrefix + "overdue:"
	keySearch  = keyPrefix + "search:"
)

// Page is one cached page of results plus the total row count.
type Page struct {
	Items []dom.Todo `json:"items"`
	Total int64      `json:"total"`
}

// TodoCache caches list, search and overdue pages in Redis.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

func (c *TodoCache) get(ctx context.Context, key string) (*Page, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p Page
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *TodoCache) set(ctx context.Context, key string, p Page) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func listKey(page, perPage int) string {
	return fmt.Sprintf("%s%d:%d", keyList, page, perPage)
}

func overdueKey(page, perPage int) string {
	return fmt.Sprintf("%s%d:%d", keyOverdue, page, perPage)
}

// SearchKey builds a stable cache key for a filter. Exported so the
// service can use it as a singleflight key too.
func SearchKey(f dom.TodoFilter) string {
	var b strings.Builder
	b.WriteString(keySearch)
	fmt.Fprintf(&b, "q=%s", strings.ToLower(strings.TrimSpace(f.Query)))
	fmt.Fprintf(&b, "|p=%s", f.Priority)
	if f.Status != nil {
		fmt.Fprintf(&b, "|s=%t", *f.Status)
	}
	for _, d := range []struct {
		tag string
		t   *time.Time
	}{{"d", f.Deadline}, {"df", f.DeadlineFrom}, {"dt", f.DeadlineTo}} {
		if d.t != nil {
			fmt.Fprintf(&b, "|%s=%s", d.tag, d.t.Format("2006-01-02"))
		}
	}
	fmt.Fprintf(&b, "|pg=%d:%d", f.Page, f.PerPage)
	return b.String()
}

// GetList returns the cached list page or nil on miss.
func (c *TodoCache) GetList(ctx context.Context, page, perPage int) (*Page, error) {
	return c.get(ctx, listKey(page, perPage))
}

// SetList stores a list page.
func (c *TodoCache) SetList(ctx context.Context, page, perPage int, p Page) error {
	return c.set(ctx, listKey(page, perPage), p)
}

// GetSearch returns the cached search page for the filter, or nil on miss.
func (c *TodoCache) GetSearch(ctx context.Context, f dom.TodoFilter) (*Page, error) {
	return c.get(ctx, SearchKey(f))
}

// SetSearch stores a search page.
func (c *TodoCache) SetSearch(ctx context.Context, f dom.TodoFilter, p Page) error {
	return c.set(ctx, SearchKey(f), p)
}

// GetOverdue returns the cached overdue page or nil on miss.
func (c *TodoCache) GetOverdue(ctx context.Context, page, perPage int) (*Page, error) {
	return c.get(ctx, overdueKey(page, perPage))
}

// SetOverdue stores an overdue page.
func (c *TodoCache) SetOverdue(ctx context.Context, page, perPage int, p Page) error {
	return c.set(ctx, overdueKey(page, perPage), p)
}

// InvalidateAll removes every todo cache key (cache invalidation on write).
func (c *TodoCache) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
