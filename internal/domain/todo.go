package domain

import "time"

// Priority levels. Stored normalized (capitalized).
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// ValidPriority reports whether p is one of the allowed (already
// normalized) priority values.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Domain entity. Does not depend on Gin, Postgres or Redis.
type Todo struct {
	ID       int64
	Title    string
	Status   bool // true = completed
	Priority string
	Deadline *time.Time // date only, nil = no deadline

	CreatedAt time.Time
	UpdatedAt *time.Time // nil until the first mutation
}

// TodoFilter describes a filtered, paginated read over todos.
// Zero values / nil pointers mean the filter is not applied.
// Filters compose conjunctively.
type TodoFilter struct {
	Query        string // case-insensitive substring match on title
	Priority     string // normalized High/Medium/Low, "" = any
	Status       *bool
	Deadline     *time.Time // exact date
	DeadlineFrom *time.Time // inclusive
	DeadlineTo   *time.Time // inclusive

	Page    int
	PerPage int
}

// Offset returns the row offset for the filter's page.
func (f TodoFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// TodoPatch is a partial update: nil field = keep current value.
type TodoPatch struct {
	Title    *string
	Status   *bool
	Priority *string
	Deadline *time.Time
}
