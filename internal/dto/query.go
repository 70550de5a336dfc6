package dto

import (
	"net/url"
	"strconv"
	"strings"

	dom "Tugas/internal/domain"
	"Tugas/internal/utils"
)

// Pagination limits, from the original API contract.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ParsePagination reads page/per_page with defaults and clamping.
// Non-numeric values fall back to the defaults.
func ParsePagination(q url.Values) (page, perPage int) {
	page = DefaultPage
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n >= 1 {
		page = n
	}
	perPage = DefaultPerPage
	if n, err := strconv.Atoi(q.Get("per_page")); err == nil && n >= 1 {
		perPage = n
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// TodoFilterFromQuery translates search query parameters into a
// domain filter. Unknown or unparseable values are no-ops: an invalid
// priority, status word or date simply does not constrain the result.
//
// Status vocabulary: "selesai"/"completed" = done,
// "belum selesai"/"belum"/"pending" = not done.
func TodoFilterFromQuery(q url.Values) dom.TodoFilter {
	var f dom.TodoFilter
	f.Page, f.PerPage = ParsePagination(q)

	f.Query = strings.TrimSpace(q.Get("q"))

	if p := NormalizePriority(q.Get("prioritas")); dom.ValidPriority(p) {
		f.Priority = p
	}

	switch strings.ToLower(strings.TrimSpace(q.Get("status"))) {
	case "selesai", "completed":
		done := true
		f.Status = &done
	case "belum selesai", "belum", "pending":
		done := false
		f.Status = &done
	}

	if t, err := utils.ParseDate(q.Get("deadline")); err == nil {
		f.Deadline = t
	}
	if t, err := utils.ParseDate(q.Get("deadline_from")); err == nil {
		f.DeadlineFrom = t
	}
	if t, err := utils.ParseDate(q.Get("deadline_to")); err == nil {
		f.DeadlineTo = t
	}
	return f
}
