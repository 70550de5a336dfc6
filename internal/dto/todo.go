package dto

import (
	"encoding/json"
	"strings"
	"time"

	dom "Tugas/internal/domain"
)

// The external JSON contract keeps the original API's Indonesian
// vocabulary: judul = title, prioritas = priority. Internally
// everything is the domain's English naming.
const (
	MsgEmptyTitle      = "Judul tidak boleh kosong."
	MsgInvalidPriority = "Prioritas hanya boleh High, Medium, atau Low."
	MsgInvalidDeadline = "Format deadline tidak valid (gunakan YYYY-MM-DD)."
	MsgDuplicateTitle  = "Judul todo sudah ada, gunakan judul lain."
	MsgTodoNotFound    = "Todo tidak ditemukan."
	MsgNoInput         = "Input tidak diberikan"
	MsgNoUpdateData    = "Tidak ada data yang diberikan untuk update"
)

const dateLayout = "2006-01-02"

// Date parses a date-only JSON value ("2025-12-31" or null). A value
// that is present but not a valid date is recorded as invalid instead
// of failing the whole body decode, so validation can report it as a
// field error.
type Date struct {
	t       *time.Time
	invalid bool
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		d.invalid = true
		return nil
	}
	if raw == nil {
		d.t = nil
		return nil
	}
	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(*raw), time.UTC)
	if err != nil {
		d.invalid = true
		return nil
	}
	d.t = &parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.t.Format(dateLayout))
}

// Ptr returns *time.Time for use in service/domain.
func (d Date) Ptr() *time.Time { return d.t }

// NewDate wraps a domain deadline for serialization.
func NewDate(t *time.Time) Date { return Date{t: t} }

// NormalizePriority maps case-insensitive input ("high", "HIGH") to
// the stored form ("High"). Returns the input capitalized; callers
// check validity against the domain set.
func NormalizePriority(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// TodoInput is the JSON body for POST and PUT/PATCH /api/todos.
// Pointer fields distinguish absent keys, so the same shape serves
// create and partial update.
type TodoInput struct {
	Judul     *string `json:"judul"`
	Status    *bool   `json:"status"`
	Prioritas *string `json:"prioritas"`
	Deadline  *Date   `json:"deadline"`
}

// Empty reports whether no field was provided at all.
func (in TodoInput) Empty() bool {
	return in.Judul == nil && in.Status == nil && in.Prioritas == nil && in.Deadline == nil
}

// Validate checks the provided fields and returns a map of field name
// to human-readable error messages, or nil if everything is valid.
// With requireTitle, a missing judul is an error (create semantics).
func (in TodoInput) Validate(requireTitle bool) map[string][]string {
	errs := map[string][]string{}

	if in.Judul == nil {
		if requireTitle {
			errs["judul"] = append(errs["judul"], MsgEmptyTitle)
		}
	} else if strings.TrimSpace(*in.Judul) == "" {
		errs["judul"] = append(errs["judul"], MsgEmptyTitle)
	}

	if in.Prioritas != nil {
		if p := NormalizePriority(*in.Prioritas); p != "" && !dom.ValidPriority(p) {
			errs["prioritas"] = append(errs["prioritas"], MsgInvalidPriority)
		}
	}

	if in.Deadline != nil && in.Deadline.invalid {
		errs["deadline"] = append(errs["deadline"], MsgInvalidDeadline)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Patch converts the input to a normalized domain patch.
// Call Validate first; Patch assumes the input is valid.
func (in TodoInput) Patch() dom.TodoPatch {
	var p dom.TodoPatch
	if in.Judul != nil {
		title := strings.TrimSpace(*in.Judul)
		p.Title = &title
	}
	if in.Status != nil {
		p.Status = in.Status
	}
	if in.Prioritas != nil {
		if prio := NormalizePriority(*in.Prioritas); prio != "" {
			p.Priority = &prio
		}
	}
	if in.Deadline != nil {
		p.Deadline = in.Deadline.Ptr()
	}
	return p
}

type TodoResponse struct {
	ID        int64      `json:"id"`
	Judul     string     `json:"judul"`
	Status    bool       `json:"status"`
	Prioritas string     `json:"prioritas"`
	Deadline  Date       `json:"deadline"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Pagination mirrors the original API's pagination block.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPagination computes the derived fields from a page/total pair.
func NewPagination(page, perPage int, total int64) Pagination {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// ListTodosResponse is the envelope for list, search and overdue.
type ListTodosResponse struct {
	Success    bool           `json:"success"`
	Count      int            `json:"count"`
	Data       []TodoResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}
