package dto

import (
	"encoding/json"
	"testing"
	"time"

	dom "Tugas/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestTodoInputValidate_EmptyTitle(t *testing.T) {
	t.Parallel()

	in := TodoInput{Judul: strPtr("")}
	errs := in.Validate(true)
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	got := errs["judul"]
	if len(got) != 1 || got[0] != MsgEmptyTitle {
		t.Fatalf("expected [%q], got %v", MsgEmptyTitle, got)
	}
}

func TestTodoInputValidate_WhitespaceTitle(t *testing.T) {
	t.Parallel()

	in := TodoInput{Judul: strPtr("   ")}
	if errs := in.Validate(true); errs == nil || len(errs["judul"]) == 0 {
		t.Fatal("whitespace-only title must fail validation")
	}
}

func TestTodoInputValidate_MissingTitleOnCreate(t *testing.T) {
	t.Parallel()

	in := TodoInput{Prioritas: strPtr("High")}
	if errs := in.Validate(true); errs == nil || len(errs["judul"]) == 0 {
		t.Fatal("missing title must fail create validation")
	}
	// On update, a missing title is fine.
	if errs := in.Validate(false); errs != nil {
		t.Fatalf("expected no errors on partial input, got %v", errs)
	}
}

func TestTodoInputValidate_InvalidPriority(t *testing.T) {
	t.Parallel()

	in := TodoInput{Judul: strPtr("X"), Prioritas: strPtr("Urgent")}
	errs := in.Validate(true)
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	got := errs["prioritas"]
	if len(got) != 1 || got[0] != MsgInvalidPriority {
		t.Fatalf("expected [%q], got %v", MsgInvalidPriority, got)
	}
}

func TestTodoInputValidate_CaseInsensitivePriority(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"high", "HIGH", "hIgH", "medium", "low"} {
		in := TodoInput{Judul: strPtr("X"), Prioritas: strPtr(p)}
		if errs := in.Validate(true); errs != nil {
			t.Fatalf("priority %q must be valid, got %v", p, errs)
		}
	}
}

func TestTodoInputValidate_InvalidDeadline(t *testing.T) {
	t.Parallel()

	var in TodoInput
	if err := json.Unmarshal([]byte(`{"judul":"X","deadline":"31-12-2025"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	errs := in.Validate(true)
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	got := errs["deadline"]
	if len(got) != 1 || got[0] != MsgInvalidDeadline {
		t.Fatalf("expected [%q], got %v", MsgInvalidDeadline, got)
	}
}

func TestTodoInputValidate_MultipleFields(t *testing.T) {
	t.Parallel()

	var in TodoInput
	body := `{"judul":"  ","prioritas":"Urgent","deadline":"not-a-date"}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	errs := in.Validate(true)
	if len(errs) != 3 {
		t.Fatalf("expected errors on 3 fields, got %v", errs)
	}
}

func TestTodoInputValidate_Valid(t *testing.T) {
	t.Parallel()

	var in TodoInput
	body := `{"judul":"Belajar Flask","prioritas":"High","status":false,"deadline":"2025-12-31"}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errs := in.Validate(true); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if in.Deadline == nil || in.Deadline.Ptr() == nil {
		t.Fatal("deadline must be parsed")
	}
	want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	if !in.Deadline.Ptr().Equal(want) {
		t.Fatalf("deadline = %v, want %v", in.Deadline.Ptr(), want)
	}
}

func TestDateMarshal(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	b, err := json.Marshal(NewDate(&d))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-12-31"` {
		t.Fatalf("got %s", b)
	}

	b, err = json.Marshal(NewDate(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("nil deadline must marshal to null, got %s", b)
	}
}

func TestDateUnmarshal_Null(t *testing.T) {
	t.Parallel()

	var in TodoInput
	if err := json.Unmarshal([]byte(`{"judul":"X","deadline":null}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errs := in.Validate(true); errs != nil {
		t.Fatalf("null deadline must be valid, got %v", errs)
	}
}

func TestTodoInputPatch_Normalizes(t *testing.T) {
	t.Parallel()

	in := TodoInput{
		Judul:     strPtr("  Belajar Go  "),
		Prioritas: strPtr("high"),
	}
	p := in.Patch()
	if p.Title == nil || *p.Title != "Belajar Go" {
		t.Fatalf("title not trimmed: %v", p.Title)
	}
	if p.Priority == nil || *p.Priority != dom.PriorityHigh {
		t.Fatalf("priority not normalized: %v", p.Priority)
	}
	if p.Status != nil || p.Deadline != nil {
		t.Fatal("absent fields must stay nil in patch")
	}
}

func TestNewPagination(t *testing.T) {
	t.Parallel()

	p := NewPagination(2, 10, 35)
	if p.Pages != 4 {
		t.Fatalf("pages = %d, want 4", p.Pages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Fatalf("page 2 of 4 must have next and prev: %+v", p)
	}

	p = NewPagination(1, 10, 0)
	if p.Pages != 0 || p.HasNext || p.HasPrev {
		t.Fatalf("empty set pagination wrong: %+v", p)
	}
}
