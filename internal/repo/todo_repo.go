package repo

import (
	"context"
	"fmt"
	"strings"

	dom "Tugas/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo provides todo persistence. List, Search and Overdue return
// the page of items plus the total row count for pagination.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	List(ctx context.Context, page, perPage int) ([]dom.Todo, int64, error)
	Update(ctx context.Context, id int64, t dom.Todo) (dom.Todo, error)
	Delete(ctx context.Context, id int64) error
	MarkDone(ctx context.Context, id int64, done bool) (dom.Todo, error)
	Search(ctx context.Context, f dom.TodoFilter) ([]dom.Todo, int64, error)
	Overdue(ctx context.Context, page, perPage int) ([]dom.Todo, int64, error)
}

const todoColumns = "id, title, status, priority, deadline, created_at, updated_at"

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func scanTodo(row pgx.Row) (dom.Todo, error) {
	var t dom.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Status, &t.Priority, &t.Deadline,
		&t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func scanTodos(rows pgx.Rows) ([]dom.Todo, error) {
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, status, priority, deadline)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, t.Title, t.Status, t.Priority, t.Deadline))
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	return scanTodo(r.db.QueryRow(ctx, query, id))
}

func (r *PGTodoRepo) List(ctx context.Context, page, perPage int) ([]dom.Todo, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM todos`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	list, err := scanTodos(rows)
	return list, total, err
}

// Update writes the full merged entity and refreshes updated_at.
func (r *PGTodoRepo) Update(ctx context.Context, id int64, t dom.Todo) (dom.Todo, error) {
	query := `
		UPDATE todos SET title = $2, status = $3, priority = $4, deadline = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, id, t.Title, t.Status, t.Priority, t.Deadline))
}

// Delete removes the row. Returns pgx.ErrNoRows if the id is absent.
func (r *PGTodoRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PGTodoRepo) MarkDone(ctx context.Context, id int64, done bool) (dom.Todo, error) {
	query := `
		UPDATE todos SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, id, done))
}

// Search composes the supplied filters conjunctively.
func (r *PGTodoRepo) Search(ctx context.Context, f dom.TodoFilter) ([]dom.Todo, int64, error) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Query != "" {
		add("title ILIKE $%d", "%"+f.Query+"%")
	}
	if f.Priority != "" {
		add("priority = $%d", f.Priority)
	}
	if f.Status != nil {
		add("status = $%d", *f.Status)
	}
	if f.Deadline != nil {
		add("deadline = $%d", *f.Deadline)
	}
	if f.DeadlineFrom != nil {
		add("deadline >= $%d", *f.DeadlineFrom)
	}
	if f.DeadlineTo != nil {
		add("deadline <= $%d", *f.DeadlineTo)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM todos`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+todoColumns+` FROM todos%s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, f.PerPage, f.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	list, err := scanTodos(rows)
	return list, total, err
}

func (r *PGTodoRepo) Overdue(ctx context.Context, page, perPage int) ([]dom.Todo, int64, error) {
	const cond = ` FROM todos WHERE status = FALSE AND deadline IS NOT NULL AND deadline < CURRENT_DATE`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+cond).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + todoColumns + cond + ` ORDER BY deadline ASC, id ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	list, err := scanTodos(rows)
	return list, total, err
}
