package repository

import (
	"context"
	"errors"

	"task_manager/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTaskNotFound covers both tasks that do not exist and tasks owned by
// another user; callers cannot tell the two apart.
var ErrTaskNotFound = errors.New("task not found")

// PageSize is the fixed number of tasks per list page.
const PageSize = 8

// sortColumns is the allowlist for ListParams.OrderBy. Anything else
// silently falls back to the default title ordering.
var sortColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"completed":   "completed",
	"created_at":  "created_at",
}

type ListParams struct {
	Query   string // case-insensitive substring over title or description
	OrderBy string // defaults to "title"
	Dir     string // "asc" or "desc", defaults to "asc"
	Page    int    // 1-based
}

type TaskPage struct {
	Tasks []*domain.Task
	Total int
	Page  int
	Pages int
}

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, description, completed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		t.UserID, t.Title, t.Description, t.Completed,
	).Scan(&t.ID, &t.CreatedAt)
}

// List returns one page of the user's tasks plus paging metadata.
func (r *TaskRepository) List(ctx context.Context, userID int64, p ListParams) (*TaskPage, error) {
	col, ok := sortColumns[p.OrderBy]
	if !ok {
		col = "title"
	}
	dir := "ASC"
	if p.Dir == "desc" {
		dir = "DESC"
	}
	page := p.Page
	if page < 1 {
		page = 1
	}

	pattern := "%" + p.Query + "%"

	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks
		 WHERE user_id = $1 AND (title ILIKE $2 OR description ILIKE $2)`,
		userID, pattern).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, description, completed, created_at
		 FROM tasks
		 WHERE user_id = $1 AND (title ILIKE $2 OR description ILIKE $2)
		 ORDER BY `+col+` `+dir+`, id ASC
		 LIMIT $3 OFFSET $4`,
		userID, pattern, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pages := (total + PageSize - 1) / PageSize
	if pages == 0 {
		pages = 1
	}

	return &TaskPage{Tasks: tasks, Total: total, Page: page, Pages: pages}, nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, description, completed, created_at
		 FROM tasks
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Update rewrites title, description and completed. Owner and created_at
// are never touched.
func (r *TaskRepository) Update(ctx context.Context, userID, id int64, title, description string, completed bool) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, completed = $3
		 WHERE id = $4 AND user_id = $5
		 RETURNING id, user_id, title, description, completed, created_at`,
		title, description, completed, id, userID,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ToggleComplete flips the completed flag in a single statement and
// reports the new value so the caller can pick the right message.
func (r *TaskRepository) ToggleComplete(ctx context.Context, userID, id int64) (bool, error) {
	var completed bool
	err := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET completed = NOT completed
		 WHERE id = $1 AND user_id = $2
		 RETURNING completed`,
		id, userID,
	).Scan(&completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrTaskNotFound
		}
		return false, err
	}
	return completed, nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}
