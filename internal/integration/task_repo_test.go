package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"task_manager/internal/domain"
	"task_manager/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../migrations/001_init.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(context.Background(), string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, username string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &domain.User{Username: username, Email: username + "@example.com", PasswordHash: string(hash)}
	if err := repository.NewUserRepository(pool).Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func TestTaskRepositoryOwnershipScoping(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(pool)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	owner := seedUser(t, pool, "owner"+suffix)
	other := seedUser(t, pool, "other"+suffix)

	task := &domain.Task{UserID: owner.ID, Title: "Buy milk", Description: "2%"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID == 0 || task.CreatedAt.IsZero() {
		t.Fatal("Create did not fill in id and created_at")
	}

	// the owner sees it
	got, err := repo.Get(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("Get as owner: %v", err)
	}
	if got.Title != "Buy milk" || got.Completed {
		t.Errorf("unexpected task: %+v", got)
	}

	// anyone else gets the same answer as for a task that does not exist
	if _, err := repo.Get(ctx, other.ID, task.ID); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Errorf("Get as other user: err = %v, want ErrTaskNotFound", err)
	}
	if _, err := repo.Update(ctx, other.ID, task.ID, "stolen", "", true); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Errorf("Update as other user: err = %v, want ErrTaskNotFound", err)
	}
	if _, err := repo.ToggleComplete(ctx, other.ID, task.ID); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Errorf("Toggle as other user: err = %v, want ErrTaskNotFound", err)
	}
	if err := repo.Delete(ctx, other.ID, task.ID); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Errorf("Delete as other user: err = %v, want ErrTaskNotFound", err)
	}

	// toggle reports the direction it flipped to
	nowCompleted, err := repo.ToggleComplete(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !nowCompleted {
		t.Error("first toggle should complete the task")
	}
	nowCompleted, err = repo.ToggleComplete(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if nowCompleted {
		t.Error("second toggle should reopen the task")
	}

	// update leaves owner and created_at alone
	updated, err := repo.Update(ctx, owner.ID, task.ID, "Buy oat milk", "1 carton", true)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.UserID != owner.ID || !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Error("update must not change owner or created_at")
	}

	// delete is permanent
	if err := repo.Delete(ctx, owner.ID, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, owner.ID, task.ID); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskRepositoryListFilterSortPaginate(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(pool)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	user := seedUser(t, pool, "lister"+suffix)

	titles := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "kappa"}
	for i, title := range titles {
		task := &domain.Task{UserID: user.ID, Title: title, Description: fmt.Sprintf("note %d", i)}
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}

	// default ordering, first page
	page, err := repo.List(ctx, user.ID, repository.ListParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 10 || page.Pages != 2 || len(page.Tasks) != repository.PageSize {
		t.Fatalf("page metadata: total=%d pages=%d len=%d", page.Total, page.Pages, len(page.Tasks))
	}
	if page.Tasks[0].Title != "alpha" {
		t.Errorf("default sort should start at alpha, got %s", page.Tasks[0].Title)
	}

	// second page holds the remainder
	page, err = repo.List(ctx, user.ID, repository.ListParams{Page: 2})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page.Tasks) != 2 {
		t.Errorf("second page should hold 2 tasks, got %d", len(page.Tasks))
	}

	// case-insensitive substring over title or description
	page, err = repo.List(ctx, user.ID, repository.ListParams{Query: "GAMMA"})
	if err != nil {
		t.Fatalf("List with query: %v", err)
	}
	if page.Total != 1 || page.Tasks[0].Title != "gamma" {
		t.Errorf("title search: got %d results", page.Total)
	}
	page, err = repo.List(ctx, user.ID, repository.ListParams{Query: "note 3"})
	if err != nil {
		t.Fatalf("List with query: %v", err)
	}
	if page.Total != 1 || page.Tasks[0].Title != "delta" {
		t.Errorf("description search: got %d results", page.Total)
	}

	// descending sort
	page, err = repo.List(ctx, user.ID, repository.ListParams{OrderBy: "title", Dir: "desc"})
	if err != nil {
		t.Fatalf("List desc: %v", err)
	}
	if page.Tasks[0].Title != "zeta" {
		t.Errorf("descending sort should start at zeta, got %s", page.Tasks[0].Title)
	}

	// an unrecognized column falls back to title ascending
	page, err = repo.List(ctx, user.ID, repository.ListParams{OrderBy: "user_id; DROP TABLE tasks"})
	if err != nil {
		t.Fatalf("List with bad order_by: %v", err)
	}
	if page.Tasks[0].Title != "alpha" {
		t.Errorf("fallback sort should start at alpha, got %s", page.Tasks[0].Title)
	}

	// another user sees nothing
	stranger := seedUser(t, pool, "stranger"+suffix)
	page, err = repo.List(ctx, stranger.ID, repository.ListParams{})
	if err != nil {
		t.Fatalf("List as stranger: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("stranger should see 0 tasks, got %d", page.Total)
	}
}
