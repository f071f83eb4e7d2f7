package handlers

import (
	"task_manager/internal/repository"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	Users    *repository.UserRepository
	Tasks    *repository.TaskRepository
	Accounts *service.Accounts
	Sessions *service.Sessions
}

func NewHandler(db *pgxpool.Pool, sessions *service.Sessions) *Handler {
	users := repository.NewUserRepository(db)
	return &Handler{
		DB:       db,
		Users:    users,
		Tasks:    repository.NewTaskRepository(db),
		Accounts: service.NewAccounts(users),
		Sessions: sessions,
	}
}

// getUserID extracts the authenticated user id set by the session middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	uid, ok := uidVal.(int64)
	return uid, ok
}
