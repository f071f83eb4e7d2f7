package http

import (
	"net/http"

	"task_manager/internal/config"
	"task_manager/internal/http/handlers"
	"task_manager/internal/http/middleware"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config) {
	sessions := service.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	h := handlers.NewHandler(db, sessions)
	healthHandler := handlers.NewHealthHandler(db)

	r.Use(middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Login and signup are open; their POSTs are rate limited to slow
	// down credential stuffing.
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/login")
	})
	r.GET("/login", h.ShowLogin)
	r.POST("/login", authRL, h.Login)
	r.GET("/signup", h.ShowSignup)
	r.POST("/signup", authRL, h.Signup)
	// Logout only clears the cookie, so it works with or without a live
	// session; logging out twice is a no-op.
	r.GET("/logout", h.Logout)

	// Everything touching tasks requires an authenticated session.
	authed := r.Group("/", middleware.RequireSession(sessions))
	{
		authed.GET("/tasks", h.ListTasks)
		authed.GET("/task/create", h.ShowCreateTask)
		authed.POST("/task/create", h.CreateTask)
		authed.GET("/task/update/:id", h.ShowUpdateTask)
		authed.POST("/task/update/:id", h.UpdateTask)
		authed.GET("/task/delete/:id", h.ShowDeleteTask)
		authed.POST("/task/delete/:id", h.DeleteTask)
		authed.GET("/task/:id", h.TaskDetail)
		authed.POST("/tasks/toggle_complete/:id", h.ToggleComplete)
	}
}
