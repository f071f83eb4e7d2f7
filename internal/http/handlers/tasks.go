package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"task_manager/internal/domain"
	"task_manager/internal/http/flash"
	"task_manager/internal/http/forms"
	"task_manager/internal/logger"
	"task_manager/internal/repository"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// requireTask resolves the task id through the owner-scoped store. A task
// that does not exist and a task owned by someone else produce the same
// flash-and-redirect outcome, so callers learn nothing about foreign rows.
func (h *Handler) requireTask(c *gin.Context, userID int64) (*domain.Task, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		flash.Set(c, flash.Error, "Task not found.")
		c.Redirect(http.StatusFound, "/tasks")
		return nil, false
	}

	task, err := h.Tasks.Get(c.Request.Context(), userID, id)
	if err != nil {
		if !errors.Is(err, repository.ErrTaskNotFound) {
			logger.Error("task lookup failed", "error", err, "task_id", id)
		}
		flash.Set(c, flash.Error, "Task not found.")
		c.Redirect(http.StatusFound, "/tasks")
		return nil, false
	}
	return task, true
}

func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	params := repository.ListParams{
		Query:   c.Query("q"),
		OrderBy: c.DefaultQuery("order_by", "title"),
		Dir:     c.DefaultQuery("dir", "asc"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}

	page, err := h.Tasks.List(c.Request.Context(), userID, params)
	if err != nil {
		logger.Error("task list failed", "error", err)
		c.HTML(http.StatusInternalServerError, "task_list.html", gin.H{
			"Flash":       &flash.Message{Category: flash.Error, Text: "Failed to load tasks."},
			"Tasks":       []*domain.Task{},
			"Total":       0,
			"Page":        1,
			"Pages":       1,
			"OrderBy":     params.OrderBy,
			"Dir":         params.Dir,
			"SearchQuery": params.Query,
		})
		return
	}

	c.HTML(http.StatusOK, "task_list.html", gin.H{
		"Flash":       flash.Pop(c),
		"Tasks":       page.Tasks,
		"Total":       page.Total,
		"Page":        page.Page,
		"Pages":       page.Pages,
		"OrderBy":     params.OrderBy,
		"Dir":         params.Dir,
		"SearchQuery": params.Query,
	})
}

func (h *Handler) TaskDetail(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	task, ok := h.requireTask(c, userID)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "task_detail.html", gin.H{
		"Flash": flash.Pop(c),
		"Task":  task,
	})
}

func (h *Handler) ShowCreateTask(c *gin.Context) {
	c.HTML(http.StatusOK, "task_form.html", gin.H{
		"Flash":  flash.Pop(c),
		"Errors": service.FieldErrors{},
		"Form":   forms.TaskForm{},
		"Action": "/task/create",
	})
}

func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	form := forms.TaskForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Completed:   c.PostForm("completed") != "",
	}
	if fieldErrs := form.Validate(); !fieldErrs.Empty() {
		c.HTML(http.StatusOK, "task_form.html", gin.H{
			"Errors": fieldErrs,
			"Form":   form,
			"Action": "/task/create",
		})
		return
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       form.Title,
		Description: form.Description,
		Completed:   form.Completed,
	}
	if err := h.Tasks.Create(c.Request.Context(), task); err != nil {
		logger.Error("task create failed", "error", err)
		c.HTML(http.StatusInternalServerError, "task_form.html", gin.H{
			"Flash":  &flash.Message{Category: flash.Error, Text: "Failed to create task."},
			"Errors": service.FieldErrors{},
			"Form":   form,
			"Action": "/task/create",
		})
		return
	}

	flash.Set(c, flash.Success, "Task added successfully.")
	c.Redirect(http.StatusFound, "/tasks")
}

func (h *Handler) ShowUpdateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	task, ok := h.requireTask(c, userID)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "task_form.html", gin.H{
		"Flash":  flash.Pop(c),
		"Errors": service.FieldErrors{},
		"Form": forms.TaskForm{
			Title:       task.Title,
			Description: task.Description,
			Completed:   task.Completed,
		},
		"Action": fmt.Sprintf("/task/update/%d", task.ID),
	})
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	task, ok := h.requireTask(c, userID)
	if !ok {
		return
	}

	form := forms.TaskForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Completed:   c.PostForm("completed") != "",
	}
	if fieldErrs := form.Validate(); !fieldErrs.Empty() {
		c.HTML(http.StatusOK, "task_form.html", gin.H{
			"Errors": fieldErrs,
			"Form":   form,
			"Action": fmt.Sprintf("/task/update/%d", task.ID),
		})
		return
	}

	updated, err := h.Tasks.Update(c.Request.Context(), userID, task.ID, form.Title, form.Description, form.Completed)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			flash.Set(c, flash.Error, "Task not found.")
		} else {
			logger.Error("task update failed", "error", err, "task_id", task.ID)
			flash.Set(c, flash.Error, "Failed to update task.")
		}
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	flash.Set(c, flash.Success, fmt.Sprintf("Task %s edited successfully.", updated.Title))
	c.Redirect(http.StatusFound, "/tasks")
}

func (h *Handler) ShowDeleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	task, ok := h.requireTask(c, userID)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "task_confirm_delete.html", gin.H{
		"Flash": flash.Pop(c),
		"Task":  task,
	})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	task, ok := h.requireTask(c, userID)
	if !ok {
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), userID, task.ID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			flash.Set(c, flash.Error, "Task not found.")
		} else {
			logger.Error("task delete failed", "error", err, "task_id", task.ID)
			flash.Set(c, flash.Error, "Failed to delete task.")
		}
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	flash.Set(c, flash.Success, "Task deleted successfully.")
	c.Redirect(http.StatusFound, "/tasks")
}

// ToggleComplete flips the completed flag. It goes through the same
// owner-scoped guard as detail and delete, so a missing or foreign id
// gets the not-found redirect instead of an error.
func (h *Handler) ToggleComplete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	task, ok := h.requireTask(c, userID)
	if !ok {
		return
	}

	completed, err := h.Tasks.ToggleComplete(c.Request.Context(), userID, task.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			flash.Set(c, flash.Error, "Task not found.")
		} else {
			logger.Error("task toggle failed", "error", err, "task_id", task.ID)
			flash.Set(c, flash.Error, "Failed to update task.")
		}
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	if completed {
		flash.Set(c, flash.Success, "Task completed successfully.")
	} else {
		flash.Set(c, flash.Success, "Task reopened successfully.")
	}
	c.Redirect(http.StatusFound, "/tasks")
}
