package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/auth"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/dto"
	apierrors "github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/errors"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/middleware"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/observability"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/services"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/utils"
)

type TaskHandler struct {
	tasks  *services.TaskService
	logger *slog.Logger
	prom   *observability.Prom
}

func NewTaskHandler(tasks *services.TaskService, logger *slog.Logger, prom *observability.Prom) *TaskHandler {
	return &TaskHandler{
		tasks:  tasks,
		logger: logger,
		prom:   prom,
	}
}

// ListTasks returns a page of the current user's tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.tasks.ListTasks(c.Request.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), taskID, userID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), userID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies the fields present in the body to an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), taskID, userID, services.UpdateTaskInput{
		Title:            req.Title.Ptr(),
		Description:      req.Description.Ptr(),
		ClearDescription: req.Description.Cleared(),
		IsCompleted:      req.IsCompleted.Ptr(),
		Priority:         req.Priority.Ptr(),
		Category:         req.Category.Ptr(),
		DueDate:          req.DueDate.Ptr(),
		ClearDueDate:     req.DueDate.Cleared(),
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func taskRequestIDs(c *gin.Context) (userID, taskID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	taskID, exists = middleware.GetTaskID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, 0, false
	}

	return userID, taskID, true
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, auth.ErrForbidden):
		h.prom.AuthFailure(observability.ReasonForbidden)
		apierrors.Forbidden(c, "Not authorized to access this task")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrCategoryEmpty),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	default:
		h.logger.ErrorContext(c.Request.Context(), "task request failed", slog.String("error", err.Error()))
		apierrors.InternalError(c, "")
	}
}
