package dto

import (
	"time"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/models"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/utils"
)

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title       string               `json:"title" binding:"required,max=255"`
	Description *string              `json:"description"`
	IsCompleted bool                 `json:"is_completed"`
	Priority    *models.TaskPriority `json:"priority"`
	Category    *string              `json:"category" binding:"omitempty,max=100"`
	DueDate     *time.Time           `json:"due_date"`
}

// UpdateTaskRequest is the body of PATCH /tasks/:id. Only fields present in
// the JSON are applied; an explicit null clears a nullable field.
type UpdateTaskRequest struct {
	Title       Optional[string]              `json:"title"`
	Description Optional[string]              `json:"description"`
	IsCompleted Optional[bool]                `json:"is_completed"`
	Priority    Optional[models.TaskPriority] `json:"priority"`
	Category    Optional[string]              `json:"category"`
	DueDate     Optional[time.Time]           `json:"due_date"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	IsCompleted bool                `json:"is_completed"`
	Priority    models.TaskPriority `json:"priority"`
	Category    string              `json:"category"`
	DueDate     *time.Time          `json:"due_date"`
	UserID      uint64              `json:"user_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TaskListResponse represents a page of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		Priority:    task.Priority,
		Category:    task.Category,
		DueDate:     task.DueDate,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Offset: params.Offset,
			Limit:  params.Limit,
			Total:  total,
		},
	}
}
