package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/auth"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/constants"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/models"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrCategoryEmpty   = errors.New("category cannot be empty")
	ErrInvalidPriority = errors.New("priority must be one of Low, Medium, High")
)

// TaskService handles task business logic. Every operation on an existing
// task checks existence, then ownership, then performs the change.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	IsCompleted bool
	Priority    *models.TaskPriority
	Category    *string
	DueDate     *time.Time
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged; the Clear flags set a nullable field to null.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	IsCompleted      *bool
	Priority         *models.TaskPriority
	Category         *string
	DueDate          *time.Time
	ClearDueDate     bool
}

// CreateTask creates a task owned by ownerID
func (s *TaskService) CreateTask(ctx context.Context, ownerID uint64, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	priority := models.TaskPriorityMedium
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		priority = *input.Priority
	}

	category := constants.DefaultTaskCategory
	if input.Category != nil && strings.TrimSpace(*input.Category) != "" {
		category = strings.TrimSpace(*input.Category)
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		IsCompleted: input.IsCompleted,
		Priority:    priority,
		Category:    category,
		DueDate:     input.DueDate,
		UserID:      ownerID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns one page of the owner's tasks, newest first, and the
// owner's total task count.
func (s *TaskService) ListTasks(ctx context.Context, ownerID uint64, offset, limit int) ([]models.Task, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	tasks, total, err := s.taskRepo.ListByOwner(ctx, repository.TaskFilter{
		OwnerID: ownerID,
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task the caller owns
func (s *TaskService) GetTask(ctx context.Context, taskID, callerID uint64) (*models.Task, error) {
	return s.authorizedTask(ctx, taskID, callerID, auth.ActionRead)
}

// UpdateTask applies a partial update to a task the caller owns
func (s *TaskService) UpdateTask(ctx context.Context, taskID, callerID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.authorizedTask(ctx, taskID, callerID, auth.ActionModify)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = title
	}

	if input.ClearDescription {
		task.Description = nil
	} else if input.Description != nil {
		task.Description = input.Description
	}

	if input.IsCompleted != nil {
		task.IsCompleted = *input.IsCompleted
	}

	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}

	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, ErrCategoryEmpty
		}
		task.Category = category
	}

	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted between the read and the write.
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task the caller owns
func (s *TaskService) DeleteTask(ctx context.Context, taskID, callerID uint64) error {
	if _, err := s.authorizedTask(ctx, taskID, callerID, auth.ActionDelete); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) authorizedTask(ctx context.Context, taskID, callerID uint64, action auth.Action) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := auth.Authorize(task.UserID, callerID, action); err != nil {
		return nil, err
	}

	return task, nil
}
