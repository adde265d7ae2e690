package repository

import (
	"context"
	"errors"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEmail is returned when an insert or update violates the unique email index.
	ErrDuplicateEmail = errors.New("repository: email already exists")
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// ListByOwner retrieves one page of a user's tasks and the user's total task count
	ListByOwner(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update saves every mutable column of an existing task, ErrNotFound if it is gone
	Update(ctx context.Context, task *models.Task) error

	// Delete deletes a task
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OwnerID uint64
	Offset  int
	Limit   int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by exact email match
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update saves every mutable column of an existing user, ErrNotFound if it is gone
	Update(ctx context.Context, user *models.User) error
}
