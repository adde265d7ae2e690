package repository

import (
	"context"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/database"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return translate(r.db.WithContext(ctx).Create(task).Error)
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

// ListByOwner retrieves a page of tasks owned by filter.OwnerID, newest first
func (r *GormTaskRepository) ListByOwner(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	tasks := []models.Task{}

	query := r.db.WithContext(ctx).Model(&models.Task{}).Where("user_id = ?", filter.OwnerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Scopes(database.Paginate(filter.Offset, filter.Limit)).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update writes every mutable column of task. It never inserts: a task that
// no longer exists yields ErrNotFound.
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	result := r.db.WithContext(ctx).
		Model(task).
		Select("*").
		Omit("id", "user_id", "created_at", clause.Associations).
		Updates(task)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
