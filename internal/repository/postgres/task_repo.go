package postgres

import (
	"context"
	"errors"

	"github.com/dom/todo-api/internal/domain"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *taskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) GetByOwner(ctx context.Context, ownerID uint, filter domain.TaskFilter) ([]*domain.Task, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	switch filter {
	case domain.TaskFilterCompleted:
		query = query.Where("completed = ?", true)
	case domain.TaskFilterPending:
		query = query.Where("completed = ?", false)
	}

	var tasks []*domain.Task
	if err := query.Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, ownerID, id uint) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).First(&task, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Update overwrites only the given columns, scoped to the owner, and returns
// the row as written. The write and the read-back share one transaction so a
// concurrent delete surfaces as ErrTaskNotFound instead of a phantom task,
// and concurrent updates to disjoint fields do not clobber each other.
func (r *taskRepository) Update(ctx context.Context, ownerID, id uint, fields map[string]interface{}) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Task{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrTaskNotFound
		}
		return tx.First(&task, "id = ? AND owner_id = ?", id, ownerID).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, ownerID, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		return result.Error
	}
	// A miss and a foreign owner look identical to the caller.
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
