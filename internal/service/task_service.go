package service

import (
	"context"

	"github.com/dom/todo-api/internal/domain"
	"github.com/dom/todo-api/internal/repository"
)

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput carries a partial update; nil fields keep their prior value.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (s *TaskService) Create(ctx context.Context, ownerID uint, input CreateTaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, domain.ErrEmptyTitle
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		OwnerID:     ownerID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) List(ctx context.Context, ownerID uint, filter domain.TaskFilter) ([]*domain.Task, error) {
	return s.taskRepo.GetByOwner(ctx, ownerID, filter)
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID uint) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, ownerID, taskID)
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID uint, input UpdateTaskInput) (*domain.Task, error) {
	if input.Title != nil && *input.Title == "" {
		return nil, domain.ErrEmptyTitle
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Completed != nil {
		fields["completed"] = *input.Completed
	}

	// Nothing supplied leaves the task as it is
	if len(fields) == 0 {
		return s.taskRepo.GetByID(ctx, ownerID, taskID)
	}

	return s.taskRepo.Update(ctx, ownerID, taskID, fields)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uint) error {
	return s.taskRepo.Delete(ctx, ownerID, taskID)
}
