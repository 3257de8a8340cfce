package repository

import (
	"context"
	"time"

	"github.com/dom/todo-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByOwner(ctx context.Context, ownerID uint, filter domain.TaskFilter) ([]*domain.Task, error)
	GetByID(ctx context.Context, ownerID, id uint) (*domain.Task, error)
	Update(ctx context.Context, ownerID, id uint, fields map[string]interface{}) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// RevocationRepository is the set of token IDs invalidated before expiry.
// Revoke is idempotent; implementations must be safe for concurrent use and
// a revocation must be visible to IsRevoked calls issued after it returns.
type RevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Repositories struct {
	User       UserRepository
	Task       TaskRepository
	Revocation RevocationRepository
}
