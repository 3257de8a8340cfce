package domain

import "time"

type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	OwnerID     uint      `json:"ownerId" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskFilter selects which tasks a list operation returns.
type TaskFilter int

const (
	TaskFilterAll TaskFilter = iota
	TaskFilterCompleted
	TaskFilterPending
)
