package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	Status      string     `gorm:"not null;default:'todo';check:status IN ('todo', 'in_progress', 'review', 'completed')"`
	Priority    string     `gorm:"not null;default:'medium';check:priority IN ('low', 'medium', 'high', 'critical')"`
	DueDate     *time.Time
	Version     int `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Project  Project `gorm:"foreignKey:ProjectID"`
	Assignee *User   `gorm:"foreignKey:AssignedTo"`
	Creator  User    `gorm:"foreignKey:CreatedBy"`
}

// Статусы задачи
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskReview     = "review"
	TaskCompleted  = "completed"
)

// Приоритеты задачи
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// ValidTaskStatus reports whether status is a recognized task status.
func ValidTaskStatus(status string) bool {
	switch status {
	case TaskTodo, TaskInProgress, TaskReview, TaskCompleted:
		return true
	}
	return false
}

// ValidTaskPriority reports whether priority is a recognized task priority.
func ValidTaskPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}
