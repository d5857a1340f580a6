package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"not null;default:'not_started';check:status IN ('not_started', 'in_progress', 'completed', 'on_hold')"`
	StartDate   time.Time
	EndDate     *time.Time
	Version     int `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner       User   `gorm:"foreignKey:CreatedBy"`
	TeamMembers []User `gorm:"many2many:project_members"`
}

// Статусы проекта
const (
	ProjectNotStarted = "not_started"
	ProjectInProgress = "in_progress"
	ProjectCompleted  = "completed"
	ProjectOnHold     = "on_hold"
)

// ValidProjectStatus reports whether status is a recognized project status.
func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectNotStarted, ProjectInProgress, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// HasMember reports whether userID appears in the project team. The
// owner counts as a member even when absent from project_members.
func (p *Project) HasMember(userID uuid.UUID) bool {
	if p.CreatedBy == userID {
		return true
	}
	for _, m := range p.TeamMembers {
		if m.ID == userID {
			return true
		}
	}
	return false
}
