package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Role           string    `gorm:"not null;default:'team_member';check:role IN ('admin', 'team_leader', 'team_member', 'client')"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// Роли пользователей в системе
const (
	RoleAdmin      = "admin"       // полный доступ ко всем проектам
	RoleTeamLeader = "team_leader" // руководитель команды
	RoleTeamMember = "team_member" // роль по умолчанию
	RoleClient     = "client"      // внешний заказчик
)

// ValidRole reports whether role is one of the recognized user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeamLeader, RoleTeamMember, RoleClient:
		return true
	}
	return false
}
