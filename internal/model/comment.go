package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment всегда хранит автора, даже для анонимных комментариев.
// Сокрытие автора происходит в policy.RedactComment, а не здесь.
type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Content     string    `gorm:"not null"`
	IsAnonymous bool      `gorm:"not null;default:false"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Task   Task `gorm:"foreignKey:TaskID"`
	Author User `gorm:"foreignKey:CreatedBy"`
}
