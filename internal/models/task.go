package models

import (
	"time"
)

// Task is owned by exactly one user for its whole life. Deletes are hard
// deletes, so there is no DeletedAt column.
type Task struct {
	ID              uint64     `gorm:"primarykey" json:"id"`
	UserID          uint64     `gorm:"not null;index" json:"user_id"`
	Description     string     `gorm:"type:varchar(255);not null" json:"description"`
	Estimated       int        `gorm:"not null;default:1" json:"estimated"`
	Completed       bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt     *time.Time `json:"completed_at"`
	AssignedByAdmin bool       `gorm:"not null;default:false" json:"assigned_by_admin"`
	CreatedAt       time.Time  `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
