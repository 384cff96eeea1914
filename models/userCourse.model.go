package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserCourse tracks one user's enrollment in one course. A user has at most
// one record with IsCompleted false at any time.
type UserCourse struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"type:uuid;index;not null" json:"userId"`
	CourseID    string     `gorm:"type:uuid;index;not null" json:"courseId"`
	IsCompleted bool       `gorm:"default:false" json:"isCompleted"`
	StartedAt   time.Time  `gorm:"autoCreateTime" json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	User        User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course      Course     `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (uc *UserCourse) BeforeCreate(tx *gorm.DB) error {
	if uc.ID == "" {
		uc.ID = uuid.NewString()
	}
	return nil
}
