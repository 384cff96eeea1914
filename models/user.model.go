package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderUID string    `gorm:"uniqueIndex;not null" json:"-"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Name        string    `gorm:"default:''" json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
