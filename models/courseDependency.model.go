package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseDependency is a directed edge: RequiredCourse must be completed
// before DesiredCourse may be started.
type CourseDependency struct {
	ID               string `gorm:"type:uuid;primaryKey" json:"id"`
	DesiredCourseID  string `gorm:"type:uuid;index;not null" json:"desiredCourseId"`
	RequiredCourseID string `gorm:"type:uuid;index;not null" json:"requiredCourseId"`
	DesiredCourse    Course `gorm:"foreignKey:DesiredCourseID;constraint:OnDelete:CASCADE" json:"-"`
	RequiredCourse   Course `gorm:"foreignKey:RequiredCourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (d *CourseDependency) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
