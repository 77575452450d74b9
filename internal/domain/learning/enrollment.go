package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentExpired   = "expired"
	EnrollmentCancelled = "cancelled"
)

func ValidEnrollmentStatus(s string) bool {
	switch s {
	case EnrollmentActive, EnrollmentCompleted, EnrollmentExpired, EnrollmentCancelled:
		return true
	}
	return false
}

type Enrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_enrollment_user_course,priority:1" json:"user_id"`
	CourseID   uuid.UUID `gorm:"type:uuid;not null;index:idx_enrollment_user_course,priority:2" json:"course_id"`
	Status     string    `gorm:"column:status;not null;index" json:"status"`
	StartDate  time.Time `gorm:"column:start_date;not null" json:"start_date"`
	ExpiryDate time.Time `gorm:"column:expiry_date;not null" json:"expiry_date"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollment" }

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// GrantsAccess reports whether the enrollment unlocks course content at now.
func (e *Enrollment) GrantsAccess(now time.Time) bool {
	if e == nil {
		return false
	}
	if e.Status != EnrollmentActive && e.Status != EnrollmentCompleted {
		return false
	}
	return e.ExpiryDate.After(now)
}
