package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressRecord struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course,priority:1" json:"user_id"`
	CourseID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course,priority:2" json:"course_id"`
	StartedAt      time.Time  `gorm:"column:started_at;not null" json:"started_at"`
	LastAccessedAt time.Time  `gorm:"column:last_accessed_at;not null" json:"last_accessed_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at"`

	CertificateIssued   bool       `gorm:"column:certificate_issued;not null;default:false" json:"certificate_issued"`
	CertificateIssuedAt *time.Time `gorm:"column:certificate_issued_at" json:"certificate_issued_at,omitempty"`
	CertificateID       string     `gorm:"column:certificate_id" json:"certificate_id,omitempty"`

	CompletedLessons []*ProgressLesson `gorm:"foreignKey:ProgressID;references:ID" json:"completed_lessons"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ProgressRecord) TableName() string { return "progress_record" }

func (p *ProgressRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProgressLesson is one member of a record's completion set.
type ProgressLesson struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ProgressID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_lesson,priority:1" json:"-"`
	LessonID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_lesson,priority:2" json:"lesson_id"`
	CompletedAt time.Time `gorm:"column:completed_at;not null" json:"completed_at"`
	Note        string    `gorm:"column:note;type:text" json:"note,omitempty"`
}

func (ProgressLesson) TableName() string { return "progress_lesson" }

func (p *ProgressLesson) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
