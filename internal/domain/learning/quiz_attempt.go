package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizAttempt struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	LessonID uuid.UUID      `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Answers  datatypes.JSON `gorm:"column:answers" json:"answers"`
	Score    int            `gorm:"column:score;not null" json:"score"`
	Passed   bool           `gorm:"column:passed;not null" json:"passed"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }

func (q *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
