package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"

	DefaultPassingScore = 70
)

type Course struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"column:title;not null" json:"title"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	Style           string    `gorm:"column:style;index" json:"style"`
	Level           string    `gorm:"column:level;index" json:"level"`
	DurationMinutes int       `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
	PriceCents      int       `gorm:"column:price_cents;not null;default:0" json:"price_cents"`

	Lessons []*Lesson `gorm:"foreignKey:CourseID;references:ID" json:"lessons,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Lesson.Index orders the course and defines the completion denominator.
type Lesson struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null;index:idx_lesson_course_index,priority:1" json:"course_id"`
	Index        int       `gorm:"column:position;not null;index:idx_lesson_course_index,priority:2" json:"index"`
	Title        string    `gorm:"column:title;not null" json:"title"`
	ContentMD    string    `gorm:"column:content_md;type:text" json:"content_md,omitempty"`
	VideoURL     string    `gorm:"column:video_url" json:"video_url,omitempty"`
	PassingScore int       `gorm:"column:passing_score;not null;default:70" json:"passing_score"`

	Questions []*QuizQuestion `gorm:"foreignKey:LessonID;references:ID" json:"questions,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lesson) TableName() string { return "lesson" }

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.PassingScore <= 0 {
		l.PassingScore = DefaultPassingScore
	}
	return nil
}

func (l *Lesson) HasQuiz() bool { return l != nil && len(l.Questions) > 0 }

type QuizQuestion struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Index        int            `gorm:"column:position;not null" json:"index"`
	Prompt       string         `gorm:"column:prompt;type:text;not null" json:"prompt"`
	Options      datatypes.JSON `gorm:"column:options" json:"options"`
	CorrectIndex int            `gorm:"column:correct_index;not null" json:"-"`
	Explanation  string         `gorm:"column:explanation;type:text" json:"-"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (QuizQuestion) TableName() string { return "quiz_question" }

func (q *QuizQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
