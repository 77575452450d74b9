package testutil

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/stepwise-backend/internal/domain"
)

func SeedUser(tb testing.TB, tx *gorm.DB, email, role string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Name:     "Dana Dancer",
		Email:    email,
		Password: "pw",
		Role:     role,
	}
	if err := tx.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedCourse creates a course with n lessons indexed 0..n-1.
func SeedCourse(tb testing.TB, tx *gorm.DB, title string, n int) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:              uuid.New(),
		Title:           title,
		Description:     "seeded",
		Style:           "Salsa",
		Level:           types.LevelBeginner,
		DurationMinutes: 30 * n,
	}
	if err := tx.Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	for i := 0; i < n; i++ {
		c.Lessons = append(c.Lessons, SeedLesson(tb, tx, c.ID, i))
	}
	return c
}

func SeedLesson(tb testing.TB, tx *gorm.DB, courseID uuid.UUID, index int) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:        uuid.New(),
		CourseID:  courseID,
		Index:     index,
		Title:     fmt.Sprintf("Lesson %d", index+1),
		ContentMD: "Step, step, turn.",
	}
	if err := tx.Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

// SeedQuiz attaches one question per entry of correct, each with four options.
func SeedQuiz(tb testing.TB, tx *gorm.DB, lesson *types.Lesson, correct []int, passingScore int) []*types.QuizQuestion {
	tb.Helper()
	opts, _ := json.Marshal([]string{"a", "b", "c", "d"})
	out := make([]*types.QuizQuestion, 0, len(correct))
	for i, c := range correct {
		q := &types.QuizQuestion{
			ID:           uuid.New(),
			LessonID:     lesson.ID,
			Index:        i,
			Prompt:       fmt.Sprintf("Question %d", i+1),
			Options:      datatypes.JSON(opts),
			CorrectIndex: c,
			Explanation:  fmt.Sprintf("Answer is %d", c),
		}
		if err := tx.Create(q).Error; err != nil {
			tb.Fatalf("seed question: %v", err)
		}
		out = append(out, q)
	}
	if passingScore > 0 {
		if err := tx.Model(&types.Lesson{}).Where("id = ?", lesson.ID).Update("passing_score", passingScore).Error; err != nil {
			tb.Fatalf("seed passing score: %v", err)
		}
		lesson.PassingScore = passingScore
	}
	lesson.Questions = out
	return out
}

func SeedEnrollment(tb testing.TB, tx *gorm.DB, userID, courseID uuid.UUID, status string) *types.Enrollment {
	tb.Helper()
	now := time.Now().UTC()
	e := &types.Enrollment{
		ID:         uuid.New(),
		UserID:     userID,
		CourseID:   courseID,
		Status:     status,
		StartDate:  now,
		ExpiryDate: now.AddDate(1, 0, 0),
	}
	if err := tx.Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}
