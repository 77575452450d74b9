package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/stepwise-backend/internal/data/repos"
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
	"github.com/yungbote/stepwise-backend/internal/platform/ctxutil"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
)

type LessonOutline struct {
	ID           uuid.UUID `json:"id"`
	Index        int       `json:"index"`
	Title        string    `json:"title"`
	HasQuiz      bool      `json:"has_quiz"`
	PassingScore int       `json:"passing_score"`
}

type CourseView struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Style           string          `json:"style"`
	Level           string          `json:"level"`
	DurationMinutes int             `json:"duration_minutes"`
	PriceCents      int             `json:"price_cents"`
	TotalLessons    int             `json:"total_lessons"`
	Lessons         []LessonOutline `json:"lessons"`
}

// QuestionView is a quiz question without its answer key.
type QuestionView struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type LessonView struct {
	ID           uuid.UUID      `json:"id"`
	CourseID     uuid.UUID      `json:"course_id"`
	Index        int            `json:"index"`
	Title        string         `json:"title"`
	ContentMD    string         `json:"content_md"`
	VideoURL     string         `json:"video_url,omitempty"`
	PassingScore int            `json:"passing_score"`
	Questions    []QuestionView `json:"questions"`
}

type QuestionInput struct {
	Prompt       string   `json:"prompt" yaml:"prompt"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correct_index" yaml:"correct_index"`
	Explanation  string   `json:"explanation" yaml:"explanation"`
}

type LessonInput struct {
	Title        string          `json:"title" yaml:"title"`
	ContentMD    string          `json:"content_md" yaml:"content_md"`
	VideoURL     string          `json:"video_url" yaml:"video_url"`
	PassingScore int             `json:"passing_score" yaml:"passing_score"`
	Questions    []QuestionInput `json:"questions" yaml:"questions"`
}

type CourseInput struct {
	Title           string        `json:"title" yaml:"title"`
	Description     string        `json:"description" yaml:"description"`
	Style           string        `json:"style" yaml:"style"`
	Level           string        `json:"level" yaml:"level"`
	DurationMinutes int           `json:"duration_minutes" yaml:"duration_minutes"`
	PriceCents      int           `json:"price_cents" yaml:"price_cents"`
	Lessons         []LessonInput `json:"lessons" yaml:"lessons"`
}

func newCourseView(c *types.Course) *CourseView {
	out := &CourseView{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Style:           c.Style,
		Level:           c.Level,
		DurationMinutes: c.DurationMinutes,
		PriceCents:      c.PriceCents,
		TotalLessons:    len(c.Lessons),
		Lessons:         make([]LessonOutline, 0, len(c.Lessons)),
	}
	for _, l := range c.Lessons {
		if l == nil {
			continue
		}
		out.Lessons = append(out.Lessons, LessonOutline{
			ID:           l.ID,
			Index:        l.Index,
			Title:        l.Title,
			HasQuiz:      l.HasQuiz(),
			PassingScore: l.PassingScore,
		})
	}
	return out
}

func decodeOptions(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

func newLessonView(l *types.Lesson) *LessonView {
	out := &LessonView{
		ID:           l.ID,
		CourseID:     l.CourseID,
		Index:        l.Index,
		Title:        l.Title,
		ContentMD:    l.ContentMD,
		VideoURL:     l.VideoURL,
		PassingScore: l.PassingScore,
		Questions:    make([]QuestionView, 0, len(l.Questions)),
	}
	for _, q := range l.Questions {
		if q == nil {
			continue
		}
		out.Questions = append(out.Questions, QuestionView{
			Index:   q.Index,
			Prompt:  q.Prompt,
			Options: decodeOptions(q.Options),
		})
	}
	return out
}

func (u Usecases) ListCourses(ctx context.Context, filter repos.CourseFilter) ([]*CourseView, error) {
	rows, err := u.deps.Courses.List(dbctx.Context{Ctx: ctx}, filter)
	if err != nil {
		return nil, apierr.Internal("list_courses_failed", err)
	}
	out := make([]*CourseView, 0, len(rows))
	for _, c := range rows {
		out = append(out, newCourseView(c))
	}
	return out, nil
}

func (u Usecases) GetCourse(ctx context.Context, courseID uuid.UUID) (*CourseView, error) {
	c, err := u.deps.Courses.GetByID(dbctx.Context{Ctx: ctx}, courseID, true)
	if err != nil {
		return nil, apierr.Internal("load_course_failed", err)
	}
	if c == nil {
		return nil, apierr.NotFound("course_not_found", "course not found")
	}
	return newCourseView(c), nil
}

// GetLesson returns lesson content to callers with access to its course.
func (u Usecases) GetLesson(ctx context.Context, caller *ctxutil.RequestData, lessonID uuid.UUID) (*LessonView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	l, err := u.deps.Lessons.GetByID(dbc, lessonID, true)
	if err != nil {
		return nil, apierr.Internal("load_lesson_failed", err)
	}
	if l == nil {
		return nil, apierr.NotFound("lesson_not_found", "lesson not found")
	}
	c, err := u.deps.Courses.GetByID(dbc, l.CourseID, false)
	if err != nil {
		return nil, apierr.Internal("load_course_failed", err)
	}
	if c == nil {
		return nil, apierr.NotFound("lesson_not_found", "lesson not found")
	}
	if err := u.RequireAccess(ctx, caller, l.CourseID); err != nil {
		return nil, err
	}
	return newLessonView(l), nil
}

// LessonCourseID resolves the course a lesson belongs to.
func (u Usecases) LessonCourseID(ctx context.Context, lessonID uuid.UUID) (uuid.UUID, error) {
	l, err := u.deps.Lessons.GetByID(dbctx.Context{Ctx: ctx}, lessonID, false)
	if err != nil {
		return uuid.Nil, apierr.Internal("load_lesson_failed", err)
	}
	if l == nil {
		return uuid.Nil, apierr.NotFound("lesson_not_found", "lesson not found")
	}
	return l.CourseID, nil
}

func validLevel(level string) bool {
	switch level {
	case types.LevelBeginner, types.LevelIntermediate, types.LevelAdvanced:
		return true
	}
	return false
}

func validateCourseInput(in CourseInput) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "required"
	}
	if !validLevel(in.Level) {
		fields["level"] = "must be Beginner, Intermediate or Advanced"
	}
	if in.DurationMinutes < 0 {
		fields["duration_minutes"] = "must not be negative"
	}
	if in.PriceCents < 0 {
		fields["price_cents"] = "must not be negative"
	}
	for i, l := range in.Lessons {
		prefix := fmt.Sprintf("lessons[%d]", i)
		if strings.TrimSpace(l.Title) == "" {
			fields[prefix+".title"] = "required"
		}
		if l.PassingScore < 0 || l.PassingScore > 100 {
			fields[prefix+".passing_score"] = "must be between 0 and 100"
		}
		for j, q := range l.Questions {
			qp := fmt.Sprintf("%s.questions[%d]", prefix, j)
			if strings.TrimSpace(q.Prompt) == "" {
				fields[qp+".prompt"] = "required"
			}
			if len(q.Options) < 2 {
				fields[qp+".options"] = "at least two options"
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				fields[qp+".correct_index"] = "must reference an option"
			}
		}
	}
	return fields
}

// CreateCourse stores a course with its lessons and quizzes in one insert.
func (u Usecases) CreateCourse(ctx context.Context, in CourseInput) (*types.Course, error) {
	if fields := validateCourseInput(in); len(fields) > 0 {
		return nil, apierr.Validation("invalid_course", fmt.Errorf("invalid course"), fields)
	}
	course := &types.Course{
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Style:           strings.TrimSpace(in.Style),
		Level:           in.Level,
		DurationMinutes: in.DurationMinutes,
		PriceCents:      in.PriceCents,
	}
	for i, li := range in.Lessons {
		if li.PassingScore == 0 {
			li.PassingScore = u.deps.DefaultPassingScore
		}
		lesson := &types.Lesson{
			Index:        i,
			Title:        strings.TrimSpace(li.Title),
			ContentMD:    li.ContentMD,
			VideoURL:     li.VideoURL,
			PassingScore: li.PassingScore,
		}
		for j, qi := range li.Questions {
			opts, err := json.Marshal(qi.Options)
			if err != nil {
				return nil, apierr.Internal("encode_options_failed", err)
			}
			lesson.Questions = append(lesson.Questions, &types.QuizQuestion{
				Index:        j,
				Prompt:       strings.TrimSpace(qi.Prompt),
				Options:      datatypes.JSON(opts),
				CorrectIndex: qi.CorrectIndex,
				Explanation:  qi.Explanation,
			})
		}
		course.Lessons = append(course.Lessons, lesson)
	}

	var out *types.Course
	err := u.inTx(ctx, func(dbc dbctx.Context) error {
		created, err := u.deps.Courses.Create(dbc, course)
		if err != nil {
			return apierr.Internal("create_course_failed", err)
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.deps.Log.Info("course created", "course_id", out.ID, "lessons", len(out.Lessons))
	return out, nil
}

// DeleteCourse soft-deletes the course. Progress, enrollments and certificates
// are left in place.
func (u Usecases) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	ok, err := u.deps.Courses.SoftDeleteByID(dbctx.Context{Ctx: ctx}, courseID)
	if err != nil {
		return apierr.Internal("delete_course_failed", err)
	}
	if !ok {
		return apierr.NotFound("course_not_found", "course not found")
	}
	return nil
}
