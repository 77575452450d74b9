package learning

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/stepwise-backend/internal/data/repos"
	"github.com/yungbote/stepwise-backend/internal/data/repos/testutil"
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
	"github.com/yungbote/stepwise-backend/internal/platform/ctxutil"
)

func sampleCourseInput() CourseInput {
	return CourseInput{
		Title:           "Salsa Foundations",
		Description:     "Timing, basic step, first turns.",
		Style:           "Salsa",
		Level:           types.LevelBeginner,
		DurationMinutes: 90,
		Lessons: []LessonInput{
			{Title: "Timing", ContentMD: "Count 1-2-3, 5-6-7."},
			{
				Title:        "Right turn",
				PassingScore: 80,
				Questions: []QuestionInput{
					{Prompt: "On which count do you prep?", Options: []string{"1", "3", "5"}, CorrectIndex: 0, Explanation: "Prep on 1."},
					{Prompt: "Which hand leads?", Options: []string{"left", "right"}, CorrectIndex: 0},
				},
			},
		},
	}
}

func TestCreateAndGetCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.CreateCourse(ctx, sampleCourseInput())
	require.NoError(t, err)
	require.Len(t, created.Lessons, 2)

	view, err := f.uc.GetCourse(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalLessons)
	assert.Equal(t, "Timing", view.Lessons[0].Title)
	assert.False(t, view.Lessons[0].HasQuiz)
	assert.True(t, view.Lessons[1].HasQuiz)
	assert.Equal(t, 80, view.Lessons[1].PassingScore)
	assert.Equal(t, 70, view.Lessons[0].PassingScore)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_index")

	list, err := f.uc.ListCourses(ctx, repos.CourseFilter{Style: "Salsa"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = f.uc.ListCourses(ctx, repos.CourseFilter{Level: types.LevelAdvanced})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateCourseValidation(t *testing.T) {
	f := newFixture(t)
	in := sampleCourseInput()
	in.Title = " "
	in.Level = "Expert"
	in.Lessons[1].Questions[0].CorrectIndex = 7
	in.Lessons[1].Questions[1].Options = []string{"only"}

	_, err := f.uc.CreateCourse(context.Background(), in)
	require.True(t, apierr.IsValidation(err))
	var ae *apierr.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "title")
	assert.Contains(t, ae.Fields, "level")
	assert.Contains(t, ae.Fields, "lessons[1].questions[0].correct_index")
	assert.Contains(t, ae.Fields, "lessons[1].questions[1].options")
}

func TestGetLessonIsGated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, f.db, "lesson@example.com", types.RoleStudent)
	created, err := f.uc.CreateCourse(ctx, sampleCourseInput())
	require.NoError(t, err)
	lessonID := created.Lessons[1].ID
	caller := &ctxutil.RequestData{UserID: u.ID, Role: types.RoleStudent}

	_, err = f.uc.GetLesson(ctx, caller, lessonID)
	assert.Equal(t, 403, apierr.StatusOf(err))

	_, err = f.uc.Enroll(ctx, u.ID, created.ID)
	require.NoError(t, err)
	lesson, err := f.uc.GetLesson(ctx, caller, lessonID)
	require.NoError(t, err)
	require.Len(t, lesson.Questions, 2)
	assert.Equal(t, []string{"1", "3", "5"}, lesson.Questions[0].Options)

	raw, err := json.Marshal(lesson)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_index")
	assert.NotContains(t, string(raw), "Prep on 1.")
}

func TestDeleteCourseIsSoft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, f.db, "del@example.com", types.RoleStudent)
	c := testutil.SeedCourse(t, f.db, "Retired Routine", 1)
	_, err := f.uc.MarkLessonComplete(ctx, u.ID, c.ID, c.Lessons[0].ID)
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteCourse(ctx, c.ID))
	assert.True(t, apierr.IsNotFound(f.uc.DeleteCourse(ctx, c.ID)))

	_, err = f.uc.GetCourse(ctx, c.ID)
	assert.True(t, apierr.IsNotFound(err))

	view, err := f.uc.GetProgress(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, view.Certificate.Issued)
}
