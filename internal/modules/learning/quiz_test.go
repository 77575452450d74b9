package learning

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/stepwise-backend/internal/data/repos/testutil"
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
)

func TestSubmitQuizGatesCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, f.db, "quiz@example.com", types.RoleStudent)
	c := testutil.SeedCourse(t, f.db, "Samba", 2)
	// Ten questions, correct answer always 1.
	correct := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	testutil.SeedQuiz(t, f.db, c.Lessons[0], correct, 70)

	sixty := []int{1, 1, 1, 1, 1, 1, 0, 0, 0, 0}
	out, err := f.uc.SubmitQuiz(ctx, u.ID, c.Lessons[0].ID, sixty)
	require.NoError(t, err)
	assert.Equal(t, 60, out.Score)
	assert.False(t, out.Passed)
	assert.False(t, out.LessonCompleted)
	assert.Nil(t, out.Progress)
	require.Len(t, out.Feedback, 10)
	assert.False(t, out.Feedback[6].Correct)
	assert.Equal(t, 1, out.Feedback[6].CorrectIndex)

	_, err = f.uc.GetProgress(ctx, u.ID, c.ID)
	assert.True(t, apierr.IsNotFound(err), "a failing score must not touch progress")

	eighty := []int{1, 1, 1, 1, 1, 1, 1, 1, 0, 0}
	out, err = f.uc.SubmitQuiz(ctx, u.ID, c.Lessons[0].ID, eighty)
	require.NoError(t, err)
	assert.Equal(t, 80, out.Score)
	assert.True(t, out.Passed)
	assert.True(t, out.LessonCompleted)
	require.NotNil(t, out.Progress)
	assert.Equal(t, 50, out.Progress.Progress)

	attempts, err := f.uc.ListQuizAttempts(ctx, u.ID, c.Lessons[0].ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestSubmitQuizErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, f.db, "quizerr@example.com", types.RoleStudent)
	c := testutil.SeedCourse(t, f.db, "Merengue", 2)
	testutil.SeedQuiz(t, f.db, c.Lessons[0], []int{0, 2}, 0)

	_, err := f.uc.SubmitQuiz(ctx, u.ID, uuid.New(), []int{0})
	assert.True(t, apierr.IsNotFound(err))

	_, err = f.uc.SubmitQuiz(ctx, u.ID, c.Lessons[1].ID, []int{0})
	require.True(t, apierr.IsNotFound(err))
	var ae *apierr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "quiz_not_found", ae.Code)

	_, err = f.uc.SubmitQuiz(ctx, u.ID, c.Lessons[0].ID, []int{0})
	assert.True(t, apierr.IsValidation(err))

	attempts, err := f.uc.ListQuizAttempts(ctx, u.ID, c.Lessons[0].ID)
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestPassingQuizOnLastLessonIssuesCertificate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, f.db, "quizcert@example.com", types.RoleStudent)
	c := testutil.SeedCourse(t, f.db, "Foxtrot", 1)
	testutil.SeedQuiz(t, f.db, c.Lessons[0], []int{3}, 100)

	out, err := f.uc.SubmitQuiz(ctx, u.ID, c.Lessons[0].ID, []int{3})
	require.NoError(t, err)
	require.True(t, out.LessonCompleted)
	assert.Equal(t, 100, out.Progress.Progress)
	assert.True(t, out.Progress.Certificate.Issued)
	assert.Equal(t, 1, f.notify.count(EventCertificateIssued))
}
