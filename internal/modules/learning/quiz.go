package learning

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/modules/learning/quiz"
	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
)

type QuizOutcome struct {
	quiz.Result
	LessonCompleted bool          `json:"lesson_completed"`
	Progress        *ProgressView `json:"progress,omitempty"`
}

func gradeQuestions(l *types.Lesson) []quiz.Question {
	out := make([]quiz.Question, 0, len(l.Questions))
	for _, q := range l.Questions {
		out = append(out, quiz.Question{
			CorrectIndex: q.CorrectIndex,
			OptionCount:  len(decodeOptions(q.Options)),
			Explanation:  q.Explanation,
		})
	}
	return out
}

// SubmitQuiz grades the answers and records the attempt. A passing score marks
// the lesson complete in the same transaction.
func (u Usecases) SubmitQuiz(ctx context.Context, userID, lessonID uuid.UUID, answers []int) (*QuizOutcome, error) {
	var (
		out QuizOutcome
		res completionResult
	)
	err := u.inTx(ctx, func(dbc dbctx.Context) error {
		lesson, err := u.deps.Lessons.GetByID(dbc, lessonID, true)
		if err != nil {
			return apierr.Internal("load_lesson_failed", err)
		}
		if lesson == nil {
			return apierr.NotFound("lesson_not_found", "lesson not found")
		}
		if !lesson.HasQuiz() {
			return apierr.NotFound("quiz_not_found", "lesson has no quiz")
		}

		result, err := quiz.Grade(answers, gradeQuestions(lesson), lesson.PassingScore)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(answers)
		if err != nil {
			return apierr.Internal("encode_answers_failed", err)
		}
		if _, err := u.deps.QuizAttempts.Create(dbc, []*types.QuizAttempt{{
			UserID:   userID,
			LessonID: lessonID,
			Answers:  datatypes.JSON(raw),
			Score:    result.Score,
			Passed:   result.Passed,
		}}); err != nil {
			return apierr.Internal("record_attempt_failed", err)
		}

		out = QuizOutcome{Result: result}
		if !result.Passed {
			return nil
		}
		res, err = u.markLessonCompleteTx(dbc, userID, lesson.CourseID, lessonID)
		if err != nil {
			return err
		}
		out.LessonCompleted = true
		out.Progress = res.view
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.afterCompletion(ctx, userID, res)
	u.deps.Log.Debug("quiz submitted", "lesson_id", lessonID, "user_id", userID, "score", out.Score, "passed", out.Passed)
	return &out, nil
}

func (u Usecases) ListQuizAttempts(ctx context.Context, userID, lessonID uuid.UUID) ([]*types.QuizAttempt, error) {
	rows, err := u.deps.QuizAttempts.ListByUserLesson(dbctx.Context{Ctx: ctx}, userID, lessonID)
	if err != nil {
		return nil, apierr.Internal("load_attempts_failed", err)
	}
	if rows == nil {
		rows = []*types.QuizAttempt{}
	}
	return rows, nil
}
