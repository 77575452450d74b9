package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type QuizAttemptRepo interface {
	Create(dbc dbctx.Context, attempts []*types.QuizAttempt) ([]*types.QuizAttempt, error)
	ListByUserLesson(dbc dbctx.Context, userID, lessonID uuid.UUID) ([]*types.QuizAttempt, error)
}

type quizAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	repoLog := baseLog.With("repo", "QuizAttemptRepo")
	return &quizAttemptRepo{db: db, log: repoLog}
}

func (r *quizAttemptRepo) Create(dbc dbctx.Context, attempts []*types.QuizAttempt) ([]*types.QuizAttempt, error) {
	if len(attempts) == 0 {
		return []*types.QuizAttempt{}, nil
	}
	if err := dbc.DB(r.db).Create(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *quizAttemptRepo) ListByUserLesson(dbc dbctx.Context, userID, lessonID uuid.UUID) ([]*types.QuizAttempt, error) {
	var results []*types.QuizAttempt
	if userID == uuid.Nil || lessonID == uuid.Nil {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
