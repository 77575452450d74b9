package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type LessonRepo interface {
	GetByID(dbc dbctx.Context, lessonID uuid.UUID, withQuestions bool) (*types.Lesson, error)
	// ListIDsByCourse returns lesson ids in course order.
	ListIDsByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]uuid.UUID, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	repoLog := baseLog.With("repo", "LessonRepo")
	return &lessonRepo{db: db, log: repoLog}
}

func (r *lessonRepo) GetByID(dbc dbctx.Context, lessonID uuid.UUID, withQuestions bool) (*types.Lesson, error) {
	if lessonID == uuid.Nil {
		return nil, nil
	}
	q := dbc.DB(r.db)
	if withQuestions {
		q = q.Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
	}
	var row types.Lesson
	if err := q.Where("id = ?", lessonID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *lessonRepo) ListIDsByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if courseID == uuid.Nil {
		return ids, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.Lesson{}).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
