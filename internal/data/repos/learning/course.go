package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type CourseFilter struct {
	Style string
	Level string
}

type CourseRepo interface {
	// Create inserts the course together with its nested lessons and questions.
	Create(dbc dbctx.Context, course *types.Course) (*types.Course, error)
	GetByID(dbc dbctx.Context, courseID uuid.UUID, withQuestions bool) (*types.Course, error)
	List(dbc dbctx.Context, filter CourseFilter) ([]*types.Course, error)
	SoftDeleteByID(dbc dbctx.Context, courseID uuid.UUID) (bool, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

func (r *courseRepo) Create(dbc dbctx.Context, course *types.Course) (*types.Course, error) {
	if course == nil {
		return nil, nil
	}
	if err := dbc.DB(r.db).Create(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (r *courseRepo) GetByID(dbc dbctx.Context, courseID uuid.UUID, withQuestions bool) (*types.Course, error) {
	if courseID == uuid.Nil {
		return nil, nil
	}
	q := dbc.DB(r.db).Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
	if withQuestions {
		q = q.Preload("Lessons.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
	}
	var row types.Course
	if err := q.Where("id = ?", courseID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *courseRepo) List(dbc dbctx.Context, filter CourseFilter) ([]*types.Course, error) {
	q := dbc.DB(r.db).Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Lessons.Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
	if filter.Style != "" {
		q = q.Where("style = ?", filter.Style)
	}
	if filter.Level != "" {
		q = q.Where("level = ?", filter.Level)
	}
	var results []*types.Course
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) SoftDeleteByID(dbc dbctx.Context, courseID uuid.UUID) (bool, error) {
	if courseID == uuid.Nil {
		return false, nil
	}
	res := dbc.DB(r.db).Where("id = ?", courseID).Delete(&types.Course{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
