package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type EnrollmentRepo interface {
	Create(dbc dbctx.Context, enrollment *types.Enrollment) (*types.Enrollment, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Enrollment, error)
	// FindHolding returns the active or completed enrollment for the pair, if any.
	FindHolding(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.Enrollment, error)
	ListByUserCourse(dbc dbctx.Context, userID, courseID uuid.UUID) ([]*types.Enrollment, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Enrollment, error)
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) error
	// CompleteActive flips the pair's active enrollments to completed.
	CompleteActive(dbc dbctx.Context, userID, courseID uuid.UUID) (int64, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) Create(dbc dbctx.Context, enrollment *types.Enrollment) (*types.Enrollment, error) {
	if enrollment == nil {
		return nil, nil
	}
	if err := dbc.DB(r.db).Create(enrollment).Error; err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (r *enrollmentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Enrollment, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Enrollment
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *enrollmentRepo) FindHolding(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	var row types.Enrollment
	err := dbc.DB(r.db).
		Where("user_id = ? AND course_id = ? AND status IN ?", userID, courseID,
			[]string{types.EnrollmentActive, types.EnrollmentCompleted}).
		Order("created_at DESC").
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *enrollmentRepo) ListByUserCourse(dbc dbctx.Context, userID, courseID uuid.UUID) ([]*types.Enrollment, error) {
	var out []*types.Enrollment
	if err := dbc.DB(r.db).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *enrollmentRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Enrollment, error) {
	var out []*types.Enrollment
	if userID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *enrollmentRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) error {
	return dbc.DB(r.db).
		Model(&types.Enrollment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *enrollmentRepo) CompleteActive(dbc dbctx.Context, userID, courseID uuid.UUID) (int64, error) {
	res := dbc.DB(r.db).
		Model(&types.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, types.EnrollmentActive).
		Update("status", types.EnrollmentCompleted)
	return res.RowsAffected, res.Error
}
