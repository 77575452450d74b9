package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type CertificateRepo interface {
	Create(dbc dbctx.Context, cert *types.Certificate) (*types.Certificate, error)
	GetByNumber(dbc dbctx.Context, number string) (*types.Certificate, error)
	GetByUserCourse(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.Certificate, error)
	CountByUserCourse(dbc dbctx.Context, userID, courseID uuid.UUID) (int64, error)
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) error
	SetArchiveKey(dbc dbctx.Context, id uuid.UUID, key string) error
}

type certificateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	return &certificateRepo{db: db, log: baseLog.With("repo", "CertificateRepo")}
}

func (r *certificateRepo) Create(dbc dbctx.Context, cert *types.Certificate) (*types.Certificate, error) {
	if cert == nil {
		return nil, nil
	}
	if err := dbc.DB(r.db).Create(cert).Error; err != nil {
		return nil, err
	}
	return cert, nil
}

func (r *certificateRepo) GetByNumber(dbc dbctx.Context, number string) (*types.Certificate, error) {
	if number == "" {
		return nil, nil
	}
	var row types.Certificate
	if err := dbc.DB(r.db).Where("certificate_number = ?", number).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *certificateRepo) GetByUserCourse(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.Certificate, error) {
	var row types.Certificate
	if err := dbc.DB(r.db).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *certificateRepo) CountByUserCourse(dbc dbctx.Context, userID, courseID uuid.UUID) (int64, error) {
	var n int64
	err := dbc.DB(r.db).
		Model(&types.Certificate{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error
	return n, err
}

func (r *certificateRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) error {
	return dbc.DB(r.db).
		Model(&types.Certificate{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *certificateRepo) SetArchiveKey(dbc dbctx.Context, id uuid.UUID, key string) error {
	return dbc.DB(r.db).
		Model(&types.Certificate{}).
		Where("id = ?", id).
		Update("archive_key", key).Error
}
