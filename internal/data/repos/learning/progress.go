package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/stepwise-backend/internal/data/db"
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type ProgressRepo interface {
	// Ensure inserts an empty record for the pair unless one already exists.
	Ensure(dbc dbctx.Context, userID, courseID uuid.UUID, now time.Time) error
	// Get loads the record and its completion set. With forUpdate the record
	// row stays locked until dbc.Tx ends.
	Get(dbc dbctx.Context, userID, courseID uuid.UUID, forUpdate bool) (*types.ProgressRecord, error)
	// AddLesson is an add-to-set; false means the lesson was already present.
	AddLesson(dbc dbctx.Context, progressID, lessonID uuid.UUID, at time.Time) (bool, error)
	RemoveLesson(dbc dbctx.Context, progressID, lessonID uuid.UUID) (bool, error)
	SetNote(dbc dbctx.Context, progressID, lessonID uuid.UUID, note string) (bool, error)
	Touch(dbc dbctx.Context, progressID uuid.UUID, at time.Time) error
	// MarkCompleted sets completed_at only if it is still null.
	MarkCompleted(dbc dbctx.Context, progressID uuid.UUID, at time.Time) (bool, error)
	// ClaimCertificate is the compare-and-set on certificate_issued.
	ClaimCertificate(dbc dbctx.Context, progressID uuid.UUID, certificateNumber string, at time.Time) (bool, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (r *progressRepo) Ensure(dbc dbctx.Context, userID, courseID uuid.UUID, now time.Time) error {
	row := &types.ProgressRecord{
		UserID:         userID,
		CourseID:       courseID,
		StartedAt:      now,
		LastAccessedAt: now,
	}
	return dbc.DB(r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(row).Error
}

func (r *progressRepo) Get(dbc dbctx.Context, userID, courseID uuid.UUID, forUpdate bool) (*types.ProgressRecord, error) {
	if userID == uuid.Nil || courseID == uuid.Nil {
		return nil, nil
	}
	q := dbc.DB(r.db)
	if forUpdate && db.SupportsRowLocks(q) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row types.ProgressRecord
	if err := q.Where("user_id = ? AND course_id = ?", userID, courseID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	var lessons []*types.ProgressLesson
	if err := dbc.DB(r.db).
		Where("progress_id = ?", row.ID).
		Order("completed_at ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	row.CompletedLessons = lessons
	return &row, nil
}

func (r *progressRepo) AddLesson(dbc dbctx.Context, progressID, lessonID uuid.UUID, at time.Time) (bool, error) {
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "progress_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).
		Create(&types.ProgressLesson{ProgressID: progressID, LessonID: lessonID, CompletedAt: at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *progressRepo) RemoveLesson(dbc dbctx.Context, progressID, lessonID uuid.UUID) (bool, error) {
	res := dbc.DB(r.db).
		Where("progress_id = ? AND lesson_id = ?", progressID, lessonID).
		Delete(&types.ProgressLesson{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *progressRepo) SetNote(dbc dbctx.Context, progressID, lessonID uuid.UUID, note string) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.ProgressLesson{}).
		Where("progress_id = ? AND lesson_id = ?", progressID, lessonID).
		Update("note", note)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *progressRepo) Touch(dbc dbctx.Context, progressID uuid.UUID, at time.Time) error {
	return dbc.DB(r.db).
		Model(&types.ProgressRecord{}).
		Where("id = ?", progressID).
		Update("last_accessed_at", at).Error
}

func (r *progressRepo) MarkCompleted(dbc dbctx.Context, progressID uuid.UUID, at time.Time) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.ProgressRecord{}).
		Where("id = ? AND completed_at IS NULL", progressID).
		Update("completed_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *progressRepo) ClaimCertificate(dbc dbctx.Context, progressID uuid.UUID, certificateNumber string, at time.Time) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.ProgressRecord{}).
		Where("id = ? AND certificate_issued = ? AND completed_at IS NOT NULL", progressID, false).
		Updates(map[string]interface{}{
			"certificate_issued":    true,
			"certificate_issued_at": at,
			"certificate_id":        certificateNumber,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
