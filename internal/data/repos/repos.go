package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/stepwise-backend/internal/data/repos/learning"
	"github.com/yungbote/stepwise-backend/internal/data/repos/user"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type CourseRepo = learning.CourseRepo
type CourseFilter = learning.CourseFilter
type LessonRepo = learning.LessonRepo
type EnrollmentRepo = learning.EnrollmentRepo
type ProgressRepo = learning.ProgressRepo
type CertificateRepo = learning.CertificateRepo
type QuizAttemptRepo = learning.QuizAttemptRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}
func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return learning.NewLessonRepo(db, baseLog)
}
func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return learning.NewEnrollmentRepo(db, baseLog)
}
func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return learning.NewProgressRepo(db, baseLog)
}
func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	return learning.NewCertificateRepo(db, baseLog)
}
func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	return learning.NewQuizAttemptRepo(db, baseLog)
}
