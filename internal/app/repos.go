package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/stepwise-backend/internal/data/repos"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	Course      repos.CourseRepo
	Lesson      repos.LessonRepo
	Enrollment  repos.EnrollmentRepo
	Progress    repos.ProgressRepo
	Certificate repos.CertificateRepo
	QuizAttempt repos.QuizAttemptRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Course:      repos.NewCourseRepo(db, log),
		Lesson:      repos.NewLessonRepo(db, log),
		Enrollment:  repos.NewEnrollmentRepo(db, log),
		Progress:    repos.NewProgressRepo(db, log),
		Certificate: repos.NewCertificateRepo(db, log),
		QuizAttempt: repos.NewQuizAttemptRepo(db, log),
	}
}
