package domain

import (
	"github.com/yungbote/stepwise-backend/internal/domain/learning"
	"github.com/yungbote/stepwise-backend/internal/domain/user"
)

const (
	RoleStudent = user.RoleStudent
	RoleAdmin   = user.RoleAdmin

	LevelBeginner     = learning.LevelBeginner
	LevelIntermediate = learning.LevelIntermediate
	LevelAdvanced     = learning.LevelAdvanced

	DefaultPassingScore = learning.DefaultPassingScore

	EnrollmentActive    = learning.EnrollmentActive
	EnrollmentCompleted = learning.EnrollmentCompleted
	EnrollmentExpired   = learning.EnrollmentExpired
	EnrollmentCancelled = learning.EnrollmentCancelled

	CertificateIssued  = learning.CertificateIssued
	CertificateRevoked = learning.CertificateRevoked
)

type (
	User = user.User

	Course         = learning.Course
	Lesson         = learning.Lesson
	QuizQuestion   = learning.QuizQuestion
	Enrollment     = learning.Enrollment
	ProgressRecord = learning.ProgressRecord
	ProgressLesson = learning.ProgressLesson
	Certificate    = learning.Certificate
	QuizAttempt    = learning.QuizAttempt
)

var ValidEnrollmentStatus = learning.ValidEnrollmentStatus

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&User{},
		&Course{},
		&Lesson{},
		&QuizQuestion{},
		&Enrollment{},
		&ProgressRecord{},
		&ProgressLesson{},
		&Certificate{},
		&QuizAttempt{},
	}
}
