package app

import (
	httpH "github.com/yungbote/stepwise-backend/internal/http/handlers"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
	"github.com/yungbote/stepwise-backend/internal/realtime"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	Course      *httpH.CourseHandler
	Enrollment  *httpH.EnrollmentHandler
	Lesson      *httpH.LessonHandler
	Quiz        *httpH.QuizHandler
	Progress    *httpH.ProgressHandler
	Certificate *httpH.CertificateHandler
	Realtime    *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, services Services, hub *realtime.SSEHub, dbPing httpH.Check) Handlers {
	log.Info("Wiring handlers...")
	checks := map[string]httpH.Check{"database": dbPing}
	if services.Bus != nil {
		checks["redis"] = services.Bus.Ping
	}
	return Handlers{
		Health:      httpH.NewHealthHandler(checks),
		Auth:        httpH.NewAuthHandler(services.Auth),
		Course:      httpH.NewCourseHandler(services.Learning),
		Enrollment:  httpH.NewEnrollmentHandler(services.Learning),
		Lesson:      httpH.NewLessonHandler(services.Learning),
		Quiz:        httpH.NewQuizHandler(services.Learning),
		Progress:    httpH.NewProgressHandler(services.Learning),
		Certificate: httpH.NewCertificateHandler(services.Learning),
		Realtime:    httpH.NewRealtimeHandler(log, hub),
	}
}
