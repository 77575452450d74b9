package app

import (
	apphttp "github.com/yungbote/stepwise-backend/internal/http"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

func routerConfig(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) apphttp.RouterConfig {
	return apphttp.RouterConfig{
		Log:                log,
		ServiceName:        cfg.Otel.ServiceName,
		CORSOrigins:        cfg.CORSAllowedOrigins,
		ExposeInternal:     cfg.ExposeInternalErrors,
		AuthRateLimit:      middleware.AuthRateLimit,
		AuthMiddleware:     middleware.Auth,
		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		CourseHandler:      handlers.Course,
		EnrollmentHandler:  handlers.Enrollment,
		LessonHandler:      handlers.Lesson,
		QuizHandler:        handlers.Quiz,
		ProgressHandler:    handlers.Progress,
		CertificateHandler: handlers.Certificate,
		RealtimeHandler:    handlers.Realtime,
	}
}
