package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	httpH "github.com/yungbote/stepwise-backend/internal/http/handlers"
	httpMW "github.com/yungbote/stepwise-backend/internal/http/middleware"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    []string
	ExposeInternal bool
	AuthRateLimit  *httpMW.IPRateLimiter

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler      *httpH.HealthHandler
	AuthHandler        *httpH.AuthHandler
	CourseHandler      *httpH.CourseHandler
	EnrollmentHandler  *httpH.EnrollmentHandler
	LessonHandler      *httpH.LessonHandler
	QuizHandler        *httpH.QuizHandler
	ProgressHandler    *httpH.ProgressHandler
	CertificateHandler *httpH.CertificateHandler
	RealtimeHandler    *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "stepwise"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.ExposeInternalErrors(cfg.ExposeInternal))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")

	// Public
	if cfg.AuthHandler != nil {
		auth := api.Group("")
		if cfg.AuthRateLimit != nil {
			auth.Use(cfg.AuthRateLimit.Middleware())
		}
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
	}
	if cfg.CourseHandler != nil {
		api.GET("/courses", cfg.CourseHandler.ListCourses)
		api.GET("/courses/:courseId", cfg.CourseHandler.GetCourse)
	}
	if cfg.CertificateHandler != nil {
		api.GET("/certificates/:certificateId/verify", cfg.CertificateHandler.Verify)
	}

	if cfg.AuthMiddleware == nil {
		return r
	}

	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	if cfg.AuthHandler != nil {
		protected.GET("/me", cfg.AuthHandler.Me)
	}
	if cfg.RealtimeHandler != nil {
		protected.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
	}
	if cfg.EnrollmentHandler != nil {
		protected.POST("/enrollments/courses/:courseId", cfg.EnrollmentHandler.Enroll)
		protected.GET("/enrollments", cfg.EnrollmentHandler.List)
		protected.POST("/enrollments/:enrollmentId/cancel", cfg.EnrollmentHandler.Cancel)
	}
	if cfg.LessonHandler != nil {
		protected.GET("/lessons/:lessonId", cfg.LessonHandler.GetLesson)
	}
	if cfg.QuizHandler != nil {
		protected.POST("/lessons/:lessonId/quiz", cfg.QuizHandler.Submit)
		protected.POST("/quiz/:lessonId/submit", cfg.QuizHandler.Submit)
		protected.GET("/lessons/:lessonId/quiz/attempts", cfg.QuizHandler.ListAttempts)
	}
	if cfg.ProgressHandler != nil {
		progress := protected.Group("/progress/:userId/courses/:courseId")
		progress.GET("", cfg.ProgressHandler.Get)
		progress.GET("/certificate", cfg.ProgressHandler.DownloadCertificate)
		progress.POST("/lessons/:lessonId", cfg.ProgressHandler.MarkComplete)
		progress.DELETE("/lessons/:lessonId", cfg.ProgressHandler.Unmark)
		progress.PUT("/lessons/:lessonId/note", cfg.ProgressHandler.SetNote)
	}

	// Admin
	admin := protected.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireRole(types.RoleAdmin))
	if cfg.CourseHandler != nil {
		admin.POST("/courses", cfg.CourseHandler.CreateCourse)
		admin.DELETE("/courses/:courseId", cfg.CourseHandler.DeleteCourse)
	}
	if cfg.EnrollmentHandler != nil {
		admin.PATCH("/enrollments/:enrollmentId/status", cfg.EnrollmentHandler.SetStatus)
	}
	if cfg.CertificateHandler != nil {
		admin.POST("/certificates/:certificateId/revoke", cfg.CertificateHandler.Revoke)
	}

	return r
}
