package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/stepwise-backend/internal/modules/learning"
	"github.com/yungbote/stepwise-backend/internal/modules/learning/certificate"
	"github.com/yungbote/stepwise-backend/internal/platform/gcp"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
	"github.com/yungbote/stepwise-backend/internal/realtime"
	"github.com/yungbote/stepwise-backend/internal/realtime/bus"
	"github.com/yungbote/stepwise-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Learning learning.Usecases

	Renderer certificate.Renderer
	Archive  gcp.BucketService
	// Bus is nil when REDIS_ADDR is unset; events then stay on this instance.
	Bus bus.Bus
}

func wireServices(ctx context.Context, db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, hub *realtime.SSEHub) (Services, error) {
	log.Info("Wiring services...")

	authService := services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL)

	renderer, err := certificate.NewRenderer(certificate.RendererConfig{
		IssuerName:   cfg.CertificateIssuerName,
		SealFontPath: cfg.CertificateSealFont,
	}, log)
	if err != nil {
		return Services{}, fmt.Errorf("init certificate renderer: %w", err)
	}

	archive, err := gcp.NewBucketService(ctx, cfg.ObjectStorage, log)
	if err != nil {
		return Services{}, fmt.Errorf("init certificate storage: %w", err)
	}

	var (
		sseBus bus.Bus
		pub    realtime.Publisher
	)
	if cfg.RedisAddr != "" {
		sseBus, err = bus.NewRedisBus(bus.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Channel:  cfg.RedisChannel,
		}, log)
		if err != nil {
			_ = archive.Close()
			return Services{}, fmt.Errorf("init redis bus: %w", err)
		}
		pub = sseBus
	} else {
		log.Info("REDIS_ADDR not set, realtime events are local to this instance")
	}

	uc := learning.New(learning.UsecasesDeps{
		DB:                  db,
		Log:                 log,
		Users:               reposet.User,
		Courses:             reposet.Course,
		Lessons:             reposet.Lesson,
		Enrollments:         reposet.Enrollment,
		Progress:            reposet.Progress,
		Certificates:        reposet.Certificate,
		QuizAttempts:        reposet.QuizAttempt,
		Renderer:            renderer,
		Archive:             archive,
		Notify:              realtime.NewNotifier(hub, pub),
		EnrollmentTTL:       cfg.EnrollmentTTL,
		DefaultPassingScore: cfg.DefaultPassingScore,
	})

	return Services{
		Auth:     authService,
		Learning: uc,
		Renderer: renderer,
		Archive:  archive,
		Bus:      sseBus,
	}, nil
}
