package learning

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/stepwise-backend/internal/data/repos"
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/modules/learning/certificate"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
	"github.com/yungbote/stepwise-backend/internal/platform/gcp"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

const DefaultEnrollmentTTL = 365 * 24 * time.Hour

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Users        repos.UserRepo
	Courses      repos.CourseRepo
	Lessons      repos.LessonRepo
	Enrollments  repos.EnrollmentRepo
	Progress     repos.ProgressRepo
	Certificates repos.CertificateRepo
	QuizAttempts repos.QuizAttemptRepo

	Renderer certificate.Renderer
	Archive  gcp.BucketService
	Notify   Notifier

	EnrollmentTTL time.Duration
	// DefaultPassingScore applies to lessons created without one.
	DefaultPassingScore int
	Now                 func() time.Time
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	deps.Log = deps.Log.With("module", "learning")
	if deps.Notify == nil {
		deps.Notify = NopNotifier{}
	}
	if deps.EnrollmentTTL <= 0 {
		deps.EnrollmentTTL = DefaultEnrollmentTTL
	}
	if deps.DefaultPassingScore <= 0 || deps.DefaultPassingScore > 100 {
		deps.DefaultPassingScore = types.DefaultPassingScore
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return Usecases{deps: deps}
}

func (u Usecases) now() time.Time { return u.deps.Now().UTC() }

// inTx runs fn in one database transaction. Every repo call inside fn must use
// the dbctx it receives.
func (u Usecases) inTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
