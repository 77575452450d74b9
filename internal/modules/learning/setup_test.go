package learning

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/stepwise-backend/internal/data/repos"
	"github.com/yungbote/stepwise-backend/internal/data/repos/testutil"
	"github.com/yungbote/stepwise-backend/internal/modules/learning/certificate"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
)

type recordedEvent struct {
	UserID uuid.UUID
	Event  string
	Data   any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, userID uuid.UUID, event string, data any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{UserID: userID, Event: event, Data: data})
	return n.err
}

func (n *recordingNotifier) count(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e.Event == event {
			c++
		}
	}
	return c
}

type failingRenderer struct{}

func (failingRenderer) Render(certificate.Data) ([]byte, error) {
	return nil, errors.New("renderer unavailable")
}

type fixture struct {
	db     *gorm.DB
	uc     Usecases
	notify *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithRenderer(t, nil)
}

func newFixtureWithRenderer(t *testing.T, r certificate.Renderer) *fixture {
	t.Helper()
	return newFixtureOnDB(t, testutil.DB(t), r)
}

func newFixtureOnDB(t *testing.T, gdb *gorm.DB, r certificate.Renderer) *fixture {
	t.Helper()
	log := testutil.Logger(t)
	if r == nil {
		var err error
		r, err = certificate.NewRenderer(certificate.RendererConfig{IssuerName: "Stepwise Test Studio"}, log)
		if err != nil {
			t.Fatalf("NewRenderer: %v", err)
		}
	}
	n := &recordingNotifier{}
	uc := New(UsecasesDeps{
		DB:           gdb,
		Log:          log,
		Users:        repos.NewUserRepo(gdb, log),
		Courses:      repos.NewCourseRepo(gdb, log),
		Lessons:      repos.NewLessonRepo(gdb, log),
		Enrollments:  repos.NewEnrollmentRepo(gdb, log),
		Progress:     repos.NewProgressRepo(gdb, log),
		Certificates: repos.NewCertificateRepo(gdb, log),
		QuizAttempts: repos.NewQuizAttemptRepo(gdb, log),
		Renderer:     r,
		Notify:       n,
	})
	return &fixture{db: gdb, uc: uc, notify: n}
}

func dbctxFor(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }
