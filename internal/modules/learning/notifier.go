package learning

import (
	"context"

	"github.com/google/uuid"
)

const (
	EventProgressUpdated   = "progress.updated"
	EventCertificateIssued = "certificate.issued"
	EventEnrollmentCreated = "enrollment.created"
)

// Notifier receives learning events after their transaction commits.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event string, data any) error
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, uuid.UUID, string, any) error { return nil }

func (u Usecases) emit(ctx context.Context, userID uuid.UUID, event string, data any) {
	if err := u.deps.Notify.Notify(ctx, userID, event, data); err != nil {
		u.deps.Log.Warn("notify failed", "event", event, "user_id", userID, "error", err)
	}
}
