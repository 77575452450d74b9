package learning

import (
	"context"
	"testing"

	"github.com/yungbote/stepwise-backend/internal/data/repos/testutil"
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
)

func TestEnrollmentRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewEnrollmentRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, tx, "enrollmentrepo@example.com", types.RoleStudent)
	course := testutil.SeedCourse(t, tx, "Bachata", 1)

	cancelled := testutil.SeedEnrollment(t, tx, u.ID, course.ID, types.EnrollmentCancelled)
	got, err := repo.FindHolding(dbc, u.ID, course.ID)
	if err != nil {
		t.Fatalf("FindHolding: %v", err)
	}
	if got != nil {
		t.Fatalf("FindHolding: cancelled enrollment should not hold, got %+v", got)
	}

	active := testutil.SeedEnrollment(t, tx, u.ID, course.ID, types.EnrollmentActive)
	got, err = repo.FindHolding(dbc, u.ID, course.ID)
	if err != nil || got == nil || got.ID != active.ID {
		t.Fatalf("FindHolding: got=%+v err=%v", got, err)
	}

	n, err := repo.CompleteActive(dbc, u.ID, course.ID)
	if err != nil || n != 1 {
		t.Fatalf("CompleteActive: n=%d err=%v", n, err)
	}
	got, err = repo.GetByID(dbc, active.ID)
	if err != nil || got.Status != types.EnrollmentCompleted {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}

	if err := repo.UpdateStatus(dbc, cancelled.ID, types.EnrollmentExpired); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	list, err := repo.ListByUser(dbc, u.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListByUser: len=%d err=%v", len(list), err)
	}
}
