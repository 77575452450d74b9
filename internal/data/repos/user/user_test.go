package user

import (
	"context"
	"testing"

	"github.com/yungbote/stepwise-backend/internal/data/repos/testutil"
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewUserRepo(db, testutil.Logger(t))

	created, err := repo.Create(dbc, []*types.User{
		{Name: "A B", Email: "  UserRepo@Example.com ", Password: "pw"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].Email != "userrepo@example.com" {
		t.Fatalf("Create: unexpected result: %+v", created)
	}
	if created[0].Role != types.RoleStudent {
		t.Fatalf("Create: expected default role student, got %q", created[0].Role)
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil || got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}

	got, err = repo.GetByEmail(dbc, "USERREPO@example.com")
	if err != nil || got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByEmail: got=%+v err=%v", got, err)
	}

	exists, err := repo.EmailExists(dbc, "userrepo@EXAMPLE.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists: exists=%v err=%v", exists, err)
	}
	exists, err = repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil || exists {
		t.Fatalf("EmailExists (missing): exists=%v err=%v", exists, err)
	}

	locked, err := repo.LockByID(dbc, created[0].ID)
	if err != nil || locked == nil {
		t.Fatalf("LockByID: got=%+v err=%v", locked, err)
	}

	if err := repo.UpdateRole(dbc, created[0].ID, types.RoleAdmin); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	got, _ = repo.GetByID(dbc, created[0].ID)
	if !got.IsAdmin() {
		t.Fatalf("UpdateRole: expected admin, got %q", got.Role)
	}
}
