package services_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"ecofinds/internal/repos"
	"ecofinds/internal/services"
)

func newAuthService(t *testing.T) (*services.AuthService, *repos.UserRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	return &services.AuthService{Users: userRepo}, userRepo
}

func TestRegisterThenLogin(t *testing.T) {
	auth, _ := newAuthService(t)

	u, err := auth.Register("sid-1", "newuser@example.com", "New User", "Secret123!")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == "" || u.Email != "newuser@example.com" {
		t.Fatalf("bad user: %+v", u)
	}

	got, err := auth.Login("sid-2", "newuser@example.com", "Secret123!")
	if err != nil {
		t.Fatalf("login after register: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("login returned wrong user: %s vs %s", got.ID, u.ID)
	}

	// Wrong password and unknown email fail with the same error
	if _, err := auth.Login("sid-3", "newuser@example.com", "wrong-pass"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds for wrong password, got %v", err)
	}
	if _, err := auth.Login("sid-3", "nobody@example.com", "Secret123!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds for unknown email, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, users := newAuthService(t)

	// demo@ecofinds.local is seeded
	if _, err := auth.Register("sid-1", "demo@ecofinds.local", "Imposter", "Secret123!"); !errors.Is(err, services.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
	// Case differences do not bypass uniqueness
	if _, err := auth.Register("sid-1", "Demo@Ecofinds.Local", "Imposter", "Secret123!"); !errors.Is(err, services.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail for mixed case, got %v", err)
	}

	// Existing account untouched
	u, err := users.ByEmail("demo@ecofinds.local")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if u.Name != "Demo User" {
		t.Fatalf("existing account altered: %+v", u)
	}
}

func TestLoginBindsSession(t *testing.T) {
	auth, _ := newAuthService(t)

	if _, err := auth.Login("sid-bind", "demo@ecofinds.local", "demo1234"); err != nil {
		t.Fatalf("login: %v", err)
	}
	u, err := auth.CurrentUser("sid-bind")
	if err != nil || u == nil {
		t.Fatalf("session not bound: %v", err)
	}
	if u.Email != "demo@ecofinds.local" {
		t.Fatalf("wrong session user: %+v", u)
	}

	if err := auth.Logout("sid-bind"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.CurrentUser("sid-bind"); err == nil {
		t.Fatal("session still bound after logout")
	}
}

func TestUpdateName(t *testing.T) {
	auth, users := newAuthService(t)

	u, err := users.ByEmail("demo@ecofinds.local")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}

	if err := auth.UpdateName(u.ID, "   "); !errors.Is(err, services.ErrEmptyName) {
		t.Fatalf("want ErrEmptyName, got %v", err)
	}
	if err := auth.UpdateName(u.ID, "Greener Demo"); err != nil {
		t.Fatalf("update name: %v", err)
	}
	got, err := users.ByID(u.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got.Name != "Greener Demo" {
		t.Fatalf("name not updated: %+v", got)
	}
}
