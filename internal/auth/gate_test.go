package auth

import (
	"context"
	"errors"
	"testing"

	"taksa/internal/core"
	"taksa/internal/store"
)

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewGate(s, s)
}

func TestLoginHappyPath(t *testing.T) {
	g := newTestGate(t)
	ctx := context.Background()

	apt, err := g.Login(ctx, "A601", "1601")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if apt.ID != "A601" {
		t.Fatalf("apt = %+v", apt)
	}

	cur, ok, err := g.Current(ctx)
	if err != nil || !ok || cur.ID != "A601" {
		t.Fatalf("current = %+v, %v, %v", cur, ok, err)
	}
}

func TestLoginCaseInsensitiveIDCanonicalized(t *testing.T) {
	g := newTestGate(t)
	apt, err := g.Login(context.Background(), "  a601 ", "1601")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if apt.ID != "A601" {
		t.Fatalf("id should come back canonical, got %q", apt.ID)
	}
}

func TestLoginUnknownApartment(t *testing.T) {
	g := newTestGate(t)
	if _, err := g.Login(context.Background(), "Z999", "1601"); !errors.Is(err, core.ErrUnknownApartment) {
		t.Fatalf("got %v, want ErrUnknownApartment", err)
	}
	if _, err := g.Login(context.Background(), "", "1601"); !errors.Is(err, core.ErrUnknownApartment) {
		t.Fatalf("empty id: got %v, want ErrUnknownApartment", err)
	}
}

func TestLoginWrongPIN(t *testing.T) {
	g := newTestGate(t)
	// PIN comparison is exact, unlike the id.
	if _, err := g.Login(context.Background(), "A601", "0000"); !errors.Is(err, core.ErrWrongPIN) {
		t.Fatalf("got %v, want ErrWrongPIN", err)
	}
	if _, ok, _ := g.Current(context.Background()); ok {
		t.Fatal("failed login must not create a session")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	g := newTestGate(t)
	ctx := context.Background()
	if _, err := g.Login(ctx, "A601", "1601"); err != nil {
		t.Fatal(err)
	}
	if err := g.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := g.Current(ctx); ok {
		t.Fatal("session should be gone after logout")
	}
}

func TestCurrentStaleSessionAfterRosterReplace(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	g := NewGate(s, s)
	ctx := context.Background()

	if _, err := g.Login(ctx, "A601", "1601"); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceAll(ctx, []core.Apartment{{ID: "C100", Type: core.Home, AreaM2: 1, IdealPartsPct: 1, PIN: "1"}}); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := g.Current(ctx); ok {
		t.Fatal("session for a removed apartment should count as absent")
	}
}
