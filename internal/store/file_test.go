package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taksa/internal/core"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestSeedFallback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	apts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apts) != 4 || apts[0].ID != "A601" {
		t.Fatalf("expected seed roster, got %+v", apts)
	}
	pays, err := s.ListPayments(ctx)
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(pays) != 2 {
		t.Fatalf("expected seed payments, got %d", len(pays))
	}
}

func TestCorruptFileFallsBackToSeed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "roster.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	apts, _ := s.List(context.Background())
	if len(apts) != 4 {
		t.Fatalf("corrupt roster should fall back to seed, got %d records", len(apts))
	}
}

func TestReplaceAllPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	next := []core.Apartment{{
		ID: "C100", Type: core.Office, AreaM2: 40, IdealPartsPct: 0.5,
		PIN: "9999", BaseCommon: 10,
	}}
	if err := s.ReplaceAll(ctx, next); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// A fresh store over the same directory must see the replacement, not
	// the seed.
	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	apts, _ := s2.List(ctx)
	if len(apts) != 1 || apts[0].ID != "C100" {
		t.Fatalf("reloaded roster = %+v", apts)
	}
}

func TestFindByIDCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, ok, err := s.FindByID(ctx, "a601")
	if err != nil || !ok || a.ID != "A601" {
		t.Fatalf("FindByID(a601) = %v, %v, %v", a, ok, err)
	}
	if _, ok, _ := s.FindByID(ctx, " A601 "); !ok {
		t.Fatal("whitespace around the id should not break the lookup")
	}
	if _, ok, _ := s.FindByID(ctx, "Z999"); ok {
		t.Fatal("unknown id should miss")
	}
}

func TestAppendValidatesAndPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	before, _ := s.ListPayments(ctx)

	_, err = s.Append(ctx, core.Payment{AptID: "A601", Quarter: 1, Year: 2026, Date: time.Now()})
	if !errors.Is(err, core.ErrMissingAmount) {
		t.Fatalf("empty amount: got %v, want ErrMissingAmount", err)
	}
	after, _ := s.ListPayments(ctx)
	if len(after) != len(before) {
		t.Fatalf("rejected append changed ledger length: %d -> %d", len(before), len(after))
	}

	id, err := s.Append(ctx, core.Payment{
		AptID: "A601", Quarter: 1, Year: 2026, Amount: 159.3, Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id == "" {
		t.Fatal("append must return a generated id")
	}

	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	reloaded, _ := s2.ListPayments(ctx)
	if len(reloaded) != len(before)+1 {
		t.Fatalf("appended payment not persisted: %d entries", len(reloaded))
	}
	last := reloaded[len(reloaded)-1]
	if last.ID != id || last.Amount != 159.3 {
		t.Fatalf("persisted entry = %+v", last)
	}
}

func TestListByApartment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	got, err := s.ListByApartment(ctx, "a601")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].AptID != "A601" {
		t.Fatalf("payments for a601 = %+v", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, ok, _ := s.Current(ctx); ok {
		t.Fatal("fresh store should have no session")
	}
	if err := s.Set(ctx, "A601"); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Session survives a restart.
	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	id, ok, _ := s2.Current(ctx)
	if !ok || id != "A601" {
		t.Fatalf("reloaded session = %q, %v", id, ok)
	}

	if err := s2.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s2.Current(ctx); ok {
		t.Fatal("cleared session should be absent")
	}
}
