package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"taksa/internal/core"
)

const (
	rosterFile   = "roster.json"
	paymentsFile = "payments.json"
	sessionFile  = "session.json"
)

// FileStore persists each logical value as one JSON file under a data
// directory, read once at startup and rewritten in full on every mutation.
// It is single-writer by construction; there is no cross-process locking.
type FileStore struct {
	mu   sync.Mutex
	dir  string
	apts []core.Apartment
	pays []core.Payment
	sess string
}

var (
	_ Registry     = (*FileStore)(nil)
	_ Ledger       = (*FileStore)(nil)
	_ SessionStore = (*FileStore)(nil)
)

// NewFileStore loads persisted state from dir, falling back to the seed
// data for any value that is absent or unreadable.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s := &FileStore{dir: dir}

	if err := readJSON(filepath.Join(dir, rosterFile), &s.apts); err != nil {
		slog.Warn("Roster file unreadable, using seed data", "error", err)
		s.apts = SeedApartments()
	}
	if err := readJSON(filepath.Join(dir, paymentsFile), &s.pays); err != nil {
		slog.Warn("Payments file unreadable, using seed data", "error", err)
		s.pays = SeedPayments()
	}
	var sess struct {
		AptID string `json:"apt_id"`
	}
	if err := readJSON(filepath.Join(dir, sessionFile), &sess); err == nil {
		s.sess = sess.AptID
	}
	return s, nil
}

func (s *FileStore) List(_ context.Context) ([]core.Apartment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Apartment(nil), s.apts...), nil
}

func (s *FileStore) ReplaceAll(ctx context.Context, apts []core.Apartment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apts = append([]core.Apartment(nil), apts...)
	if err := writeJSON(filepath.Join(s.dir, rosterFile), s.apts); err != nil {
		return fmt.Errorf("persist roster: %w", err)
	}
	slog.InfoContext(ctx, "Roster replaced", "count", len(apts))
	return nil
}

func (s *FileStore) FindByID(_ context.Context, id string) (core.Apartment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apts {
		if strings.EqualFold(a.ID, strings.TrimSpace(id)) {
			return a, true, nil
		}
	}
	return core.Apartment{}, false, nil
}

func (s *FileStore) ListPayments(ctx context.Context) ([]core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Payment(nil), s.pays...), nil
}

func (s *FileStore) ListByApartment(_ context.Context, aptID string) ([]core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Payment
	for _, p := range s.pays {
		if strings.EqualFold(p.AptID, aptID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *FileStore) Append(ctx context.Context, p core.Payment) (string, error) {
	if p.ID == "" {
		p.ID = newPaymentID()
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pays = append(s.pays, p)
	if err := writeJSON(filepath.Join(s.dir, paymentsFile), s.pays); err != nil {
		// Roll back the in-memory append so memory and disk stay in step.
		s.pays = s.pays[:len(s.pays)-1]
		return "", fmt.Errorf("persist payments: %w", err)
	}
	slog.InfoContext(ctx, "Payment appended",
		"payment_id", p.ID,
		"apt_id", p.AptID,
		"period", p.Period(),
		"amount_lev", p.Amount)
	return p.ID, nil
}

func (s *FileStore) Current(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess, s.sess != "", nil
}

func (s *FileStore) Set(_ context.Context, aptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = aptID
	return writeJSON(filepath.Join(s.dir, sessionFile), struct {
		AptID string `json:"apt_id"`
	}{AptID: aptID})
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = ""
	return writeJSON(filepath.Join(s.dir, sessionFile), struct {
		AptID string `json:"apt_id"`
	}{})
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newPaymentID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "p_unknown"
	}
	return "p_" + hex.EncodeToString(b)
}
