package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"taksa/internal/core"
	"taksa/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository backs the roster, the ledger and the session with a
// single sqlite database.
type SQLiteRepository struct {
	db *sql.DB
}

var (
	_ store.Registry     = (*SQLiteRepository)(nil)
	_ store.Ledger       = (*SQLiteRepository)(nil)
	_ store.SessionStore = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{db: db}

	if err := repo.seedIfEmpty(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed database: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// seedIfEmpty loads the demo roster and ledger into a brand-new database so
// the application is usable before the first import.
func (r *SQLiteRepository) seedIfEmpty(ctx context.Context) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM apartments`).Scan(&n); err != nil {
		return fmt.Errorf("count apartments: %w", err)
	}
	if n > 0 {
		return nil
	}

	if err := r.ReplaceAll(ctx, store.SeedApartments()); err != nil {
		return err
	}
	for _, p := range store.SeedPayments() {
		if _, err := r.Append(ctx, p); err != nil {
			return err
		}
	}
	slog.InfoContext(ctx, "Seeded empty database with demo data")
	return nil
}

const apartmentColumns = `id, type, area_m2, ideal_parts_pct, has_garage, pin,
	base_common, elevator, cleaning, security, fund_repair, garage_clean, garage_light, misc`

func (r *SQLiteRepository) List(ctx context.Context) ([]core.Apartment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+apartmentColumns+` FROM apartments ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}
	defer rows.Close()

	var out []core.Apartment
	for rows.Next() {
		a, err := scanApartment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan apartment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, apts []core.Apartment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM apartments`); err != nil {
		return fmt.Errorf("clear apartments: %w", err)
	}
	for i, a := range apts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO apartments (
				id, position, type, area_m2, ideal_parts_pct, has_garage, pin,
				base_common, elevator, cleaning, security, fund_repair,
				garage_clean, garage_light, misc
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, i, string(a.Type), a.AreaM2, a.IdealPartsPct, boolToInt(a.HasGarage), a.PIN,
			a.BaseCommon, a.Elevator, a.Cleaning, a.Security, a.FundRepair,
			a.GarageClean, a.GarageLight, a.Misc)
		if err != nil {
			return fmt.Errorf("insert apartment %s: %w", a.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster replace: %w", err)
	}

	slog.InfoContext(ctx, "Roster replaced", "count", len(apts))
	return nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (core.Apartment, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+apartmentColumns+` FROM apartments WHERE id = ? COLLATE NOCASE`,
		strings.TrimSpace(id))
	a, err := scanApartment(row)
	if err == sql.ErrNoRows {
		return core.Apartment{}, false, nil
	}
	if err != nil {
		return core.Apartment{}, false, fmt.Errorf("find apartment: %w", err)
	}
	return a, true, nil
}

const paymentColumns = `id, apt_id, quarter, year, amount, paid_at, note`

func (r *SQLiteRepository) ListPayments(ctx context.Context) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *SQLiteRepository) ListByApartment(ctx context.Context, aptID string) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE apt_id = ? COLLATE NOCASE ORDER BY created_at, id`,
		strings.TrimSpace(aptID))
	if err != nil {
		return nil, fmt.Errorf("list payments for %s: %w", aptID, err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *SQLiteRepository) Append(ctx context.Context, p core.Payment) (string, error) {
	if p.ID == "" {
		p.ID = newPaymentID()
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (id, apt_id, quarter, year, amount, paid_at, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.AptID, p.Quarter, p.Year, p.Amount, p.Date, p.Note)
	if err != nil {
		return "", fmt.Errorf("insert payment: %w", err)
	}

	slog.InfoContext(ctx, "Payment saved to SQLite",
		"payment_id", p.ID,
		"apt_id", p.AptID,
		"period", p.Period(),
		"amount_lev", p.Amount)
	return p.ID, nil
}

func (r *SQLiteRepository) Current(ctx context.Context) (string, bool, error) {
	var aptID string
	err := r.db.QueryRowContext(ctx, `SELECT apt_id FROM session WHERE id = 1`).Scan(&aptID)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read session: %w", err)
	}
	return aptID, aptID != "", nil
}

func (r *SQLiteRepository) Set(ctx context.Context, aptID string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE session SET apt_id = ? WHERE id = 1`, aptID); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return r.Set(ctx, "")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApartment(row rowScanner) (core.Apartment, error) {
	var (
		a         core.Apartment
		typ       string
		hasGarage int
	)
	err := row.Scan(&a.ID, &typ, &a.AreaM2, &a.IdealPartsPct, &hasGarage, &a.PIN,
		&a.BaseCommon, &a.Elevator, &a.Cleaning, &a.Security, &a.FundRepair,
		&a.GarageClean, &a.GarageLight, &a.Misc)
	if err != nil {
		return core.Apartment{}, err
	}
	a.Type = core.ApartmentType(typ)
	a.HasGarage = hasGarage != 0
	return a, nil
}

func collectPayments(rows *sql.Rows) ([]core.Payment, error) {
	var out []core.Payment
	for rows.Next() {
		var p core.Payment
		if err := rows.Scan(&p.ID, &p.AptID, &p.Quarter, &p.Year, &p.Amount, &p.Date, &p.Note); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func newPaymentID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "p_unknown"
	}
	return "p_" + hex.EncodeToString(b)
}
