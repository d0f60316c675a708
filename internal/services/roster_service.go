package services

import (
	"context"
	"fmt"

	"taksa/internal/core"
	"taksa/internal/roster"
	"taksa/internal/store"
)

// RosterService handles the CSV roster exchange. Export is a plain encode,
// import replaces the whole roster in one shot.
type RosterService struct {
	registry store.Registry
	opts     roster.Options
}

func NewRosterService(registry store.Registry, opts roster.Options) *RosterService {
	return &RosterService{registry: registry, opts: opts}
}

func (s *RosterService) List(ctx context.Context) ([]core.Apartment, error) {
	return s.registry.List(ctx)
}

// ExportCSV renders the current roster, PINs included, in import order.
func (s *RosterService) ExportCSV(ctx context.Context) ([]byte, error) {
	apts, err := s.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return roster.Encode(apts), nil
}

// ImportResult reports what a roster import did.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportCSV decodes the upload and replaces the roster. A schema error
// leaves the existing roster untouched.
func (s *RosterService) ImportCSV(ctx context.Context, data []byte) (ImportResult, error) {
	res, err := roster.Decode(data, s.opts)
	if err != nil {
		return ImportResult{}, err
	}
	if err := s.registry.ReplaceAll(ctx, res.Apartments); err != nil {
		return ImportResult{}, fmt.Errorf("replace roster: %w", err)
	}
	return ImportResult{Imported: len(res.Apartments), Skipped: res.SkippedRows}, nil
}
