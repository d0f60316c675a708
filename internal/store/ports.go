// Package store defines the persistence ports for the roster, the payment
// ledger and the login session, plus the default file-backed implementation.
package store

import (
	"context"

	"taksa/internal/core"
)

type (
	// Registry holds the ordered apartment roster. ReplaceAll is a full
	// replacement, never a merge; every mutation is persisted before it
	// returns.
	Registry interface {
		List(ctx context.Context) ([]core.Apartment, error)
		ReplaceAll(ctx context.Context, apts []core.Apartment) error
		// FindByID matches the id case-insensitively. A miss is reported
		// through the bool, not an error.
		FindByID(ctx context.Context, id string) (core.Apartment, bool, error)
	}

	// Ledger is the append-only payment trail. Entries are never edited or
	// deleted.
	Ledger interface {
		ListPayments(ctx context.Context) ([]core.Payment, error)
		ListByApartment(ctx context.Context, aptID string) ([]core.Payment, error)
		// Append validates the entry and returns its generated id.
		Append(ctx context.Context, p core.Payment) (string, error)
	}

	// SessionStore keeps the currently authenticated apartment id across
	// restarts.
	SessionStore interface {
		Current(ctx context.Context) (string, bool, error)
		Set(ctx context.Context, aptID string) error
		Clear(ctx context.Context) error
	}
)
