// Package auth implements the PIN login gate in front of the dashboard.
package auth

import (
	"context"
	"log/slog"
	"strings"

	"taksa/internal/core"
	"taksa/internal/store"
)

// Gate checks an apartment id and PIN against the roster and keeps the
// resulting session. Apartment ids match case-insensitively, PINs exactly.
type Gate struct {
	registry store.Registry
	sessions store.SessionStore
}

func NewGate(registry store.Registry, sessions store.SessionStore) *Gate {
	return &Gate{registry: registry, sessions: sessions}
}

// Login authenticates the apartment and persists the session. The returned
// apartment carries the canonical id from the roster, not the typed one.
func (g *Gate) Login(ctx context.Context, aptID, pin string) (core.Apartment, error) {
	aptID = strings.TrimSpace(aptID)
	if aptID == "" {
		return core.Apartment{}, core.ErrUnknownApartment
	}

	apt, ok, err := g.registry.FindByID(ctx, aptID)
	if err != nil {
		return core.Apartment{}, err
	}
	if !ok {
		slog.InfoContext(ctx, "Login rejected, unknown apartment", "apt_id", aptID)
		return core.Apartment{}, core.ErrUnknownApartment
	}
	if apt.PIN != pin {
		slog.InfoContext(ctx, "Login rejected, wrong PIN", "apt_id", apt.ID)
		return core.Apartment{}, core.ErrWrongPIN
	}

	if err := g.sessions.Set(ctx, apt.ID); err != nil {
		return core.Apartment{}, err
	}
	slog.InfoContext(ctx, "Login accepted", "apt_id", apt.ID)
	return apt, nil
}

func (g *Gate) Logout(ctx context.Context) error {
	return g.sessions.Clear(ctx)
}

// Current resolves the persisted session back to a roster record. A session
// pointing at an apartment that was removed by an import counts as absent.
func (g *Gate) Current(ctx context.Context) (core.Apartment, bool, error) {
	id, ok, err := g.sessions.Current(ctx)
	if err != nil || !ok {
		return core.Apartment{}, false, err
	}
	apt, ok, err := g.registry.FindByID(ctx, id)
	if err != nil || !ok {
		return core.Apartment{}, false, err
	}
	return apt, true, nil
}
