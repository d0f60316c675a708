package core

import (
	"errors"
	"testing"
	"time"
)

func TestApartmentValidate(t *testing.T) {
	good := testHome()
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Apartment)
		wantErr error
	}{
		{"empty id", func(a *Apartment) { a.ID = "  " }, ErrEmptyAptID},
		{"bad type", func(a *Apartment) { a.Type = "garage" }, ErrInvalidType},
		{"zero area", func(a *Apartment) { a.AreaM2 = 0 }, ErrInvalidArea},
		{"zero share", func(a *Apartment) { a.IdealPartsPct = 0 }, ErrInvalidShare},
		{"negative cost", func(a *Apartment) { a.Cleaning = -1 }, ErrNegativeCost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := testHome()
			tc.mutate(&a)
			if err := a.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestPaymentValidate(t *testing.T) {
	good := Payment{
		AptID: "A601", Quarter: 4, Year: 2025, Amount: 159,
		Date: time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Payment)
		wantErr error
	}{
		{"missing apt", func(p *Payment) { p.AptID = "" }, ErrMissingAptID},
		{"zero amount", func(p *Payment) { p.Amount = 0 }, ErrMissingAmount},
		{"bad quarter", func(p *Payment) { p.Quarter = 5 }, ErrMissingPeriod},
		{"zero year", func(p *Payment) { p.Year = 0 }, ErrMissingPeriod},
		{"zero date", func(p *Payment) { p.Date = time.Time{} }, ErrMissingDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := good
			tc.mutate(&p)
			if err := p.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestPaymentPeriod(t *testing.T) {
	p := Payment{Quarter: 4, Year: 2025}
	if got := p.Period(); got != "2025-Q4" {
		t.Fatalf("period = %q", got)
	}
	if got := (Payment{Quarter: 0, Year: 2025}).Period(); got != "" {
		t.Fatalf("invalid quarter period = %q, want empty", got)
	}
}
