package services

import (
	"context"
	"math"
	"testing"

	"taksa/internal/core"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func garageHome() core.Apartment {
	return core.Apartment{
		ID: "AP501", Type: core.Home, AreaM2: 88, IdealPartsPct: 1.28,
		HasGarage: true, PIN: "2501",
		BaseCommon: 18, Elevator: 7, Cleaning: 6, Security: 8,
		FundRepair: 12, GarageClean: 3, GarageLight: 2, Misc: 2,
	}
}

func officeUnit() core.Apartment {
	return core.Apartment{
		ID: "B203", Type: core.Office, AreaM2: 60, IdealPartsPct: 0.91,
		PIN:        "2203",
		BaseCommon: 18, Elevator: 7, Cleaning: 6, Security: 8,
		FundRepair: 12, Misc: 2,
	}
}

func TestBreakdownSumsToMonthlyFee(t *testing.T) {
	tariff := core.DefaultTariff()
	cases := []struct {
		name string
		apt  core.Apartment
		mode core.FeeMode
	}{
		{"home classic", garageHome(), core.ModeClassic},
		{"home intrinsic", garageHome(), core.ModeIntrinsic},
		{"office classic", officeUnit(), core.ModeClassic},
		{"office intrinsic", officeUnit(), core.ModeIntrinsic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sum := SumLines(Breakdown(tc.apt, tariff, tc.mode))
			fee := core.MonthlyFee(tc.apt, tariff, tc.mode)
			if !almostEqual(sum, fee) {
				t.Fatalf("breakdown sums to %v, monthly fee is %v", sum, fee)
			}
		})
	}
}

func TestBreakdownOfficeIntrinsicDropsCleaning(t *testing.T) {
	lines := Breakdown(officeUnit(), core.DefaultTariff(), core.ModeIntrinsic)
	for _, l := range lines {
		if l.Label == "Почистване" {
			t.Fatal("intrinsic office breakdown must not list cleaning")
		}
	}
}

func TestBreakdownGarageLinesOnlyWhenPresent(t *testing.T) {
	withGarage := Breakdown(garageHome(), core.DefaultTariff(), core.ModeClassic)
	without := Breakdown(officeUnit(), core.DefaultTariff(), core.ModeClassic)
	if len(withGarage) != len(without)+2 {
		t.Fatalf("garage unit should carry two extra lines: %d vs %d", len(withGarage), len(without))
	}
}

func TestOverviewMatchesLedgerPeriod(t *testing.T) {
	s := newTestStore(t)
	svc := NewDuesService(s, core.DefaultTariff())
	ctx := context.Background()

	apt, ok, err := s.FindByID(ctx, "A601")
	if err != nil || !ok {
		t.Fatalf("seed apartment missing: %v", err)
	}

	// Seed ledger has one A601 payment of 159 lev in 2025-Q4.
	o, err := svc.Overview(ctx, apt, core.ModeClassic, 4, 2025)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(o.Payments) != 1 || !almostEqual(o.PaidTotal, 159) {
		t.Fatalf("period payments = %+v, paid %v", o.Payments, o.PaidTotal)
	}
	if !almostEqual(o.Quarterly, o.Monthly*3) {
		t.Fatalf("quarterly %v != 3 * monthly %v", o.Quarterly, o.Monthly)
	}

	// A different quarter matches nothing.
	o2, err := svc.Overview(ctx, apt, core.ModeClassic, 1, 2026)
	if err != nil {
		t.Fatal(err)
	}
	if len(o2.Payments) != 0 || o2.PaidTotal != 0 {
		t.Fatalf("2026-Q1 should be empty, got %+v", o2.Payments)
	}
	if !almostEqual(o2.Outstanding(), o2.Quarterly) {
		t.Fatalf("outstanding %v, want full quarterly %v", o2.Outstanding(), o2.Quarterly)
	}
}

func TestOutstandingFloorsAtZero(t *testing.T) {
	o := DuesOverview{Quarterly: 100, PaidTotal: 150}
	if o.Outstanding() != 0 {
		t.Fatalf("overpaid quarter should owe 0, got %v", o.Outstanding())
	}
}
