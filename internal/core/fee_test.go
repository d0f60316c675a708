package core

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testHome() Apartment {
	return Apartment{
		ID: "A601", Type: Home, AreaM2: 92, IdealPartsPct: 1.32,
		PIN:        "1601",
		BaseCommon: 18, Elevator: 7, Cleaning: 6, Security: 8,
		FundRepair: 12, Misc: 2,
	}
}

func testOffice() Apartment {
	a := testHome()
	a.ID = "B203"
	a.Type = Office
	return a
}

func TestClassicSumsEveryComponent(t *testing.T) {
	tariff := DefaultTariff()
	cases := []struct {
		name string
		apt  Apartment
	}{
		{"home no garage", testHome()},
		{"office no garage", testOffice()},
		{"home with garage", func() Apartment {
			a := testHome()
			a.HasGarage = true
			a.GarageClean = 3
			a.GarageLight = 2
			return a
		}()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.apt
			want := a.BaseCommon + a.Elevator + a.Cleaning + a.Security + a.Misc + tariff.FundMonthly
			if a.HasGarage {
				want += a.GarageClean + a.GarageLight
			}
			got := MonthlyFee(a, tariff, ModeClassic)
			if !almostEqual(got, want) {
				t.Fatalf("classic fee = %v, want %v", got, want)
			}
		})
	}
}

func TestIntrinsicCostOfficeDiscount(t *testing.T) {
	// (18+8+2)*0.85 + 7 + 12 = 42.8: cleaning excluded, elevator full rate.
	got := MonthlyFee(testOffice(), DefaultTariff(), ModeIntrinsic)
	if math.Abs(got-42.8) >= 0.05 {
		t.Fatalf("intrinsic-cost office fee = %v, want 42.8", got)
	}
}

func TestIntrinsicCostHomeUnchanged(t *testing.T) {
	tariff := DefaultTariff()
	a := testHome()
	classic := MonthlyFee(a, tariff, ModeClassic)
	intrinsic := MonthlyFee(a, tariff, ModeIntrinsic)
	if !almostEqual(classic, intrinsic) {
		t.Fatalf("home fee differs between modes: classic=%v intrinsic=%v", classic, intrinsic)
	}
}

func TestGarageChargedFullRateInBothModes(t *testing.T) {
	tariff := DefaultTariff()
	a := testOffice()
	a.HasGarage = true
	a.GarageClean = 3
	a.GarageLight = 2
	for _, mode := range []FeeMode{ModeClassic, ModeIntrinsic} {
		without := a
		without.HasGarage = false
		diff := MonthlyFee(a, tariff, mode) - MonthlyFee(without, tariff, mode)
		if !almostEqual(diff, 5) {
			t.Fatalf("mode %s: garage charge = %v, want 5", mode, diff)
		}
	}
}

func TestQuarterlyDueIsThreeMonths(t *testing.T) {
	tariff := DefaultTariff()
	apts := []Apartment{testHome(), testOffice()}
	for _, a := range apts {
		for _, mode := range []FeeMode{ModeClassic, ModeIntrinsic} {
			monthly := MonthlyFee(a, tariff, mode)
			if got := QuarterlyDue(a, tariff, mode); !almostEqual(got, monthly*3) {
				t.Fatalf("%s/%s: quarterly = %v, want %v", a.ID, mode, got, monthly*3)
			}
		}
	}
}

func TestGetFeeStrategyUnknownMode(t *testing.T) {
	if _, err := GetFeeStrategy("flat-rate"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	// Display paths fall back to classic instead of failing.
	a := testHome()
	if got := MonthlyFee(a, DefaultTariff(), "flat-rate"); !almostEqual(got, MonthlyFee(a, DefaultTariff(), ModeClassic)) {
		t.Fatalf("unknown mode should fall back to classic, got %v", got)
	}
}
