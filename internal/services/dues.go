package services

import (
	"context"

	"taksa/internal/core"
	"taksa/internal/store"
)

// BreakdownLine is one cost component of the monthly fee, already filtered
// down to the components that apply to the apartment.
type BreakdownLine struct {
	Label  string
	Amount float64
}

// DuesOverview is the dashboard view of one apartment for one quarter.
type DuesOverview struct {
	Apartment core.Apartment
	Mode      core.FeeMode
	Quarter   int
	Year      int
	Monthly   float64
	Quarterly float64
	Breakdown []BreakdownLine
	PaidTotal float64
	Payments  []core.Payment
}

// Outstanding is the quarterly due minus what has already been paid for the
// period, floored at zero.
func (o DuesOverview) Outstanding() float64 {
	if o.PaidTotal >= o.Quarterly {
		return 0
	}
	return o.Quarterly - o.PaidTotal
}

// DuesService computes the fee view for the dashboard.
type DuesService struct {
	ledger store.Ledger
	tariff core.Tariff
}

func NewDuesService(ledger store.Ledger, tariff core.Tariff) *DuesService {
	return &DuesService{ledger: ledger, tariff: tariff}
}

// Tariff exposes the configured fee constants.
func (s *DuesService) Tariff() core.Tariff {
	return s.tariff
}

// Overview computes the monthly and quarterly dues for the apartment under
// the given allocation mode and matches the ledger entries for the period.
func (s *DuesService) Overview(ctx context.Context, apt core.Apartment, mode core.FeeMode, quarter, year int) (DuesOverview, error) {
	o := DuesOverview{
		Apartment: apt,
		Mode:      mode,
		Quarter:   quarter,
		Year:      year,
		Monthly:   core.MonthlyFee(apt, s.tariff, mode),
		Breakdown: Breakdown(apt, s.tariff, mode),
	}
	o.Quarterly = core.QuarterlyDue(apt, s.tariff, mode)

	pays, err := s.ledger.ListByApartment(ctx, apt.ID)
	if err != nil {
		return DuesOverview{}, err
	}
	for _, p := range pays {
		if p.Quarter == quarter && p.Year == year {
			o.Payments = append(o.Payments, p)
			o.PaidTotal += p.Amount
		}
	}
	return o, nil
}

// Breakdown lists the monthly components under the given mode. Under the
// intrinsic mode an office shows a single discounted base line next to the
// elevator, a home shows the full component list in both modes.
func Breakdown(a core.Apartment, t core.Tariff, mode core.FeeMode) []BreakdownLine {
	if mode == core.ModeIntrinsic && a.Type == core.Office {
		base := (a.BaseCommon + a.Security + a.Misc) * t.OfficeFactor
		lines := []BreakdownLine{
			{Label: "Обща част (офис)", Amount: base},
			{Label: "Асансьор", Amount: a.Elevator},
			{Label: "Фонд ремонт", Amount: t.FundMonthly},
		}
		return appendGarageLines(lines, a)
	}

	lines := []BreakdownLine{
		{Label: "Обща част", Amount: a.BaseCommon},
		{Label: "Асансьор", Amount: a.Elevator},
		{Label: "Почистване", Amount: a.Cleaning},
		{Label: "Охрана", Amount: a.Security},
		{Label: "Други", Amount: a.Misc},
		{Label: "Фонд ремонт", Amount: t.FundMonthly},
	}
	return appendGarageLines(lines, a)
}

func appendGarageLines(lines []BreakdownLine, a core.Apartment) []BreakdownLine {
	if !a.HasGarage {
		return lines
	}
	return append(lines,
		BreakdownLine{Label: "Гараж почистване", Amount: a.GarageClean},
		BreakdownLine{Label: "Гараж осветление", Amount: a.GarageLight},
	)
}

// SumLines is a convenience for tests and templates.
func SumLines(lines []BreakdownLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Amount
	}
	return sum
}

// PeriodLabel renders the canonical quarter label, e.g. "2025-Q4".
func PeriodLabel(quarter, year int) string {
	return core.Payment{Quarter: quarter, Year: year}.Period()
}
