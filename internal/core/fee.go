// Package core holds the building roster domain model and the fee formulas.
//
// This file implements the Strategy Pattern for fee allocation. Each mode
// ("classic", "intrinsic-cost") has its own strategy that encapsulates how
// the monthly fee is assembled from the apartment's cost components.
package core

import "fmt"

type FeeMode string

const (
	// ModeClassic charges every cost component uniformly regardless of
	// unit type.
	ModeClassic FeeMode = "classic"
	// ModeIntrinsic discounts or excludes components an office unit does
	// not consume: cleaning is dropped, the shared base is multiplied by
	// the office factor, the elevator stays at full rate.
	ModeIntrinsic FeeMode = "intrinsic-cost"
)

func (m FeeMode) IsValid() bool {
	switch m {
	case ModeClassic, ModeIntrinsic:
		return true
	default:
		return false
	}
}

// Tariff holds the building-wide charge constants. These come from
// configuration, not from the roster.
type Tariff struct {
	// FundMonthly is the flat repair/renewal fund charge per unit per
	// month, identical across modes and unit types.
	FundMonthly float64
	// OfficeFactor scales the shared base for office units in
	// intrinsic-cost mode.
	OfficeFactor float64
}

// DefaultTariff matches the reference budget data.
func DefaultTariff() Tariff {
	return Tariff{FundMonthly: 12, OfficeFactor: 0.85}
}

// FeeStrategy computes the monthly fee for one apartment under one
// allocation mode. Implementations are pure; malformed numeric input never
// reaches them (upstream decoding coerces blanks to zero).
type FeeStrategy interface {
	Monthly(a Apartment, t Tariff) float64
}

// ClassicStrategy implements FeeStrategy for uniform allocation.
type ClassicStrategy struct{}

func (ClassicStrategy) Monthly(a Apartment, t Tariff) float64 {
	return sharedBase(a) + t.FundMonthly + garageCharge(a)
}

// IntrinsicCostStrategy implements FeeStrategy for consumption-based
// allocation. Home units pay the classic base unchanged.
type IntrinsicCostStrategy struct{}

func (IntrinsicCostStrategy) Monthly(a Apartment, t Tariff) float64 {
	base := sharedBase(a)
	if a.Type == Office {
		base = (a.BaseCommon+a.Security+a.Misc)*t.OfficeFactor + a.Elevator
	}
	return base + t.FundMonthly + garageCharge(a)
}

func sharedBase(a Apartment) float64 {
	return a.BaseCommon + a.Elevator + a.Cleaning + a.Security + a.Misc
}

// garageCharge is always charged at full rate, in every mode.
func garageCharge(a Apartment) float64 {
	if !a.HasGarage {
		return 0
	}
	return a.GarageClean + a.GarageLight
}

var feeStrategies = map[FeeMode]FeeStrategy{
	ModeClassic:   ClassicStrategy{},
	ModeIntrinsic: IntrinsicCostStrategy{},
}

// GetFeeStrategy returns the strategy for a mode, or an error for an
// unknown one.
func GetFeeStrategy(mode FeeMode) (FeeStrategy, error) {
	s, ok := feeStrategies[mode]
	if !ok {
		return nil, fmt.Errorf("unknown fee mode: %s", mode)
	}
	return s, nil
}

// MonthlyFee computes the monthly fee for one apartment. An unknown mode
// falls back to classic so display paths never fail.
func MonthlyFee(a Apartment, t Tariff, mode FeeMode) float64 {
	s, err := GetFeeStrategy(mode)
	if err != nil {
		s = ClassicStrategy{}
	}
	return s.Monthly(a, t)
}

// QuarterlyDue is three monthly fees, no pro-ration.
func QuarterlyDue(a Apartment, t Tariff, mode FeeMode) float64 {
	return MonthlyFee(a, t, mode) * 3
}
