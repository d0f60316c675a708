package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Home   ApartmentType = "home"
	Office ApartmentType = "office"
)

type (
	ApartmentType string

	// Apartment is one unit of the building roster. Cost components are
	// monthly amounts in lev; garage components are only meaningful when
	// HasGarage is set but are stored either way.
	Apartment struct {
		ID            string
		Type          ApartmentType
		AreaM2        float64
		IdealPartsPct float64
		HasGarage     bool
		PIN           string

		BaseCommon  float64
		Elevator    float64
		Cleaning    float64
		Security    float64
		FundRepair  float64
		GarageClean float64
		GarageLight float64
		Misc        float64
	}

	// Payment is one entry of the append-only ledger. The billing period is
	// always an explicit quarter+year pair.
	Payment struct {
		ID      string
		AptID   string
		Quarter int
		Year    int
		Amount  float64
		Date    time.Time
		Note    string
	}
)

var (
	ErrUnknownApartment = errors.New("no such apartment")
	ErrWrongPIN         = errors.New("wrong PIN")

	ErrEmptyAptID   = errors.New("empty apartment id")
	ErrInvalidType  = errors.New("invalid apartment type")
	ErrInvalidArea  = errors.New("invalid area")
	ErrInvalidShare = errors.New("invalid ideal parts share")
	ErrNegativeCost = errors.New("negative cost component")

	ErrMissingAptID  = errors.New("missing apartment id")
	ErrMissingAmount = errors.New("missing or invalid amount")
	ErrMissingPeriod = errors.New("missing payment period")
	ErrMissingDate   = errors.New("missing payment date")
)

func (t ApartmentType) IsValid() bool {
	switch t {
	case Home, Office:
		return true
	default:
		return false
	}
}

func (a Apartment) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrEmptyAptID
	}
	if !a.Type.IsValid() {
		return ErrInvalidType
	}
	if a.AreaM2 <= 0 {
		return ErrInvalidArea
	}
	if a.IdealPartsPct <= 0 {
		return ErrInvalidShare
	}
	for _, c := range []float64{
		a.BaseCommon, a.Elevator, a.Cleaning, a.Security,
		a.FundRepair, a.GarageClean, a.GarageLight, a.Misc,
	} {
		if c < 0 {
			return ErrNegativeCost
		}
	}
	return nil
}

// Period renders the billing period, e.g. "2026-Q1". Empty for an invalid
// quarter.
func (p Payment) Period() string {
	if p.Quarter < 1 || p.Quarter > 4 {
		return ""
	}
	return fmt.Sprintf("%d-Q%d", p.Year, p.Quarter)
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.AptID) == "" {
		return ErrMissingAptID
	}
	if p.Amount <= 0 {
		return ErrMissingAmount
	}
	if p.Quarter < 1 || p.Quarter > 4 || p.Year <= 0 {
		return ErrMissingPeriod
	}
	if p.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
