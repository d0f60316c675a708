package store

import (
	"time"

	"taksa/internal/core"
)

// SeedApartments is the built-in demo roster used when no persisted roster
// exists or the persisted one cannot be read.
func SeedApartments() []core.Apartment {
	return []core.Apartment{
		{
			ID: "A601", Type: core.Home, AreaM2: 92, IdealPartsPct: 1.32,
			PIN:        "1601",
			BaseCommon: 18, Elevator: 7, Cleaning: 6, Security: 8,
			FundRepair: 12, Misc: 2,
		},
		{
			ID: "AP501", Type: core.Home, AreaM2: 88, IdealPartsPct: 1.28,
			HasGarage: true, PIN: "2501",
			BaseCommon: 18, Elevator: 7, Cleaning: 6, Security: 8,
			FundRepair: 12, GarageClean: 3, GarageLight: 2, Misc: 2,
		},
		{
			ID: "A401", Type: core.Home, AreaM2: 88, IdealPartsPct: 1.28,
			HasGarage: true, PIN: "1401",
			BaseCommon: 18, Elevator: 7, Cleaning: 6, Security: 8,
			FundRepair: 12, GarageClean: 3, GarageLight: 2, Misc: 2,
		},
		{
			ID: "B203", Type: core.Office, AreaM2: 60, IdealPartsPct: 0.91,
			PIN:        "2203",
			BaseCommon: 18, Elevator: 7, Cleaning: 6, Security: 8,
			FundRepair: 12, Misc: 2,
		},
	}
}

// SeedPayments mirrors the example ledger shipped with the demo roster.
func SeedPayments() []core.Payment {
	return []core.Payment{
		{
			ID: "p1", AptID: "A601", Quarter: 4, Year: 2025, Amount: 159,
			Date: time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC),
			Note: "Внесено в брой",
		},
		{
			ID: "p2", AptID: "AP501", Quarter: 4, Year: 2025, Amount: 174,
			Date: time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC),
		},
	}
}
