package sheets

import (
	"context"

	"taksa/internal/core"
)

// PaymentMirror is the outbound port for copying ledger entries to an
// external spreadsheet kept by the building manager.
type PaymentMirror interface {
	AppendPayment(ctx context.Context, p core.Payment) (rowRef string, err error)
}
