// Package worker mirrors freshly recorded payments to the external
// spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"taksa/internal/amqp"
	"taksa/internal/sheets"
	"taksa/internal/store"
)

// MirrorWorker reads ledger entries referenced by queue messages and copies
// them to the configured mirror.
type MirrorWorker struct {
	ledger store.Ledger
	mirror sheets.PaymentMirror
}

func NewMirrorWorker(ledger store.Ledger, mirror sheets.PaymentMirror) *MirrorWorker {
	return &MirrorWorker{ledger: ledger, mirror: mirror}
}

// HandleMessage processes one payment recorded message. The payment is read
// back from the ledger so the mirrored row always reflects what was stored,
// not what was queued.
func (w *MirrorWorker) HandleMessage(ctx context.Context, msg *amqp.PaymentRecordedMessage) error {
	pays, err := w.ledger.ListByApartment(ctx, msg.AptID)
	if err != nil {
		return fmt.Errorf("load payments for %s: %w", msg.AptID, err)
	}

	for _, p := range pays {
		if p.ID != msg.PaymentID {
			continue
		}
		ref, err := w.mirror.AppendPayment(ctx, p)
		if err != nil {
			return fmt.Errorf("mirror payment %s: %w", p.ID, err)
		}
		slog.InfoContext(ctx, "Payment mirrored",
			"payment_id", p.ID,
			"apt_id", p.AptID,
			"row_ref", ref)
		return nil
	}

	// A message for a missing entry is not retryable, drop it.
	slog.WarnContext(ctx, "Payment referenced by message not found in ledger",
		"payment_id", msg.PaymentID,
		"apt_id", msg.AptID)
	return nil
}
