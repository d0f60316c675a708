// Package services orchestrates the store, the message queue and the CSV
// codec behind the HTTP handlers.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"taksa/internal/amqp"
	"taksa/internal/core"
	"taksa/internal/store"
)

// PaymentService records payments locally and notifies the mirror worker.
type PaymentService struct {
	ledger     store.Ledger
	amqpClient *amqp.Client
}

// NewPaymentService wires the ledger with an optional AMQP client. A nil
// client disables mirroring without disabling payments.
func NewPaymentService(ledger store.Ledger, amqpClient *amqp.Client) *PaymentService {
	return &PaymentService{
		ledger:     ledger,
		amqpClient: amqpClient,
	}
}

// Record appends the payment to the ledger first, then publishes the mirror
// job. Publish failures are logged and swallowed, the payment is already
// safe on disk.
func (s *PaymentService) Record(ctx context.Context, p core.Payment) (string, error) {
	id, err := s.ledger.Append(ctx, p)
	if err != nil {
		return "", fmt.Errorf("save payment: %w", err)
	}

	if err := s.publishRecorded(ctx, id, p.AptID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish payment recorded message",
			"payment_id", id, "error", err)
	}

	return id, nil
}

func (s *PaymentService) ListAll(ctx context.Context) ([]core.Payment, error) {
	return s.ledger.ListPayments(ctx)
}

func (s *PaymentService) ListForApartment(ctx context.Context, aptID string) ([]core.Payment, error) {
	return s.ledger.ListByApartment(ctx, aptID)
}

func (s *PaymentService) publishRecorded(ctx context.Context, paymentID, aptID string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping mirror message")
		return nil
	}
	return s.amqpClient.PublishPaymentRecorded(ctx, paymentID, aptID)
}

// Close releases the AMQP connection. The ledger is owned by the backend and
// closed there.
func (s *PaymentService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp: %w", err)
		}
	}
	return nil
}
