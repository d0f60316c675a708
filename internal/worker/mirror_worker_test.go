package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"taksa/internal/amqp"
	"taksa/internal/core"
	"taksa/internal/store"
)

type fakeMirror struct {
	appended []core.Payment
	err      error
}

func (f *fakeMirror) AppendPayment(_ context.Context, p core.Payment) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.appended = append(f.appended, p)
	return "Payments!A5:F5", nil
}

func newTestLedger(t *testing.T) *store.FileStore {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestHandleMessageMirrorsStoredEntry(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	id, err := ledger.Append(ctx, core.Payment{
		AptID: "A601", Quarter: 1, Year: 2026, Amount: 159.3, Date: time.Now(),
		Note: "превод",
	})
	if err != nil {
		t.Fatal(err)
	}

	mirror := &fakeMirror{}
	w := NewMirrorWorker(ledger, mirror)
	if err := w.HandleMessage(ctx, amqp.NewPaymentRecordedMessage(id, "A601")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mirror.appended) != 1 || mirror.appended[0].ID != id {
		t.Fatalf("mirrored %+v", mirror.appended)
	}
	if mirror.appended[0].Note != "превод" {
		t.Fatalf("row must come from the ledger, got %+v", mirror.appended[0])
	}
}

func TestHandleMessageMissingPaymentIsDropped(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewMirrorWorker(newTestLedger(t), mirror)

	msg := amqp.NewPaymentRecordedMessage("p_gone", "A601")
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("missing entry must not be retried: %v", err)
	}
	if len(mirror.appended) != 0 {
		t.Fatalf("nothing should have been mirrored: %+v", mirror.appended)
	}
}

func TestHandleMessageMirrorFailureIsRetryable(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	id, err := ledger.Append(ctx, core.Payment{
		AptID: "A601", Quarter: 1, Year: 2026, Amount: 100, Date: time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	w := NewMirrorWorker(ledger, &fakeMirror{err: errors.New("quota")})
	if err := w.HandleMessage(ctx, amqp.NewPaymentRecordedMessage(id, "A601")); err == nil {
		t.Fatal("mirror failure should surface so the message is requeued")
	}
}
