package amqp

import (
	"testing"
	"time"
)

func TestPaymentRecordedMessageRoundTrip(t *testing.T) {
	msg := NewPaymentRecordedMessage("p_0011", "A601")
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := PaymentRecordedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.PaymentID != "p_0011" || got.AptID != "A601" {
		t.Fatalf("got %+v", got)
	}
	if !got.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Fatalf("timestamp drifted: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestPaymentRecordedMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := PaymentRecordedMessageFromJSON([]byte("{broken")); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
