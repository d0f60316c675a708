package amqp

import (
	"encoding/json"
	"time"
)

// PaymentRecordedMessage tells the mirror worker that a payment landed in the
// ledger. It carries only the id, the worker reads the full entry back from
// the store.
type PaymentRecordedMessage struct {
	PaymentID string    `json:"payment_id"`
	AptID     string    `json:"apt_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPaymentRecordedMessage(paymentID, aptID string) *PaymentRecordedMessage {
	return &PaymentRecordedMessage{
		PaymentID: paymentID,
		AptID:     aptID,
		Timestamp: time.Now(),
	}
}

func (m *PaymentRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PaymentRecordedMessageFromJSON(data []byte) (*PaymentRecordedMessage, error) {
	var msg PaymentRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
