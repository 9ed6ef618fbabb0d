package model

import "time"

type Payment struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	AppointmentID   string    `json:"appointment_id" bson:"appointment_id" validate:"required,mongodb"`
	ClientID        string    `json:"client_id" bson:"client_id" validate:"required,mongodb"`
	AmountCents     int64     `json:"amount_cents" bson:"amount_cents" validate:"required,min=1"`
	Currency        string    `json:"currency" bson:"currency" validate:"required,len=3"`
	Status          string    `json:"status" bson:"status" validate:"required,oneof=created processing succeeded failed refunded"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty" bson:"payment_intent_id"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// ProviderEvent records a processed payment-provider webhook event so that
// replayed deliveries are ignored.
type ProviderEvent struct {
	ID         string    `bson:"_id" json:"id"`
	EventType  string    `bson:"event_type" json:"event_type"`
	ReceivedAt time.Time `bson:"received_at" json:"received_at"`
}
