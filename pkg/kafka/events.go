package kafka

import "time"

// Topic names shared by the appointment services.
const (
	TopicAppointments    = "vetconnect.appointments"
	TopicAppointmentsDLQ = "vetconnect.appointments.dlq"
	TopicPayments        = "vetconnect.payments"
	TopicPaymentsDLQ     = "vetconnect.payments.dlq"
)

// Appointment lifecycle event types carried in the event-type header.
const (
	EventAppointmentRequested   = "appointment.requested"
	EventAppointmentConfirmed   = "appointment.confirmed"
	EventAppointmentStarted     = "appointment.started"
	EventAppointmentCompleted   = "appointment.completed"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventAppointmentNoShow      = "appointment.no_show"
	EventAppointmentRescheduled = "appointment.rescheduled"

	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentFailed    = "payment.failed"
	EventPaymentRefunded  = "payment.refunded"
)

const SchemaVersionV1 = "v1"

// AppointmentEvent is the payload for all appointment lifecycle events.
// Messages are keyed by VetID so consumers see each vet's events in order.
type AppointmentEvent struct {
	AppointmentID string    `json:"appointment_id"`
	VetID         string    `json:"vet_id"`
	ClientID      string    `json:"client_id"`
	PetID         string    `json:"pet_id"`
	Status        string    `json:"status"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// PaymentEvent is the payload for payment state changes.
type PaymentEvent struct {
	PaymentID     string    `json:"payment_id"`
	AppointmentID string    `json:"appointment_id"`
	ClientID      string    `json:"client_id"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
