package config

import (
	"time"

	"vetconnect/pkg/model"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "vetconnect"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"

	DefaultPort = "8080"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	// Booking windows may be requested at most this many days ahead.
	DefaultMaxAdvanceDays = 180

	// Past pending/confirmed appointments are swept to no_show after this
	// grace period.
	DefaultNoShowGrace   = 1 * time.Hour
	DefaultSweepInterval = 30 * time.Minute

	DefaultSlotLockTTL = 10 * time.Second

	DefaultDefaultSlotDurationMin = 30
	DefaultDefaultStartOfDay      = "09:00"
	DefaultDefaultEndOfDay        = "17:00"

	DefaultMeetingLinkBase = "https://meet.vetconnect.example"

	DefaultStripeWebhookTolerance = 5 * time.Minute
	DefaultPaymentCurrency        = "usd"

	DefaultVetsURL         = "http://localhost:8081"
	DefaultAvailabilityURL = "http://localhost:8082"
	DefaultAppointmentsURL = "http://localhost:8083"
	DefaultPetsURL         = "http://localhost:8084"
)

// Appointment lifecycle statuses.
const (
	Pending    = "pending"
	Confirmed  = "confirmed"
	InProgress = "in_progress"
	Completed  = "completed"
	Cancelled  = "cancelled"
	NoShow     = "no_show"
)

// Cancellation reasons recorded on cancelled appointments.
const (
	CancelClientRequest  = "client_request"
	CancelVetUnavailable = "vet_unavailable"
	CancelEmergency      = "emergency"
	CancelRescheduled    = "rescheduled"
	CancelOther          = "other"
)

// Payment statuses.
const (
	PaymentCreated    = "created"
	PaymentProcessing = "processing"
	PaymentSucceeded  = "succeeded"
	PaymentFailed     = "failed"
	PaymentRefunded   = "refunded"
)

type Weekday = model.Weekday

const (
	Sunday    = model.Sunday
	Monday    = model.Monday
	Tuesday   = model.Tuesday
	Wednesday = model.Wednesday
	Thursday  = model.Thursday
	Friday    = model.Friday
	Saturday  = model.Saturday
)

var DefaultWorkingDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
