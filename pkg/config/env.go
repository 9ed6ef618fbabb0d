package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMaxAdvanceDays      = "MAX_ADVANCE_DAYS"
	EnvNoShowGrace         = "NO_SHOW_GRACE"
	EnvSweepInterval       = "SWEEP_INTERVAL"
	EnvSlotLockTTL         = "SLOT_LOCK_TTL"
	EnvDefaultSlotDuration = "DEFAULT_SLOT_DURATION_MIN"
	EnvDefaultStartOfDay   = "DEFAULT_START_OF_DAY"
	EnvDefaultEndOfDay     = "DEFAULT_END_OF_DAY"
	EnvMeetingLinkBase     = "MEETING_LINK_BASE"

	EnvStripeAPIKey           = "STRIPE_API_KEY"
	EnvStripeWebhookSecret    = "STRIPE_WEBHOOK_SECRET"
	EnvStripeWebhookTolerance = "STRIPE_WEBHOOK_TOLERANCE"
	EnvPaymentCurrency        = "PAYMENT_CURRENCY"

	EnvVetsURL         = "VETS_URL"
	EnvAvailabilityURL = "AVAILABILITY_URL"
	EnvAppointmentsURL = "APPOINTMENTS_URL"
	EnvPetsURL         = "PETS_URL"
)
