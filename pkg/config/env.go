package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"
	EnvStoreBackend      = "STORE_BACKEND"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

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

	EnvBerthSearchHorizon      = "BERTH_SEARCH_HORIZON"
	EnvBerthShiftStep          = "BERTH_SHIFT_STEP"
	EnvBerthMaxConflictRetries = "BERTH_MAX_CONFLICT_RETRIES"

	EnvEventsEnabled        = "EVENTS_ENABLED"
	EnvBerthAssignedTopic   = "BERTH_ASSIGNED_TOPIC"
	EnvVisitRequestTopic    = "VISIT_REQUEST_TOPIC"
	EnvVisitRequestGroupID  = "VISIT_REQUEST_GROUP_ID"
	EnvVisitRequestDLQTopic = "VISIT_REQUEST_DLQ_TOPIC"
)
