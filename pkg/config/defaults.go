package config

import "time"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "portcall"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultStoreBackend      = StoreMongo

	DefaultRedisDB = 0

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 10 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	resolveTimeoutMargin = 1 * time.Second

	// Window shifts stop once the requested arrival has moved this far.
	DefaultBerthSearchHorizon      = 7 * 24 * time.Hour
	DefaultBerthShiftStep          = 15 * time.Minute
	DefaultBerthMaxConflictRetries = 3

	DefaultEventsEnabled        = false
	DefaultBerthAssignedTopic   = "berth.assigned"
	DefaultVisitRequestTopic    = "vessel-visit.requested"
	DefaultVisitRequestGroupID  = "berths"
	DefaultVisitRequestDLQTopic = "vessel-visit.requested.dlq"
)
