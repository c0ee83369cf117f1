package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host:    "127.0.0.1",
	Port:    "5432",
	User:    "myuser",
	Pass:    "mypassword",
	Name:    "courier_admin",
	SSLMode: "disable",
}

var defaultRedis = Redis{
	TTL: 30 * time.Second,
}

var defaultKafka = Kafka{
	GroupID:        "courier-admin-ingest",
	ShipmentsTopic: "shipments.created",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultLog = Log{
	Backend: "slog",
	Level:   "info",
}

const defaultOperationTimeout = 3 * time.Second

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultRedis returns the default redis settings (cache disabled).
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultKafka returns the default kafka settings (no brokers).
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultLog returns the default logging settings.
func DefaultLog() Log {
	return defaultLog
}

// DefaultOperationTimeout returns the default per-operation storage timeout.
func DefaultOperationTimeout() time.Duration {
	return defaultOperationTimeout
}
