package config

import "time"

const defaultPort = 8080

const defaultStorage = StorageDriverPostgres

const defaultLogLevel = "info"

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "cargaviva",
	Pass: "cargaviva",
	Name: "cargaviva",
}

var defaultLifecycle = Lifecycle{
	OperationTimeout: 3 * time.Second,
	UrgentWindow:     24 * time.Hour,
}

var defaultKafka = Kafka{
	LifecycleTopic: "cargaviva.lifecycle",
	GroupID:        "cargaviva-history",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       10,
	Burst:      20,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultPprof = Pprof{
	Addr: "127.0.0.1:6060",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultLifecycle returns the default lifecycle settings.
func DefaultLifecycle() Lifecycle {
	return defaultLifecycle
}

// DefaultKafka returns the default kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultPprof returns the default pprof settings.
func DefaultPprof() Pprof {
	return defaultPprof
}
