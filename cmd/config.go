package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	// TokenTTL bounds tokens minted by local tooling; verification honours each
	// token's own expiry.
	TokenTTL time.Duration

	KafkaHost             string
	KafkaOrderEventsTopic string
	OutboxRelaySchedule   string
	OutboxBatchSize       int

	ServiceName      string
	OtelTracesStdout bool
}

// UsesPostgres reports whether a database is configured. Without one the service runs
// on in-memory adapters.
func (c Config) UsesPostgres() bool {
	return c.DBHost != ""
}

// RelaysEvents reports whether outbox messages are published to Kafka.
func (c Config) RelaysEvents() bool {
	return c.UsesPostgres() && c.KafkaHost != ""
}
