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

	// HeartbeatTTL is how long a courier stays online without a heartbeat
	// before the sweep forces it offline.
	HeartbeatTTL time.Duration

	// Cron expressions with a seconds field.
	StaleSweepSchedule  string
	RebroadcastSchedule string
}
