package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// BootstrapAdminSecret gates the first-admin bootstrap operation.
	// When empty the operation is disabled.
	BootstrapAdminSecret string `env:"BOOTSTRAP_ADMIN_SECRET"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Push      PushConfig
	Scheduler SchedulerConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=access_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type PushConfig struct {
	URL     string        `env:"PUSH_GATEWAY_URL"`
	APIKey  string        `env:"PUSH_GATEWAY_API_KEY"`
	Timeout time.Duration `env:"PUSH_GATEWAY_TIMEOUT, default=10s"`
	// BatchesPerSecond paces outbound batches. Zero disables pacing.
	BatchesPerSecond float64 `env:"PUSH_BATCHES_PER_SECOND, default=5"`
}

type SchedulerConfig struct {
	Enabled  bool          `env:"REMINDER_SCHEDULER_ENABLED, default=true"`
	Interval time.Duration `env:"REMINDER_INTERVAL, default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		panic(err)
	}
	return &cfg
}
