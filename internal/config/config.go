package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration for the service. Board/league display
// settings live in a separate JSON file (see BoardConfig) because they are
// nested per-league structures that do not map cleanly onto env vars.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	BoardConfig string `env:"BOARD_CONFIG" envDefault:"board.json"`

	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"60s"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`

	// RenderMode selects the output sink: "text" writes frames to
	// stdout, "frame" keeps bitmaps in an in-memory buffer.
	RenderMode string `env:"RENDER_MODE" envDefault:"text"`

	ESPN    ESPNConfig
	Redis   RedisConfig
	Metrics MetricsConfig
}

// ESPNConfig controls how the upstream scoreboard API is reached.
type ESPNConfig struct {
	BaseURL        string        `env:"ESPN_BASE_URL" envDefault:"https://site.api.espn.com/apis/site/v2/sports"`
	RequestTimeout time.Duration `env:"ESPN_REQUEST_TIMEOUT" envDefault:"30s"`
	RequestsPerMin int           `env:"ESPN_REQUESTS_PER_MINUTE" envDefault:"30"`
	MaxRetries     int           `env:"ESPN_MAX_RETRIES" envDefault:"3"`
}

// RedisConfig enables the Redis cache backend when Addr is set; with an
// empty Addr the in-memory cache is used.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// MetricsConfig controls the telemetry exporters.
type MetricsConfig struct {
	Enabled      bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Port         string `env:"METRICS_PORT" envDefault:"9090"`
	OtlpEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtlpInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
}

// Load reads configuration from environment variables with defaults.
func Load() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}
