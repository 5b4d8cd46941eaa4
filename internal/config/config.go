package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      string `envconfig:"APP_ENV" default:"dev"`
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Limits   LimitsConfig `envconfig:"RATE_LIMIT"`
	Cache    CacheConfig
	SMTP     SMTPConfig
	Rabbit   RabbitConfig
	Jobs     JobsConfig    `envconfig:"PROMO_SWEEP"`
	Tracing  TracingConfig `envconfig:"OTEL"`
}

type ServerConfig struct {
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
}

type PostgresConfig struct {
	User        string `envconfig:"USER" required:"true"`
	Password    string `envconfig:"PASSWORD" required:"true"`
	Name        string `envconfig:"DB" required:"true"`
	Host        string `envconfig:"HOST" default:"localhost"`
	Port        int    `envconfig:"PORT" default:"5432"`
	SSLMode     string `envconfig:"SSLMODE" default:"disable"`
	MaxConns    int32  `envconfig:"MAX_CONNS" default:"10"`
	MinConns    int32  `envconfig:"MIN_CONNS" default:"0"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"true"`
}

// DSN builds a postgres:// connection string with escaped credentials.
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6380"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
	PoolSize int    `envconfig:"POOL_SIZE" default:"10"`
}

type LimitsConfig struct {
	Bookings int           `envconfig:"BOOKINGS" default:"10"`
	Promo    int           `envconfig:"PROMO" default:"30"`
	Window   time.Duration `envconfig:"WINDOW" default:"1m"`
}

type CacheConfig struct {
	ExperienceTTL  time.Duration `envconfig:"EXPERIENCE_TTL" default:"60s"`
	ListTTL        time.Duration `envconfig:"LIST_TTL" default:"30s"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

// SMTPConfig enables confirmation mail when Host is set.
type SMTPConfig struct {
	Host     string `envconfig:"HOST"`
	Port     int    `envconfig:"PORT" default:"587"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	From     string `envconfig:"FROM" default:"bookings@tripslot.local"`
}

// RabbitConfig enables booking events when URL is set.
type RabbitConfig struct {
	URL      string `envconfig:"URL"`
	Exchange string `envconfig:"EXCHANGE" default:"tripslot.events"`
}

type JobsConfig struct {
	Interval time.Duration `envconfig:"INTERVAL" default:"1h"`
	Grace    time.Duration `envconfig:"GRACE" default:"168h"`
}

// TracingConfig enables OTLP export when Endpoint is set.
type TracingConfig struct {
	Endpoint    string  `envconfig:"EXPORTER_OTLP_ENDPOINT"`
	ServiceName string  `envconfig:"SERVICE_NAME" default:"tripslot"`
	SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT %d", op, c.Server.Port)
	}

	if c.Limits.Window <= 0 {
		return nil, fmt.Errorf("%s: RATE_LIMIT_WINDOW must be positive", op)
	}

	return &c, nil
}
