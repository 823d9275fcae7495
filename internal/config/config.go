package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	pkgconfig "github.com/utafrali/artfolio/pkg/config"
	"github.com/utafrali/artfolio/pkg/database"
	"github.com/utafrali/artfolio/pkg/tracing"
)

const (
	StorageMemory = "memory"
	StorageMinio  = "minio"

	DirectoryMemory        = "memory"
	DirectoryElasticsearch = "elasticsearch"
)

// Config holds all configuration for the artfolio API server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"ARTFOLIO_HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"artfolio"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"artfolio_secret"`
	PostgresDB   string `env:"ARTFOLIO_DB_NAME" envDefault:"artfolio"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	SlowQueryThreshold time.Duration `env:"SLOW_QUERY_THRESHOLD" envDefault:"200ms"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"ARTFOLIO_REDIS_DB" envDefault:"0"`

	MicrositeCacheTTL time.Duration `env:"MICROSITE_CACHE_TTL" envDefault:"5m"`

	// Kafka
	KafkaBrokers       []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaConsumerGroup string   `env:"ARTFOLIO_CONSUMER_GROUP" envDefault:"artfolio-directory"`

	// Object storage
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	MinioEndpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"artfolio-media"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MediaBaseURL   string `env:"MEDIA_BASE_URL" envDefault:""`

	// Artist directory. The memory index is per replica; Elasticsearch is
	// shared by all of them.
	DirectoryBackend   string `env:"DIRECTORY_BACKEND" envDefault:"memory"`
	ElasticsearchURL   string `env:"ELASTICSEARCH_URL" envDefault:"http://localhost:9200"`
	ElasticsearchIndex string `env:"ELASTICSEARCH_INDEX" envDefault:"artfolio_artists"`

	// Identity provider tokens
	JWTSecret   string `env:"JWT_SECRET" envDefault:"artfolio-dev-secret"`
	JWTIssuer   string `env:"JWT_ISSUER" envDefault:""`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:""`

	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	PprofCIDRs  []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32" envSeparator:","`

	// Per client address; RATE_LIMIT_RPS=0 disables limiting.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	Tracing tracing.Config `envPrefix:"OTEL_"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load artfolio config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load artfolio config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP port %d", c.HTTPPort))
	}
	switch c.StorageBackend {
	case StorageMemory, StorageMinio:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.StorageBackend))
	}
	switch c.DirectoryBackend {
	case DirectoryMemory, DirectoryElasticsearch:
	default:
		errs = append(errs, fmt.Errorf("unknown directory backend %q", c.DirectoryBackend))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.MicrositeCacheTTL < 0 {
		errs = append(errs, errors.New("MICROSITE_CACHE_TTL must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// Postgres returns the pool settings for the configured database.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	return pg
}

func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// PublicMediaURL is the base URL stored objects are served from. The
// in-memory backend serves them from the API itself.
func (c *Config) PublicMediaURL() string {
	if c.MediaBaseURL != "" {
		return strings.TrimRight(c.MediaBaseURL, "/")
	}
	if c.StorageBackend == StorageMinio {
		scheme := "http"
		if c.MinioUseSSL {
			scheme = "https"
		}
		return fmt.Sprintf("%s://%s/%s", scheme, c.MinioEndpoint, c.MinioBucket)
	}
	return fmt.Sprintf("http://localhost:%d", c.HTTPPort)
}
