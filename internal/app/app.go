package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/utafrali/artfolio/internal/auth"
	"github.com/utafrali/artfolio/internal/config"
	"github.com/utafrali/artfolio/internal/directory"
	esdirectory "github.com/utafrali/artfolio/internal/directory/elasticsearch"
	"github.com/utafrali/artfolio/internal/event"
	handler "github.com/utafrali/artfolio/internal/handler/http"
	"github.com/utafrali/artfolio/internal/repository/postgres"
	"github.com/utafrali/artfolio/internal/repository/redis"
	"github.com/utafrali/artfolio/internal/service"
	"github.com/utafrali/artfolio/internal/storage"
	"github.com/utafrali/artfolio/internal/storage/memory"
	"github.com/utafrali/artfolio/internal/storage/minio"
	"github.com/utafrali/artfolio/migrations"
	"github.com/utafrali/artfolio/pkg/database"
	"github.com/utafrali/artfolio/pkg/health"
	pkgkafka "github.com/utafrali/artfolio/pkg/kafka"
	"github.com/utafrali/artfolio/pkg/middleware"
	"github.com/utafrali/artfolio/pkg/tracing"
)

const (
	serviceName = "artfolio"

	// idempotencyTTL bounds how long consumed event ids are remembered.
	idempotencyTTL = 24 * time.Hour
)

// App wires together all dependencies and runs the artfolio API.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *goredis.Client
	producer       *pkgkafka.Producer
	consumer       *pkgkafka.Consumer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	database.SetSlowQueryLogging(cfg.SlowQueryThreshold, logger)

	// Initialize PostgreSQL connection pool.
	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, serviceName); err != nil {
		logger.Warn("failed to register pool metrics", slog.String("error", err.Error()))
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	redisClient, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.Redis().Addr()))

	store, media, err := newStorage(ctx, cfg)
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, err
	}

	index, err := newDirectory(ctx, cfg, logger)
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, err
	}

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	artists := postgres.NewArtistRepository(pool)
	artworks := postgres.NewArtworkRepository(pool)
	news := postgres.NewNewsRepository(pool)
	cache := redis.NewMicrositeCache(redisClient)
	events := event.NewProducer(producer, logger)

	directoryService := service.NewDirectoryService(index, artists, logger)
	if err := directoryService.Rebuild(ctx); err != nil {
		_ = producer.Close()
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("load artist directory: %w", err)
	}

	services := handler.Services{
		Profiles:   service.NewProfileService(artists, cache, index, events, logger),
		Artworks:   service.NewArtworkService(artworks, artists, cache, events, logger),
		News:       service.NewNewsService(news, artists, cache, events, logger),
		Microsites: service.NewMicrositeService(artists, artworks, news, cache, cfg.MicrositeCacheTTL, logger),
		Directory:  directoryService,
		Uploads:    service.NewUploadService(store, logger),
	}

	directoryConsumer := event.NewDirectoryConsumer(index, logger)
	idempotency := pkgkafka.NewRedisIdempotencyStore(redisClient, "artfolio:consumed:"+consumerGroup(cfg), idempotencyTTL)
	consumer := pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
		Brokers:   cfg.KafkaBrokers,
		GroupID:   consumerGroup(cfg),
		Topic:     event.TopicArtistUpdated,
		MinBytes:  1,
		MaxBytes:  10e6,
		EnableDLQ: true,
	}, pkgkafka.IdempotentHandler(idempotency, directoryConsumer.Handle, logger), logger)

	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, auth.WithAudience(cfg.JWTAudience))

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterOptional("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterOptional("kafka", producer.Ping)
	if pinger, ok := store.(interface{ Ping(context.Context) error }); ok {
		healthHandler.Register("storage", pinger.Ping)
	}
	if pinger, ok := index.(interface{ Ping(context.Context) error }); ok {
		healthHandler.Register("directory", pinger.Ping)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(services, handler.RouterConfig{
		ValidateToken: verifier.Verify,
		CORS:          corsCfg,
		PprofCIDRs:    cfg.PprofCIDRs,
		RateLimit:     middleware.RateLimitConfig{RPS: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
		Media:         media,
	}, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		producer:       producer,
		consumer:       consumer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// newStorage picks the object storage backend. The in-memory backend is
// also returned as the handler's media source.
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, handler.ObjectSource, error) {
	if cfg.StorageBackend != config.StorageMinio {
		store := memory.New(cfg.PublicMediaURL())
		return store, store, nil
	}

	store, err := minio.New(minio.Config{
		Endpoint:      cfg.MinioEndpoint,
		AccessKey:     cfg.MinioAccessKey,
		SecretKey:     cfg.MinioSecretKey,
		Bucket:        cfg.MinioBucket,
		UseSSL:        cfg.MinioUseSSL,
		PublicBaseURL: cfg.MediaBaseURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init object storage: %w", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, nil, fmt.Errorf("ensure bucket %s: %w", cfg.MinioBucket, err)
	}
	return store, nil, nil
}

// directoryIndex is served by the in-memory index or Elasticsearch.
type directoryIndex interface {
	service.DirectoryIndex
	event.Indexer
}

func newDirectory(ctx context.Context, cfg *config.Config, logger *slog.Logger) (directoryIndex, error) {
	if cfg.DirectoryBackend != config.DirectoryElasticsearch {
		return directory.NewIndex(), nil
	}

	index, err := esdirectory.New(ctx, esdirectory.Config{
		URL:       cfg.ElasticsearchURL,
		IndexName: cfg.ElasticsearchIndex,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init artist directory: %w", err)
	}
	logger.Info("connected to Elasticsearch",
		slog.String("url", cfg.ElasticsearchURL),
		slog.String("index", cfg.ElasticsearchIndex),
	)
	return index, nil
}

// consumerGroup is shared when the directory lives in Elasticsearch. An
// in-memory directory is per replica, so each replica needs its own group
// to see every artist update.
func consumerGroup(cfg *config.Config) string {
	if cfg.DirectoryBackend == config.DirectoryElasticsearch {
		return cfg.KafkaConsumerGroup
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return cfg.KafkaConsumerGroup
	}
	return cfg.KafkaConsumerGroup + "-" + host
}

// Run starts the HTTP server and the directory consumer, blocking until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		if err := a.consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("kafka consumer: %w", err)
		}
	}()

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.consumer.Close(); err != nil {
		a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.pool.Close()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
