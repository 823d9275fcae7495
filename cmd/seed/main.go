// Command seed fills the artfolio database with demo artists, artworks and
// news, and announces every artist on the artist.updated topic so running
// replicas pick them up in their directory index.
//
// Run: go run ./cmd/seed   (SEED_ARTISTS and SEED_RANDOM tune the data set)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/utafrali/artfolio/internal/config"
	"github.com/utafrali/artfolio/internal/event"
	"github.com/utafrali/artfolio/internal/repository/postgres"
	"github.com/utafrali/artfolio/migrations"
	pkgconfig "github.com/utafrali/artfolio/pkg/config"
	"github.com/utafrali/artfolio/pkg/database"
	pkgkafka "github.com/utafrali/artfolio/pkg/kafka"
	"github.com/utafrali/artfolio/pkg/logger"
)

type seedConfig struct {
	Artists int    `env:"SEED_ARTISTS" envDefault:"25"`
	Random  uint64 `env:"SEED_RANDOM" envDefault:"42"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	var sc seedConfig
	if err := pkgconfig.Load(&sc); err != nil {
		return err
	}

	log := logger.New("artfolio-seed", cfg.LogLevel)
	slog.SetDefault(log)

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), log)
	defer producer.Close()
	events := event.NewProducer(producer, log)

	artists := postgres.NewArtistRepository(pool)
	artworks := postgres.NewArtworkRepository(pool)
	news := postgres.NewNewsRepository(pool)

	data := generate(sc.Artists, sc.Random, time.Now())
	log.Info("seeding", slog.Int("artists", len(data)), slog.Uint64("random", sc.Random))

	var nArtworks, nNews int
	for i, s := range data {
		if err := artists.Upsert(ctx, &s.Artist); err != nil {
			return fmt.Errorf("upsert artist %s: %w", s.Artist.Username, err)
		}

		// Re-runs replace what an earlier run created.
		existing, err := artworks.ListByUser(ctx, s.Artist.ID)
		if err != nil {
			return fmt.Errorf("list artworks of %s: %w", s.Artist.Username, err)
		}
		for _, a := range existing {
			if err := artworks.Delete(ctx, a.ID, s.Artist.ID); err != nil {
				return fmt.Errorf("delete artwork %s: %w", a.ID, err)
			}
		}
		posts, err := news.ListByUser(ctx, s.Artist.ID)
		if err != nil {
			return fmt.Errorf("list news of %s: %w", s.Artist.Username, err)
		}
		for _, p := range posts {
			if err := news.Delete(ctx, p.ID, s.Artist.ID); err != nil {
				return fmt.Errorf("delete news post %s: %w", p.ID, err)
			}
		}

		for j := range s.Artworks {
			if err := artworks.Create(ctx, &s.Artworks[j]); err != nil {
				return fmt.Errorf("create artwork for %s: %w", s.Artist.Username, err)
			}
		}
		for j := range s.News {
			if err := news.Create(ctx, &s.News[j]); err != nil {
				return fmt.Errorf("create news post for %s: %w", s.Artist.Username, err)
			}
		}
		nArtworks += len(s.Artworks)
		nNews += len(s.News)

		if err := events.PublishArtistUpdated(ctx, &s.Artist); err != nil {
			log.Warn("failed to publish artist.updated",
				slog.String("username", s.Artist.Username),
				slog.String("error", err.Error()),
			)
		}
		if (i+1)%10 == 0 {
			log.Info("progress", slog.Int("done", i+1), slog.Int("total", len(data)))
		}
	}

	log.Info("seed complete",
		slog.Int("artists", len(data)),
		slog.Int("artworks", nArtworks),
		slog.Int("news_posts", nNews),
	)
	return nil
}
