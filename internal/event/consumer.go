package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/artfolio/internal/domain"
	pkgkafka "github.com/utafrali/artfolio/pkg/kafka"
)

// Indexer receives artist changes for the directory.
type Indexer interface {
	Index(ctx context.Context, artist domain.ArtistSummary) error
}

// DirectoryConsumer keeps the directory index in step with profile edits,
// including those made by other API replicas.
type DirectoryConsumer struct {
	index  Indexer
	logger *slog.Logger
}

func NewDirectoryConsumer(index Indexer, logger *slog.Logger) *DirectoryConsumer {
	return &DirectoryConsumer{index: index, logger: logger}
}

// Handle is a pkgkafka.Handler.
func (c *DirectoryConsumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	if event.EventType != domain.EventArtistUpdated {
		c.logger.DebugContext(ctx, "ignoring event",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}

	var data domain.ArtistUpdatedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}
	if data.ID == "" {
		return fmt.Errorf("%s event %s has no artist id", event.EventType, event.EventID)
	}

	if err := c.index.Index(ctx, data.ArtistSummary); err != nil {
		return fmt.Errorf("index artist %s: %w", data.ID, err)
	}

	c.logger.InfoContext(ctx, "indexed artist",
		slog.String("artist_id", data.ID),
		slog.String("username", data.Username),
	)
	return nil
}
