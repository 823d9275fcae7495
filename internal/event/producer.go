// Package event publishes artfolio domain events and consumes the ones the
// API itself reacts to.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/artfolio/internal/domain"
	pkgkafka "github.com/utafrali/artfolio/pkg/kafka"
	"github.com/utafrali/artfolio/pkg/logger"
)

// Source identifies events emitted by the API.
const Source = "artfolio-api"

const (
	AggregateArtist  = "artist"
	AggregateArtwork = "artwork"
	AggregateNews    = "news"
)

// TopicArtistUpdated is consumed by the directory indexer.
const TopicArtistUpdated = pkgkafka.TopicPrefix + "." + domain.EventArtistUpdated

// TopicFor maps an event type to its topic.
func TopicFor(eventType string) string {
	return pkgkafka.TopicPrefix + "." + eventType
}

type publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes artfolio domain events.
type Producer struct {
	kafka  publisher
	logger *slog.Logger
}

func NewProducer(kafka publisher, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

func (p *Producer) PublishArtistUpdated(ctx context.Context, artist *domain.Artist) error {
	data := domain.ArtistUpdatedData{ArtistSummary: artist.Summary()}
	return p.publish(ctx, domain.EventArtistUpdated, artist.ID, AggregateArtist, data)
}

func (p *Producer) PublishArtworkCreated(ctx context.Context, artwork *domain.Artwork) error {
	return p.publishArtwork(ctx, domain.EventArtworkCreated, artwork)
}

func (p *Producer) PublishArtworkUpdated(ctx context.Context, artwork *domain.Artwork) error {
	return p.publishArtwork(ctx, domain.EventArtworkUpdated, artwork)
}

func (p *Producer) PublishArtworkDeleted(ctx context.Context, artwork *domain.Artwork) error {
	return p.publishArtwork(ctx, domain.EventArtworkDeleted, artwork)
}

func (p *Producer) publishArtwork(ctx context.Context, eventType string, artwork *domain.Artwork) error {
	data := domain.ArtworkEventData{ArtworkID: artwork.ID, UserID: artwork.UserID, Title: artwork.Title}
	return p.publish(ctx, eventType, artwork.ID, AggregateArtwork, data)
}

// PublishArtworksReordered is keyed by the artist, since the whole gallery
// changed.
func (p *Producer) PublishArtworksReordered(ctx context.Context, userID string, ids []string) error {
	data := domain.ArtworkReorderedData{UserID: userID, ArtworkIDs: ids}
	return p.publish(ctx, domain.EventArtworkReordered, userID, AggregateArtist, data)
}

func (p *Producer) PublishNewsPublished(ctx context.Context, post *domain.NewsPost) error {
	return p.publishNews(ctx, domain.EventNewsPublished, post)
}

func (p *Producer) PublishNewsUnpublished(ctx context.Context, post *domain.NewsPost) error {
	return p.publishNews(ctx, domain.EventNewsUnpublished, post)
}

func (p *Producer) PublishNewsDeleted(ctx context.Context, post *domain.NewsPost) error {
	return p.publishNews(ctx, domain.EventNewsDeleted, post)
}

func (p *Producer) publishNews(ctx context.Context, eventType string, post *domain.NewsPost) error {
	data := domain.NewsEventData{PostID: post.ID, UserID: post.UserID, Title: post.Title}
	return p.publish(ctx, eventType, post.ID, AggregateNews, data)
}

func (p *Producer) publish(ctx context.Context, eventType, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, TopicFor(eventType), event); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("event_type", eventType),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

// Noop drops every event. It stands in for the producer when no brokers are
// configured.
type Noop struct{}

func (Noop) PublishArtistUpdated(context.Context, *domain.Artist) error       { return nil }
func (Noop) PublishArtworkCreated(context.Context, *domain.Artwork) error     { return nil }
func (Noop) PublishArtworkUpdated(context.Context, *domain.Artwork) error     { return nil }
func (Noop) PublishArtworkDeleted(context.Context, *domain.Artwork) error     { return nil }
func (Noop) PublishArtworksReordered(context.Context, string, []string) error { return nil }
func (Noop) PublishNewsPublished(context.Context, *domain.NewsPost) error     { return nil }
func (Noop) PublishNewsUnpublished(context.Context, *domain.NewsPost) error   { return nil }
func (Noop) PublishNewsDeleted(context.Context, *domain.NewsPost) error       { return nil }
