package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	consumerReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_consumer_messages_received_total",
		Help: "Messages fetched from the broker",
	}, []string{"topic", "consumer_group"})

	consumerProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_consumer_messages_processed_total",
		Help: "Messages handled successfully",
	}, []string{"topic", "consumer_group"})

	consumerFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_consumer_messages_failed_total",
		Help: "Messages that exhausted their retries",
	}, []string{"topic", "consumer_group"})

	consumerDeadLettered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_consumer_dlq_published_total",
		Help: "Messages forwarded to the dead-letter topic",
	}, []string{"topic", "consumer_group"})

	consumerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kafka_consumer_processing_duration_seconds",
		Help:    "Handler time per message, retries included",
		Buckets: prometheus.DefBuckets,
	}, []string{"topic", "consumer_group"})

	duplicatesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_consumer_messages_duplicate_total",
		Help: "Events skipped because their id was already processed",
	}, []string{"event_type"})

	producerPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_producer_messages_published_total",
		Help: "Messages written to the broker",
	}, []string{"topic"})

	producerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_producer_publish_errors_total",
		Help: "Failed publish attempts",
	}, []string{"topic"})

	producerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kafka_producer_publish_duration_seconds",
		Help:    "Time spent in WriteMessages",
		Buckets: prometheus.DefBuckets,
	}, []string{"topic"})
)
