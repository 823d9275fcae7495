package kafka

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetrics_Registered(t *testing.T) {
	consumerReceived.WithLabelValues("t", "g")
	consumerProcessed.WithLabelValues("t", "g")
	consumerFailed.WithLabelValues("t", "g")
	consumerDeadLettered.WithLabelValues("t", "g")
	consumerDuration.WithLabelValues("t", "g")
	duplicatesSkipped.WithLabelValues("e")
	producerPublished.WithLabelValues("t")
	producerErrors.WithLabelValues("t")
	producerDuration.WithLabelValues("t")

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}

	for _, name := range []string{
		"kafka_consumer_messages_received_total",
		"kafka_consumer_messages_processed_total",
		"kafka_consumer_messages_failed_total",
		"kafka_consumer_dlq_published_total",
		"kafka_consumer_processing_duration_seconds",
		"kafka_consumer_messages_duplicate_total",
		"kafka_producer_messages_published_total",
		"kafka_producer_publish_errors_total",
		"kafka_producer_publish_duration_seconds",
	} {
		assert.True(t, names[name], "metric %s not registered", name)
	}
}

func TestMetrics_ProducerCountsFailures(t *testing.T) {
	topic := "metrics-test-producer"
	before := counterValue(t, producerErrors.WithLabelValues(topic))

	e, err := NewEvent("artist.updated", "u", "artist", "artfolio", nil)
	require.NoError(t, err)
	p := newProducerWithWriter(&fakeWriter{err: assert.AnError}, nil, newTestLogger())
	require.Error(t, p.Publish(t.Context(), topic, e))

	assert.Equal(t, before+1, counterValue(t, producerErrors.WithLabelValues(topic)))
}
