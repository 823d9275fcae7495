package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDLQProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	d := &DLQProducer{writer: w, logger: newTestLogger()}

	orig := kafka.Message{
		Topic:     "artfolio.artist.updated",
		Partition: 2,
		Offset:    41,
		Key:       []byte("user-1"),
		Value:     []byte(`{"event_type":"artist.updated"}`),
		Headers:   []kafka.Header{{Key: "correlation_id", Value: []byte("c-1")}},
	}
	require.NoError(t, d.Publish(context.Background(), orig, errors.New("index full"), "directory-indexer"))

	msgs := w.written()
	require.Len(t, msgs, 1)
	got := msgs[0]
	assert.Equal(t, "artfolio.dlq.artfolio.artist.updated", got.Topic)
	assert.Equal(t, orig.Value, got.Value)
	assert.Equal(t, "c-1", headerValue(got.Headers, "correlation_id"))
	assert.Equal(t, "2", headerValue(got.Headers, "dlq.original_partition"))
	assert.Equal(t, "41", headerValue(got.Headers, "dlq.original_offset"))
	assert.Equal(t, "directory-indexer", headerValue(got.Headers, "dlq.consumer_group"))
	assert.Equal(t, "index full", headerValue(got.Headers, "dlq.error"))
}

func TestDLQProducer_WriteFails(t *testing.T) {
	d := &DLQProducer{writer: &fakeWriter{err: errors.New("down")}, logger: newTestLogger()}
	err := d.Publish(context.Background(), kafka.Message{Topic: "t"}, nil, "g")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artfolio.dlq.t")
}
