package kafka_middleware

import (
	"context"
	"errors"
	"testing"

	"portcall/pkg/kafka"
	"portcall/pkg/logger"
	"portcall/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsProducerMiddleware(t *testing.T) {
	m := metrics.New()
	mw := MetricsProducerMiddleware(m)
	msg := kafka.Message{Topic: "berth.assigned", Key: "North-1"}

	_ = mw(context.Background(), msg, func(context.Context, kafka.Message) error { return nil })
	_ = mw(context.Background(), msg, func(context.Context, kafka.Message) error { return errors.New("broker down") })

	assert.Equal(t, float64(1), testutil.ToFloat64(m.KafkaMessagesTotal.WithLabelValues("produce", "berth.assigned", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.KafkaMessagesTotal.WithLabelValues("produce", "berth.assigned", "error")))
}

func TestMetricsConsumerMiddleware(t *testing.T) {
	m := metrics.New()
	mw := MetricsConsumerMiddleware(m)

	err := mw(context.Background(), kafka.Message{Topic: "vessel-visit.requested"}, func(context.Context, kafka.Message) error { return nil })

	assert.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.KafkaMessagesTotal.WithLabelValues("consume", "vessel-visit.requested", "ok")))
}

func TestLoggingMiddleware_PassesErrorThrough(t *testing.T) {
	want := errors.New("boom")

	got := LoggingProducerMiddleware(logger.Discard())(context.Background(), kafka.Message{}, func(context.Context, kafka.Message) error { return want })
	assert.ErrorIs(t, got, want)

	got = LoggingConsumerMiddleware(logger.Discard())(context.Background(), kafka.Message{}, func(context.Context, kafka.Message) error { return want })
	assert.ErrorIs(t, got, want)
}
