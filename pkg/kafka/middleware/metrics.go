package kafka_middleware

import (
	"context"
	"time"

	"portcall/pkg/kafka"
	"portcall/pkg/metrics"
)

const (
	directionProduce = "produce"
	directionConsume = "consume"
)

func MetricsProducerMiddleware(m *metrics.Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		return observe(m, directionProduce, msg.Topic, func() error { return next(ctx, msg) })
	}
}

func MetricsConsumerMiddleware(m *metrics.Metrics) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		return observe(m, directionConsume, msg.Topic, func() error { return next(ctx, msg) })
	}
}

func observe(m *metrics.Metrics, direction, topic string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"
	if err != nil {
		status = "error"
	}
	m.KafkaMessagesTotal.WithLabelValues(direction, topic, status).Inc()
	m.KafkaDuration.WithLabelValues(direction, topic).Observe(time.Since(start).Seconds())
	return err
}
