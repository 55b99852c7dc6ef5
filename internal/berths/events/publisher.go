// Package events connects berth assignment to Kafka: it announces stored
// reservations and resolves visit requests arriving on a topic.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"portcall/pkg/kafka"
	kafka_config "portcall/pkg/kafka/config"
	"portcall/pkg/logger"
	"portcall/pkg/model"
)

const (
	EventBerthAssigned = "berth.assigned"
	SchemaVersion      = "1"
	Source             = "portcall-berths"

	publishTimeout = 5 * time.Second
)

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// Publisher sends berth.assigned events through a circuit breaker.
type Publisher struct {
	producer messagePublisher
	breaker  *gobreaker.CircuitBreaker
	log      *logger.Logger
}

func NewPublisher(producer *kafka.Producer, cfg *kafka_config.Config, log *logger.Logger) *Publisher {
	return newPublisher(producer, cfg.BreakerMaxFailures, cfg.BreakerOpenTimeout, log)
}

func newPublisher(producer messagePublisher, maxFailures uint32, openTimeout time.Duration, log *logger.Logger) *Publisher {
	if maxFailures == 0 {
		maxFailures = 1
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "berth-assigned-publisher",
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Publisher{
		producer: producer,
		breaker:  breaker,
		log:      log,
	}
}

// PublishAssigned never fails the caller; errors are logged.
func (p *Publisher) PublishAssigned(ctx context.Context, event *model.BerthAssignedEvent) {
	msg, err := kafka.NewMessage().
		WithKey(event.Berth).
		WithValue(event).
		WithEventType(EventBerthAssigned).
		WithCorrelationID(event.VesselNumber).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		Build()
	if err != nil {
		p.log.Error("Failed to build berth assigned event", "berth", event.Berth, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.producer.Publish(ctx, msg)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			p.log.Warn("Skipping berth assigned event, circuit open",
				"berth", event.Berth,
				"vessel_number", event.VesselNumber,
			)
			return
		}
		p.log.Error("Failed to publish berth assigned event",
			"berth", event.Berth,
			"vessel_number", event.VesselNumber,
			"event_id", msg.GetEventID(),
			"error", err,
		)
		return
	}

	p.log.Debug("Published berth assigned event",
		"berth", event.Berth,
		"vessel_number", event.VesselNumber,
		"event_id", msg.GetEventID(),
	)
}

// State exposes the breaker state for diagnostics.
func (p *Publisher) State() gobreaker.State {
	return p.breaker.State()
}

// NoopPublisher is used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishAssigned(context.Context, *model.BerthAssignedEvent) {}
