package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portcall/pkg/errors"
	"portcall/pkg/kafka"
	"portcall/pkg/logger"
	"portcall/pkg/model"
)

type fakeProducer struct {
	mu       sync.Mutex
	err      error
	calls    int
	messages []kafka.Message
}

func (p *fakeProducer) Publish(_ context.Context, msg kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func assignedEvent() *model.BerthAssignedEvent {
	start := time.Date(2024, 10, 8, 12, 0, 0, 0, time.UTC)
	return &model.BerthAssignedEvent{
		VesselNumber:  "V2",
		Berth:         "B1",
		CargoCategory: "Container",
		RequestedETA:  start.Add(-2 * time.Hour),
		RequestedETD:  start.Add(-90 * time.Minute),
		ReservedStart: start,
		ReservedEnd:   start.Add(30 * time.Minute),
		Shifts:        8,
	}
}

func TestPublisher_PublishAssigned(t *testing.T) {
	producer := &fakeProducer{}
	p := newPublisher(producer, 3, time.Minute, logger.Discard())

	p.PublishAssigned(context.Background(), assignedEvent())

	require.Len(t, producer.messages, 1)
	msg := producer.messages[0]
	assert.Equal(t, "B1", msg.Key)
	assert.Equal(t, EventBerthAssigned, msg.GetEventType())
	assert.Equal(t, SchemaVersion, msg.Headers[kafka.HeaderSchemaVersion])
	assert.Equal(t, "V2", msg.GetCorrelationID())
	assert.NotEmpty(t, msg.GetEventID())

	var got model.BerthAssignedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "V2", got.VesselNumber)
	assert.Equal(t, 8, got.Shifts)
	assert.True(t, got.ReservedStart.Equal(assignedEvent().ReservedStart))
}

func TestPublisher_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	producer := &fakeProducer{err: errors.New("connection refused")}
	p := newPublisher(producer, 2, time.Minute, logger.Discard())

	for i := 0; i < 5; i++ {
		p.PublishAssigned(context.Background(), assignedEvent())
	}

	assert.Equal(t, 2, producer.calls, "open breaker must short-circuit the producer")
	assert.Equal(t, gobreaker.StateOpen, p.State())
}

func TestPublisher_BreakerRecovers(t *testing.T) {
	producer := &fakeProducer{err: errors.New("connection refused")}
	p := newPublisher(producer, 1, 50*time.Millisecond, logger.Discard())

	p.PublishAssigned(context.Background(), assignedEvent())
	require.Equal(t, gobreaker.StateOpen, p.State())

	time.Sleep(80 * time.Millisecond)
	producer.mu.Lock()
	producer.err = nil
	producer.mu.Unlock()

	p.PublishAssigned(context.Background(), assignedEvent())
	assert.Equal(t, gobreaker.StateClosed, p.State())
	assert.Len(t, producer.messages, 1)
}

func TestNoopPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		NoopPublisher{}.PublishAssigned(context.Background(), assignedEvent())
	})
}

type mockResolver struct {
	resolveFunc func(ctx context.Context, req *model.VesselVisitRequest) (*model.ReservationOutcome, error)
}

func (m *mockResolver) Resolve(ctx context.Context, req *model.VesselVisitRequest) (*model.ReservationOutcome, error) {
	return m.resolveFunc(ctx, req)
}

func visitMessage(t *testing.T, value any) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().WithKey("V1").WithValue(value).WithEventType(EventVisitRequested).Build()
	require.NoError(t, err)
	return msg
}

func TestVisitConsumer_Handle(t *testing.T) {
	eta := time.Date(2024, 10, 8, 9, 0, 0, 0, time.UTC)
	req := model.VesselVisitRequest{
		VesselNumber:  "V1",
		LengthOverall: 250,
		Draft:         10,
		CargoCategory: "Container",
		ETA:           eta,
		ETD:           eta.Add(2 * time.Hour),
	}

	tests := []struct {
		name      string
		msg       func(t *testing.T) kafka.Message
		outcome   *model.ReservationOutcome
		err       error
		wantErr   bool
		wantClass kafka.ErrorType
	}{
		{
			name:    "assigned",
			msg:     func(t *testing.T) kafka.Message { return visitMessage(t, req) },
			outcome: &model.ReservationOutcome{Success: true, AssignedBerth: "B1"},
		},
		{
			name:    "unassigned is not an error",
			msg:     func(t *testing.T) kafka.Message { return visitMessage(t, req) },
			outcome: &model.ReservationOutcome{Success: false},
		},
		{
			name: "undecodable payload",
			msg: func(t *testing.T) kafka.Message {
				return kafka.Message{Key: "V1", Value: []byte("{not json"), Headers: map[string]string{}}
			},
			wantErr:   true,
			wantClass: kafka.ErrorTypePermanent,
		},
		{
			name:      "validation failure",
			msg:       func(t *testing.T) kafka.Message { return visitMessage(t, req) },
			err:       apperrors.Validation("Invalid vessel visit request", nil),
			wantErr:   true,
			wantClass: kafka.ErrorTypePermanent,
		},
		{
			name:      "search exhausted",
			msg:       func(t *testing.T) kafka.Message { return visitMessage(t, req) },
			err:       apperrors.SearchExhausted("No berth is free within the search horizon"),
			wantErr:   true,
			wantClass: kafka.ErrorTypePermanent,
		},
		{
			name:      "store failure",
			msg:       func(t *testing.T) kafka.Message { return visitMessage(t, req) },
			err:       apperrors.Internal("Failed to resolve berth", errors.New("socket closed")),
			wantErr:   true,
			wantClass: kafka.ErrorTypeTransient,
		},
		{
			name:      "repeated conflicts",
			msg:       func(t *testing.T) kafka.Message { return visitMessage(t, req) },
			err:       apperrors.Conflict("Berth availability kept changing, please retry"),
			wantErr:   true,
			wantClass: kafka.ErrorTypeTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received *model.VesselVisitRequest
			c := NewVisitConsumer(&mockResolver{resolveFunc: func(ctx context.Context, r *model.VesselVisitRequest) (*model.ReservationOutcome, error) {
				received = r
				return tt.outcome, tt.err
			}}, logger.Discard())

			err := c.Handle(context.Background(), tt.msg(t))
			if !tt.wantErr {
				require.NoError(t, err)
				require.NotNil(t, received)
				assert.Equal(t, "V1", received.VesselNumber)
				assert.True(t, received.ETA.Equal(eta))
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantClass, kafka.ClassifyError(err))
		})
	}
}
