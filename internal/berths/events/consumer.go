package events

import (
	"context"

	"portcall/internal/berths/service"
	apperrors "portcall/pkg/errors"
	"portcall/pkg/kafka"
	"portcall/pkg/logger"
	"portcall/pkg/model"
)

const EventVisitRequested = "vessel-visit.requested"

// VisitConsumer resolves vessel visit requests read from Kafka.
type VisitConsumer struct {
	resolver service.ResolverService
	log      *logger.Logger
}

func NewVisitConsumer(resolver service.ResolverService, log *logger.Logger) *VisitConsumer {
	return &VisitConsumer{
		resolver: resolver,
		log:      log,
	}
}

// Handle is a kafka.MessageHandler. Requests that can never succeed are
// permanent errors and go straight to the DLQ; infrastructure failures are
// transient and retried.
func (c *VisitConsumer) Handle(ctx context.Context, msg kafka.Message) error {
	var req model.VesselVisitRequest
	if err := msg.DecodeValue(&req); err != nil {
		return kafka.NewPermanentError("decode vessel visit request", err)
	}

	outcome, err := c.resolver.Resolve(ctx, &req)
	if err != nil {
		appErr := apperrors.AsAppError(err)
		switch appErr.Code {
		case apperrors.CodeInternal, apperrors.CodeTimeout, apperrors.CodeUnavailable, apperrors.CodeConflict:
			return kafka.NewTransientError("resolve vessel visit", err)
		default:
			return kafka.NewPermanentError("resolve vessel visit", err)
		}
	}

	if !outcome.Success {
		c.log.Info("Vessel visit request left unassigned",
			"vessel_number", req.VesselNumber,
			"cargo_category", req.CargoCategory,
			"event_id", msg.GetEventID(),
		)
		return nil
	}

	c.log.Info("Vessel visit request resolved",
		"vessel_number", req.VesselNumber,
		"berth", outcome.AssignedBerth,
		"event_id", msg.GetEventID(),
	)
	return nil
}
