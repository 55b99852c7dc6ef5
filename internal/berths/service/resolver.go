package service

import (
	"context"
	"errors"
	"time"

	bertherrors "portcall/internal/berths/errors"
	"portcall/internal/berths/repository"
	"portcall/internal/berths/validator"
	"portcall/pkg/config"
	apperrors "portcall/pkg/errors"
	"portcall/pkg/metrics"
	"portcall/pkg/model"
	"portcall/pkg/sanitizer"
)

// ResolverService assigns a vessel visit to a compatible berth, moving the
// requested window forward in fixed steps until some berth is free.
type ResolverService interface {
	Resolve(ctx context.Context, req *model.VesselVisitRequest) (*model.ReservationOutcome, error)
}

// AssignmentPublisher is notified after a reservation is stored.
type AssignmentPublisher interface {
	PublishAssigned(ctx context.Context, event *model.BerthAssignedEvent)
}

type resolverService struct {
	repo      repository.BerthRepository
	validator *validator.BerthValidator
	publisher AssignmentPublisher
	metrics   *metrics.Metrics
	cfg       *config.Config

	step         time.Duration
	maxShifts    int
	maxConflicts int
	now          func() time.Time
}

func NewResolverService(
	repo repository.BerthRepository,
	validator *validator.BerthValidator,
	publisher AssignmentPublisher,
	m *metrics.Metrics,
	cfg *config.Config,
) ResolverService {
	return &resolverService{
		repo:         repo,
		validator:    validator,
		publisher:    publisher,
		metrics:      m,
		cfg:          cfg,
		step:         cfg.BerthShiftStep,
		maxShifts:    cfg.MaxWindowShifts(),
		maxConflicts: cfg.BerthMaxConflictRetries,
		now:          time.Now,
	}
}

// reservation is what a single resolution pass stored.
type reservation struct {
	berth  string
	start  time.Time
	end    time.Time
	shifts int
}

func (s *resolverService) Resolve(ctx context.Context, req *model.VesselVisitRequest) (*model.ReservationOutcome, error) {
	started := s.now()
	defer func() {
		s.metrics.ResolveDuration.Observe(s.now().Sub(started).Seconds())
	}()

	req.VesselNumber = sanitizer.NormalizeVesselNumber(req.VesselNumber)
	req.CargoCategory = sanitizer.NormalizeCargoCategory(req.CargoCategory)
	if err := s.validator.ValidateVisitRequest(req); err != nil {
		s.cfg.Log.Warn("Vessel visit validation failed",
			"vessel_number", req.VesselNumber,
			"error", err,
		)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("Invalid vessel visit request", verrs.Details())
		}
		return nil, apperrors.Validation("Invalid vessel visit request", map[string]any{"error": err.Error()})
	}

	for attempt := 0; attempt <= s.maxConflicts; attempt++ {
		res, err := s.resolveOnce(ctx, req)

		switch {
		case err == nil && res == nil:
			s.metrics.ObserveResolution(metrics.ResultNoCandidate, 0)
			s.cfg.Log.Info("No compatible berth for vessel visit",
				"vessel_number", req.VesselNumber,
				"cargo_category", req.CargoCategory,
				"loa", req.LengthOverall,
				"draft", req.Draft,
			)
			return model.Unassigned(req), nil

		case err == nil:
			s.metrics.ObserveResolution(metrics.ResultAssigned, res.shifts)
			s.cfg.Log.Info("Berth assigned",
				"vessel_number", req.VesselNumber,
				"berth", res.berth,
				"reserved_start", res.start,
				"reserved_end", res.end,
				"shifts", res.shifts,
			)
			s.publish(ctx, req, res)
			return &model.ReservationOutcome{
				Success:       true,
				AssignedBerth: res.berth,
				AdjustedETA:   req.ETA,
				AdjustedETD:   req.ETD,
			}, nil

		case errors.Is(err, bertherrors.ErrVersionConflict):
			s.metrics.VersionConflicts.Inc()
			s.cfg.Log.Warn("Berth changed during commit, restarting resolution",
				"vessel_number", req.VesselNumber,
				"attempt", attempt+1,
			)
			continue

		case errors.Is(err, bertherrors.ErrSearchHorizonExhausted):
			s.metrics.ObserveResolution(metrics.ResultExhausted, 0)
			s.cfg.Log.Warn("Search horizon exhausted",
				"vessel_number", req.VesselNumber,
				"cargo_category", req.CargoCategory,
				"horizon", s.cfg.BerthSearchHorizon,
			)
			return nil, apperrors.SearchExhausted("No berth is free within the search horizon").
				WithDetails(map[string]any{"horizon": s.cfg.BerthSearchHorizon.String()})

		case errors.Is(err, context.DeadlineExceeded):
			s.metrics.ObserveResolution(metrics.ResultError, 0)
			return nil, apperrors.Timeout("Berth resolution timed out")

		default:
			s.metrics.ObserveResolution(metrics.ResultError, 0)
			s.cfg.Log.Error("Berth resolution failed",
				"vessel_number", req.VesselNumber,
				"error", err,
			)
			if apperrors.IsAppError(err) {
				return nil, err
			}
			return nil, apperrors.Internal("Failed to resolve berth", err)
		}
	}

	s.metrics.ObserveResolution(metrics.ResultError, 0)
	s.cfg.Log.Error("Giving up after repeated berth conflicts",
		"vessel_number", req.VesselNumber,
		"retries", s.maxConflicts,
	)
	return nil, apperrors.Conflict("Berth availability kept changing, please retry")
}

// resolveOnce runs one full pass. A nil reservation with a nil error means
// no berth passes the static filter.
func (s *resolverService) resolveOnce(ctx context.Context, req *model.VesselVisitRequest) (*reservation, error) {
	berths, err := s.repo.ListByCargoCategory(ctx, req.CargoCategory)
	if err != nil {
		return nil, err
	}

	candidates := make([]*model.Berth, 0, len(berths))
	for _, b := range berths {
		if b.Fits(req) {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	start, end := req.ETA, req.ETD
	for shift := 0; shift <= s.maxShifts; shift++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var chosen *model.Berth
		for _, b := range candidates {
			if b.IsFree(start, end) {
				chosen = b
			}
		}

		if chosen != nil {
			if err := s.commit(ctx, chosen.Name, req.VesselNumber, start, end); err != nil {
				return nil, err
			}
			return &reservation{berth: chosen.Name, start: start, end: end, shifts: shift}, nil
		}

		start = start.Add(s.step)
		end = end.Add(s.step)
	}

	return nil, bertherrors.ErrSearchHorizonExhausted
}

// commit re-reads the berth inside a transaction, re-checks the window and
// saves with the version it read.
func (s *resolverService) commit(ctx context.Context, name, vessel string, start, end time.Time) error {
	return s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		berth, err := s.repo.FindByName(txCtx, name)
		if err != nil {
			if errors.Is(err, bertherrors.ErrNotFound) {
				return bertherrors.ErrVersionConflict
			}
			return err
		}

		if !berth.IsFree(start, end) {
			return bertherrors.ErrVersionConflict
		}

		berth.BookedPeriods[vessel] = model.Period{Start: start, End: end}
		return s.repo.SaveBerth(txCtx, berth)
	})
}

func (s *resolverService) publish(ctx context.Context, req *model.VesselVisitRequest, res *reservation) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishAssigned(context.WithoutCancel(ctx), &model.BerthAssignedEvent{
		VesselNumber:  req.VesselNumber,
		Berth:         res.berth,
		CargoCategory: req.CargoCategory,
		RequestedETA:  req.ETA,
		RequestedETD:  req.ETD,
		ReservedStart: res.start,
		ReservedEnd:   res.end,
		Shifts:        res.shifts,
		AssignedAt:    s.now().UTC(),
	})
}
