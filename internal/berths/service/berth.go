package service

import (
	"context"
	"errors"
	"sync"

	bertherrors "portcall/internal/berths/errors"
	"portcall/internal/berths/repository"
	"portcall/internal/berths/validator"
	"portcall/pkg/config"
	apperrors "portcall/pkg/errors"
	"portcall/pkg/model"
	"portcall/pkg/sanitizer"
)

// BerthService administers the berth catalog. Booked periods are owned by
// the resolver and never written here.
type BerthService interface {
	Create(ctx context.Context, berth *model.Berth) error
	GetByName(ctx context.Context, name string) (*model.Berth, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Berth, int64, error)
	Schedule(ctx context.Context, name string) ([]model.ScheduleEntry, error)
}

type berthService struct {
	repo      repository.BerthRepository
	validator *validator.BerthValidator
	cfg       *config.Config
}

func NewBerthService(repo repository.BerthRepository, validator *validator.BerthValidator, cfg *config.Config) BerthService {
	return &berthService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *berthService) Create(ctx context.Context, berth *model.Berth) error {
	berth.Name = sanitizer.NormalizeBerthName(berth.Name)
	berth.CargoCategory = sanitizer.NormalizeCargoCategory(berth.CargoCategory)
	berth.BookedPeriods = map[string]model.Period{}
	berth.Version = 0

	if err := s.validator.ValidateBerth(berth); err != nil {
		s.cfg.Log.Warn("Berth validation failed", "name", berth.Name, "error", err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation("Invalid berth", verrs.Details())
		}
		return apperrors.Validation("Invalid berth", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, berth); err != nil {
		if errors.Is(err, bertherrors.ErrDuplicateName) {
			return apperrors.Conflict("Berth " + berth.Name + " already exists").
				WithDetails(map[string]any{"name": berth.Name})
		}
		s.cfg.Log.Error("Failed to create berth", "name", berth.Name, "error", err)
		return apperrors.Internal("Failed to create berth", err)
	}

	s.cfg.Log.Info("Berth created successfully",
		"name", berth.Name,
		"cargo_category", berth.CargoCategory,
		"max_length", berth.MaxLength,
		"max_depth", berth.MaxDepth,
	)
	return nil
}

func (s *berthService) GetByName(ctx context.Context, name string) (*model.Berth, error) {
	if name == "" {
		return nil, apperrors.InvalidInput("Berth name cannot be empty")
	}

	berth, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, bertherrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Berth", name)
		}
		return nil, apperrors.Internal("Failed to retrieve berth", err)
	}
	return berth, nil
}

func (s *berthService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Berth, int64, error) {
	var count int64
	var berths []*model.Berth
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count berths", "error", errCount)
			errCount = apperrors.Internal("Failed to count berths", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		berths, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list berths", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve berths", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return berths, count, nil
}

func (s *berthService) Schedule(ctx context.Context, name string) ([]model.ScheduleEntry, error) {
	berth, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return berth.Schedule(), nil
}
