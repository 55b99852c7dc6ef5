package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"portcall/internal/berths/repository"
	"portcall/internal/berths/validator"
	"portcall/pkg/config"
	mongotx "portcall/pkg/db/mongo"
	"portcall/pkg/logger"
	"portcall/pkg/metrics"
	"portcall/pkg/model"
)

// ────────────────────────────────────────────────
// Mock repository: delegates to the in-memory store unless a func is set
// ────────────────────────────────────────────────

type mockBerthRepository struct {
	base repository.BerthRepository

	listByCargoCategoryFunc func(ctx context.Context, category string) ([]*model.Berth, error)
	saveBerthFunc           func(ctx context.Context, berth *model.Berth) error
	findAllFunc             func(ctx context.Context, limit int, offset int64) ([]*model.Berth, error)
	countFunc               func(ctx context.Context) (int64, error)
	createFunc              func(ctx context.Context, berth *model.Berth) error
}

func newMockRepo() *mockBerthRepository {
	return &mockBerthRepository{base: repository.NewMemoryBerthRepository()}
}

func (m *mockBerthRepository) Create(ctx context.Context, berth *model.Berth) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, berth)
	}
	return m.base.Create(ctx, berth)
}

func (m *mockBerthRepository) FindByName(ctx context.Context, name string) (*model.Berth, error) {
	return m.base.FindByName(ctx, name)
}

func (m *mockBerthRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Berth, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return m.base.FindAll(ctx, limit, offset)
}

func (m *mockBerthRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return m.base.Count(ctx)
}

func (m *mockBerthRepository) ListByCargoCategory(ctx context.Context, category string) ([]*model.Berth, error) {
	if m.listByCargoCategoryFunc != nil {
		return m.listByCargoCategoryFunc(ctx, category)
	}
	return m.base.ListByCargoCategory(ctx, category)
}

func (m *mockBerthRepository) SaveBerth(ctx context.Context, berth *model.Berth) error {
	if m.saveBerthFunc != nil {
		return m.saveBerthFunc(ctx, berth)
	}
	return m.base.SaveBerth(ctx, berth)
}

func (m *mockBerthRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return m.base.ExecuteTransaction(ctx, fn)
}

// ────────────────────────────────────────────────
// Recording publisher
// ────────────────────────────────────────────────

type recordingPublisher struct {
	mu     sync.Mutex
	events []*model.BerthAssignedEvent
}

func (p *recordingPublisher) PublishAssigned(_ context.Context, event *model.BerthAssignedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) all() []*model.BerthAssignedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*model.BerthAssignedEvent(nil), p.events...)
}

// ────────────────────────────────────────────────
// Fixtures
// ────────────────────────────────────────────────

func testConfig() *config.Config {
	return &config.Config{
		Log:                     logger.Discard(),
		BerthSearchHorizon:      config.DefaultBerthSearchHorizon,
		BerthShiftStep:          config.DefaultBerthShiftStep,
		BerthMaxConflictRetries: config.DefaultBerthMaxConflictRetries,
	}
}

type fixture struct {
	repo      *mockBerthRepository
	publisher *recordingPublisher
	metrics   *metrics.Metrics
	resolver  ResolverService
	berths    BerthService
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	repo := newMockRepo()
	pub := &recordingPublisher{}
	m := metrics.New()
	v := validator.NewBerthValidator(cfg.Log)
	return &fixture{
		repo:      repo,
		publisher: pub,
		metrics:   m,
		resolver:  NewResolverService(repo, v, pub, m, cfg),
		berths:    NewBerthService(repo, v, cfg),
	}
}

// seed stores a berth directly, bypassing the service so booked periods survive.
func (f *fixture) seed(t *testing.T, b *model.Berth) {
	t.Helper()
	if b.BookedPeriods == nil {
		b.BookedPeriods = map[string]model.Period{}
	}
	if err := f.repo.base.Create(context.Background(), b); err != nil {
		t.Fatalf("seed %s: %v", b.Name, err)
	}
}

func (f *fixture) stored(t *testing.T, name string) *model.Berth {
	t.Helper()
	b, err := f.repo.base.FindByName(context.Background(), name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return b
}

func newBerth(name, category string, maxLength, maxDepth float64) *model.Berth {
	return &model.Berth{
		Name:            name,
		MaxLength:       maxLength,
		MaxDepth:        maxDepth,
		MaxBeam:         50,
		MaxDisplacement: 150000,
		CargoCategory:   category,
	}
}

func ts(hh, mm int) time.Time {
	return time.Date(2024, 10, 8, hh, mm, 0, 0, time.UTC)
}

func visit(vessel, category string, loa, draft float64, eta, etd time.Time) *model.VesselVisitRequest {
	return &model.VesselVisitRequest{
		VesselNumber:  vessel,
		LengthOverall: loa,
		Draft:         draft,
		CargoCategory: category,
		ETA:           eta,
		ETD:           etd,
	}
}
