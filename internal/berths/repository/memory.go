package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	bertherrors "portcall/internal/berths/errors"
	mongotx "portcall/pkg/db/mongo"
	"portcall/pkg/model"
)

// memoryBerthRepository backs STORE_BACKEND=memory and the service tests.
// Records are cloned on the way in and out. Transactions are serialized
// but not rolled back.
type memoryBerthRepository struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	berths map[string]*model.Berth
}

func NewMemoryBerthRepository() BerthRepository {
	return &memoryBerthRepository{
		berths: make(map[string]*model.Berth),
	}
}

func (r *memoryBerthRepository) Create(ctx context.Context, berth *model.Berth) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.berths[berth.Name]; exists {
		return bertherrors.ErrDuplicateName
	}

	now := time.Now().UTC()
	berth.CreatedAt = now
	berth.UpdatedAt = now
	r.berths[berth.Name] = berth.Clone()
	return nil
}

func (r *memoryBerthRepository) FindByName(ctx context.Context, name string) (*model.Berth, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	berth, ok := r.berths[name]
	if !ok {
		return nil, bertherrors.ErrNotFound
	}
	return berth.Clone(), nil
}

func (r *memoryBerthRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Berth, error) {
	all, err := r.sorted(ctx, func(*model.Berth) bool { return true })
	if err != nil {
		return nil, err
	}

	if offset >= int64(len(all)) {
		return []*model.Berth{}, nil
	}
	end := min(int(offset)+limit, len(all))
	return all[offset:end], nil
}

func (r *memoryBerthRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.berths)), nil
}

func (r *memoryBerthRepository) ListByCargoCategory(ctx context.Context, category string) ([]*model.Berth, error) {
	return r.sorted(ctx, func(b *model.Berth) bool { return b.CargoCategory == category })
}

func (r *memoryBerthRepository) sorted(ctx context.Context, keep func(*model.Berth) bool) ([]*model.Berth, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	berths := make([]*model.Berth, 0, len(r.berths))
	for _, b := range r.berths {
		if keep(b) {
			berths = append(berths, b.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(berths, func(i, j int) bool { return berths[i].Name < berths[j].Name })
	return berths, nil
}

func (r *memoryBerthRepository) SaveBerth(ctx context.Context, berth *model.Berth) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.berths[berth.Name]
	if !ok || stored.Version != berth.Version {
		return bertherrors.ErrVersionConflict
	}

	next := berth.Clone()
	next.Version = berth.Version + 1
	next.UpdatedAt = time.Now().UTC()
	r.berths[berth.Name] = next

	berth.Version = next.Version
	berth.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *memoryBerthRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(ctx)
}
