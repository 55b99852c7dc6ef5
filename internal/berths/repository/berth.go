package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bertherrors "portcall/internal/berths/errors"
	"portcall/pkg/config"
	mongotx "portcall/pkg/db/mongo"
	"portcall/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Berths"
)

type BerthRepository interface {
	Create(ctx context.Context, berth *model.Berth) error
	FindByName(ctx context.Context, name string) (*model.Berth, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Berth, error)
	Count(ctx context.Context) (int64, error)
	// ListByCargoCategory returns every berth of the category ordered by name ascending.
	ListByCargoCategory(ctx context.Context, category string) ([]*model.Berth, error)
	// SaveBerth replaces the whole record if its stored version still equals
	// berth.Version, then advances berth.Version. Otherwise ErrVersionConflict.
	SaveBerth(ctx context.Context, berth *model.Berth) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBerthRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBerthRepository(cfg *config.Config) BerthRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBerthRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout bounds ctx unless it is a SessionContext: wrapping one would
// detach the call from its transaction.
func (r *mongoBerthRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBerthRepository) Create(ctx context.Context, berth *model.Berth) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	berth.CreatedAt = now
	berth.UpdatedAt = now
	if berth.BookedPeriods == nil {
		berth.BookedPeriods = map[string]model.Period{}
	}

	if _, err := r.collection.InsertOne(ctx, berth); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bertherrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to create berth: %w", err)
	}
	return nil
}

func (r *mongoBerthRepository) FindByName(ctx context.Context, name string) (*model.Berth, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var berth model.Berth
	err := r.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&berth)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bertherrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find berth: %w", err)
	}

	return normalize(&berth), nil
}

func (r *mongoBerthRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Berth, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoBerthRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count berths: %w", err)
	}
	return count, nil
}

func (r *mongoBerthRepository) ListByCargoCategory(ctx context.Context, category string) ([]*model.Berth, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"cargo_category": category}, opts)
}

func (r *mongoBerthRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Berth, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find berths: %w", err)
	}
	defer cursor.Close(ctx)

	berths := make([]*model.Berth, 0)
	if err = cursor.All(ctx, &berths); err != nil {
		return nil, fmt.Errorf("failed to decode berths: %w", err)
	}
	for _, b := range berths {
		normalize(b)
	}
	return berths, nil
}

func (r *mongoBerthRepository) SaveBerth(ctx context.Context, berth *model.Berth) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	next := berth.Clone()
	next.Version = berth.Version + 1
	next.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	filter := bson.M{"_id": berth.Name, "version": berth.Version}
	result, err := r.collection.ReplaceOne(ctx, filter, next)
	if err != nil {
		return fmt.Errorf("failed to save berth: %w", err)
	}
	if result.MatchedCount == 0 {
		return bertherrors.ErrVersionConflict
	}

	berth.Version = next.Version
	berth.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *mongoBerthRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func normalize(b *model.Berth) *model.Berth {
	if b.BookedPeriods == nil {
		b.BookedPeriods = map[string]model.Period{}
	}
	return b
}
