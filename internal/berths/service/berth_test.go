package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "portcall/pkg/errors"
	"portcall/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBerthService_Create(t *testing.T) {
	f := newFixture(t, nil)
	b := newBerth("  North   Quay 1 ", " Container ", 300, 15)
	b.BookedPeriods = map[string]model.Period{"GHOST": {Start: ts(9, 0), End: ts(10, 0)}}
	b.Version = 42

	require.NoError(t, f.berths.Create(context.Background(), b))

	stored := f.stored(t, "North Quay 1")
	assert.Equal(t, "Container", stored.CargoCategory)
	assert.Empty(t, stored.BookedPeriods, "booked periods are never accepted from callers")
	assert.Equal(t, int64(0), stored.Version)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestBerthService_CreateErrors(t *testing.T) {
	tests := []struct {
		name     string
		berth    *model.Berth
		setup    func(t *testing.T, f *fixture)
		wantCode string
	}{
		{
			name:     "duplicate name",
			berth:    newBerth("B1", "Container", 300, 15),
			setup:    func(t *testing.T, f *fixture) { f.seed(t, newBerth("B1", "Bulk", 100, 5)) },
			wantCode: apperrors.CodeConflict,
		},
		{
			name:     "zero max length",
			berth:    newBerth("B1", "Container", 0, 15),
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "name with illegal characters",
			berth:    newBerth("B1/$", "Container", 300, 15),
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "blank category",
			berth:    newBerth("B1", "   ", 300, 15),
			wantCode: apperrors.CodeValidation,
		},
		{
			name:  "store failure",
			berth: newBerth("B1", "Container", 300, 15),
			setup: func(t *testing.T, f *fixture) {
				f.repo.createFunc = func(ctx context.Context, b *model.Berth) error {
					return errors.New("connection reset")
				}
			},
			wantCode: apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			if tt.setup != nil {
				tt.setup(t, f)
			}

			err := f.berths.Create(context.Background(), tt.berth)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.AsAppError(err).Code)
		})
	}
}

func TestBerthService_GetByName(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, newBerth("B1", "Container", 300, 15))

	got, err := f.berths.GetByName(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.MaxLength)

	_, err = f.berths.GetByName(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)

	_, err = f.berths.GetByName(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}

func TestBerthService_GetAll(t *testing.T) {
	f := newFixture(t, nil)
	for i := 5; i >= 1; i-- {
		f.seed(t, newBerth(fmt.Sprintf("B%d", i), "Container", 300, 15))
	}

	page, total, err := f.berths.GetAll(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, "B2", page[0].Name)
	assert.Equal(t, "B3", page[1].Name)

	page, total, err = f.berths.GetAll(context.Background(), 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, page)
}

func TestBerthService_GetAllErrors(t *testing.T) {
	t.Run("count fails", func(t *testing.T) {
		f := newFixture(t, nil)
		f.repo.countFunc = func(ctx context.Context) (int64, error) {
			return 0, errors.New("boom")
		}

		_, _, err := f.berths.GetAll(context.Background(), 10, 0)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInternal, apperrors.AsAppError(err).Code)
	})

	t.Run("find fails", func(t *testing.T) {
		f := newFixture(t, nil)
		f.repo.findAllFunc = func(ctx context.Context, limit int, offset int64) ([]*model.Berth, error) {
			return nil, errors.New("boom")
		}

		_, _, err := f.berths.GetAll(context.Background(), 10, 0)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInternal, apperrors.AsAppError(err).Code)
	})
}

func TestBerthService_Schedule(t *testing.T) {
	f := newFixture(t, nil)
	b := newBerth("B1", "Container", 300, 15)
	b.BookedPeriods = map[string]model.Period{
		"V3": {Start: ts(14, 0), End: ts(15, 0)},
		"V1": {Start: ts(8, 0), End: ts(9, 0)},
		"V2": {Start: ts(10, 0), End: ts(12, 0)},
	}
	f.seed(t, b)

	entries, err := f.berths.Schedule(context.Background(), "B1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"V1", "V2", "V3"}, []string{entries[0].VesselNumber, entries[1].VesselNumber, entries[2].VesselNumber})

	_, err = f.berths.Schedule(context.Background(), "nope")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}
