package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

func movieExists(id uint64) movieGetterFunc {
	return func(_ context.Context, got uint64) (*model.Movie, error) {
		if got == id {
			return &model.Movie{ID: id, Title: "Heat"}, nil
		}
		return nil, repository.ErrMovieNotFound
	}
}

func auditoriumExists(id uint64) auditoriumGetterFunc {
	return func(_ context.Context, got uint64) (*model.Auditorium, error) {
		if got == id {
			return &model.Auditorium{ID: id, CinemaID: 1, Name: "Screen 1"}, nil
		}
		return nil, repository.ErrAuditoriumNotFound
	}
}

func newProjectionServiceAt(store *memProjectionStore, now time.Time) *ProjectionService {
	svc := NewProjectionService(store, movieExists(1), auditoriumExists(1), domain.DefaultCatalog())
	svc.now = func() time.Time { return now }
	return svc
}

func TestProjectionCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newMemProjectionStore()
	svc := newProjectionServiceAt(store, now)

	res, err := svc.Create(ctx, ProjectionInput{MovieID: 1, AuditoriumID: 1, StartsAt: now.Add(2 * time.Hour)})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	assert.NotZero(t, res.Model().ID)
	assert.Equal(t, now.Add(2*time.Hour), res.Model().StartsAt)
}

func TestProjectionPastTimeFailsBeforeStoreAccess(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newMemProjectionStore()
	svc := newProjectionServiceAt(store, now)

	res, err := svc.Create(ctx, ProjectionInput{MovieID: 1, AuditoriumID: 1, StartsAt: now.Add(-time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())
	assert.False(t, store.touched)
}

func TestProjectionSlotConflict(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newMemProjectionStore()
	svc := newProjectionServiceAt(store, now)
	at := now.Add(3 * time.Hour)

	res, err := svc.Create(ctx, ProjectionInput{MovieID: 1, AuditoriumID: 1, StartsAt: at})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())

	res, err = svc.Create(ctx, ProjectionInput{MovieID: 1, AuditoriumID: 1, StartsAt: at})
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())
}

func TestProjectionCreateMissingReferences(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newProjectionServiceAt(newMemProjectionStore(), now)
	at := now.Add(time.Hour)

	res, err := svc.Create(ctx, ProjectionInput{MovieID: 42, AuditoriumID: 1, StartsAt: at})
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, res.Kind())

	res, err = svc.Create(ctx, ProjectionInput{MovieID: 1, AuditoriumID: 42, StartsAt: at})
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, res.Kind())
}

func TestProjectionDeleteGuardedByTickets(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newMemProjectionStore()
	svc := newProjectionServiceAt(store, now)

	created, err := svc.Create(ctx, ProjectionInput{MovieID: 1, AuditoriumID: 1, StartsAt: now.Add(time.Hour)})
	require.NoError(t, err)
	id := created.Model().ID
	store.tickets[id] = true

	res, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())

	store.tickets[id] = false
	res, err = svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())
}

func TestProjectionUpdateSkipsOwnSlot(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newMemProjectionStore()
	svc := newProjectionServiceAt(store, now)
	at := now.Add(time.Hour)

	created, err := svc.Create(ctx, ProjectionInput{MovieID: 1, AuditoriumID: 1, StartsAt: at})
	require.NoError(t, err)

	// Rescheduling to its own time must not collide with itself.
	res, err := svc.Update(ctx, created.Model().ID, ProjectionInput{MovieID: 1, AuditoriumID: 1, StartsAt: at})
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())
}
