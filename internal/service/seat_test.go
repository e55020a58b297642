package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

// memSeatStore is an in-memory SeatStore.
type memSeatStore struct {
	seats  map[uint64]model.Seat
	nextID uint64
	sold   map[uint64]bool
}

func newMemSeatStore() *memSeatStore {
	return &memSeatStore{seats: map[uint64]model.Seat{}, sold: map[uint64]bool{}}
}

func (s *memSeatStore) Create(_ context.Context, seat *model.Seat) error {
	s.nextID++
	seat.ID = s.nextID
	s.seats[seat.ID] = *seat
	return nil
}

func (s *memSeatStore) GetByID(_ context.Context, id uint64) (*model.Seat, error) {
	seat, ok := s.seats[id]
	if !ok {
		return nil, repository.ErrSeatNotFound
	}
	return &seat, nil
}

func (s *memSeatStore) List(_ context.Context) ([]model.Seat, error) {
	out := make([]model.Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		out = append(out, seat)
	}
	return out, nil
}

func (s *memSeatStore) ListByAuditorium(_ context.Context, auditoriumID uint64) ([]model.Seat, error) {
	out := []model.Seat{}
	for _, seat := range s.seats {
		if seat.AuditoriumID == auditoriumID {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (s *memSeatStore) ExistsAtPosition(_ context.Context, auditoriumID uint64, row, number uint32, excludeID uint64) (bool, error) {
	for _, seat := range s.seats {
		if seat.ID != excludeID && seat.AuditoriumID == auditoriumID && seat.Row == row && seat.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (s *memSeatStore) UpdatePosition(_ context.Context, id uint64, row, number uint32) error {
	seat, ok := s.seats[id]
	if !ok {
		return repository.ErrSeatNotFound
	}
	seat.Row = row
	seat.Number = number
	s.seats[id] = seat
	return nil
}

func (s *memSeatStore) HasTickets(_ context.Context, id uint64) (bool, error) {
	return s.sold[id], nil
}

func (s *memSeatStore) Delete(_ context.Context, id uint64) error {
	delete(s.seats, id)
	return nil
}

func newSeatService(store *memSeatStore) *SeatService {
	return NewSeatService(store, auditoriumExists(1), domain.DefaultCatalog())
}

func TestSeatCreate(t *testing.T) {
	ctx := context.Background()
	svc := newSeatService(newMemSeatStore())

	res, err := svc.Create(ctx, 1, 2, 5)
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	assert.Equal(t, uint32(2), res.Model().Row)
	assert.Equal(t, uint32(5), res.Model().Number)
}

func TestSeatGetAll(t *testing.T) {
	ctx := context.Background()
	store := newMemSeatStore()
	svc := newSeatService(store)

	for _, pos := range [][2]uint32{{1, 1}, {1, 2}, {2, 1}} {
		res, err := svc.Create(ctx, 1, pos[0], pos[1])
		require.NoError(t, err)
		require.True(t, res.IsSuccessful())
	}

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSeatCreateRejectsBadPosition(t *testing.T) {
	ctx := context.Background()
	svc := newSeatService(newMemSeatStore())

	res, err := svc.Create(ctx, 1, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())

	res, err = svc.Create(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())
}

func TestSeatPositionUniqueWithinAuditorium(t *testing.T) {
	ctx := context.Background()
	svc := newSeatService(newMemSeatStore())

	res, err := svc.Create(ctx, 1, 2, 5)
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())

	res, err = svc.Create(ctx, 1, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())
}

func TestSeatUpdateSkipsOwnPosition(t *testing.T) {
	ctx := context.Background()
	svc := newSeatService(newMemSeatStore())

	created, err := svc.Create(ctx, 1, 2, 5)
	require.NoError(t, err)

	// Moving a seat onto its own position must not collide with itself.
	res, err := svc.Update(ctx, created.Model().ID, 2, 5)
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())
}

func TestSeatDeleteGuardedByTickets(t *testing.T) {
	ctx := context.Background()
	store := newMemSeatStore()
	svc := newSeatService(store)

	created, err := svc.Create(ctx, 1, 2, 5)
	require.NoError(t, err)
	id := created.Model().ID
	store.sold[id] = true

	res, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())

	store.sold[id] = false
	res, err = svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())
}
