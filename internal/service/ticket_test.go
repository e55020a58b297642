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

func userExists(id uint64) userGetterFunc {
	return func(_ context.Context, got uint64) (*model.User, error) {
		if got == id {
			return &model.User{ID: id, UserName: "alice", Role: model.RoleUser}, nil
		}
		return nil, repository.ErrUserNotFound
	}
}

func projectionInAuditorium(id, auditoriumID uint64) projectionGetterFunc {
	return func(_ context.Context, got uint64) (*model.Projection, error) {
		if got == id {
			return &model.Projection{ID: id, MovieID: 1, AuditoriumID: auditoriumID}, nil
		}
		return nil, repository.ErrProjectionNotFound
	}
}

// seatsInAuditorium resolves seat IDs 1..count in the given auditorium.
func seatsInAuditorium(auditoriumID uint64, count uint64) seatGetterFunc {
	return func(_ context.Context, id uint64) (*model.Seat, error) {
		if id >= 1 && id <= count {
			return &model.Seat{ID: id, AuditoriumID: auditoriumID, Row: 1, Number: uint32(id)}, nil
		}
		return nil, repository.ErrSeatNotFound
	}
}

func newTicketService(store *memTicketStore) *TicketService {
	return NewTicketService(store, userExists(7), projectionInAuditorium(3, 1), seatsInAuditorium(1, 5), domain.DefaultCatalog())
}

func TestPurchaseTickets(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	svc := newTicketService(store)

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{1, 2, 3}, PriceCents: 1200})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	assert.Len(t, res.Model().Tickets, 3)
	assert.NotEmpty(t, res.Model().Reference)
	for _, tk := range res.Model().Tickets {
		assert.Equal(t, res.Model().Reference, tk.Reference)
		assert.Equal(t, uint32(1200), tk.PriceCents)
	}
	// One bonus point per ticket.
	assert.Equal(t, uint32(3), store.bonus[7])
}

func TestPurchaseRequiresSeats(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	svc := newTicketService(store)

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: nil, PriceCents: 1200})
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())
	assert.Empty(t, store.tickets)
}

func TestPurchaseDeduplicatesSeats(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	svc := newTicketService(store)

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{2, 2, 2}, PriceCents: 1000})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	assert.Len(t, res.Model().Tickets, 1)
	assert.Equal(t, uint32(1), store.bonus[7])
}

func TestPurchaseSeatOutsideProjectionAuditorium(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	// Seats live in auditorium 2, the projection plays in auditorium 1.
	svc := NewTicketService(store, userExists(7), projectionInAuditorium(3, 1), seatsInAuditorium(2, 5), domain.DefaultCatalog())

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{1}, PriceCents: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())
	assert.Empty(t, store.tickets)
}

func TestPurchaseUnknownSeat(t *testing.T) {
	ctx := context.Background()
	svc := newTicketService(newMemTicketStore())

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{99}, PriceCents: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, res.Kind())
}

func TestPurchaseDoubleBooking(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	svc := newTicketService(store)

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{4}, PriceCents: 1000})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())

	// The second request for the same seat must lose.
	res, err = svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{4}, PriceCents: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())
	assert.Len(t, store.tickets, 1)
	assert.Equal(t, uint32(1), store.bonus[7])
}

func TestPurchaseLostConstraintRaceIsConflict(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	store.purchaseErr = repository.ErrDuplicate
	svc := newTicketService(store)

	// A concurrent buyer inserted between the check and the write; the
	// store surfaces the unique-key violation.
	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{1}, PriceCents: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())
}

func TestTicketUpdateReSeatsAndReprices(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	svc := newTicketService(store)

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{1}, PriceCents: 1200})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	id := res.Model().Tickets[0].ID

	updated, err := svc.Update(ctx, id, 2, 900)
	require.NoError(t, err)
	require.True(t, updated.IsSuccessful())
	assert.Equal(t, uint64(2), updated.Model().SeatID)
	assert.Equal(t, uint32(900), updated.Model().PriceCents)
	// Re-seating is not a new purchase; no extra bonus point.
	assert.Equal(t, uint32(1), store.bonus[7])
}

func TestTicketUpdateKeepsOwnSeat(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	svc := newTicketService(store)

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{1}, PriceCents: 1200})
	require.NoError(t, err)
	id := res.Model().Tickets[0].ID

	// Re-pricing on the same seat must not collide with the ticket itself.
	updated, err := svc.Update(ctx, id, 1, 1500)
	require.NoError(t, err)
	require.True(t, updated.IsSuccessful())
	assert.Equal(t, uint32(1500), updated.Model().PriceCents)
}

func TestTicketUpdateToTakenSeatConflicts(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	svc := newTicketService(store)

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{1, 2}, PriceCents: 1200})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	first := res.Model().Tickets[0].ID

	updated, err := svc.Update(ctx, first, 2, 1200)
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, updated.Kind())
}

func TestTicketUpdateSeatOutsideProjectionAuditorium(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	store.nextID = 1
	store.tickets[1] = model.Ticket{ID: 1, UserID: 7, SeatID: 1, ProjectionID: 3, PriceCents: 1000}
	// Seats live in auditorium 2, the projection plays in auditorium 1.
	svc := NewTicketService(store, userExists(7), projectionInAuditorium(3, 1), seatsInAuditorium(2, 5), domain.DefaultCatalog())

	updated, err := svc.Update(ctx, 1, 2, 1000)
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, updated.Kind())
}

func TestTicketUpdateUnknownTicketAndSeat(t *testing.T) {
	ctx := context.Background()
	store := newMemTicketStore()
	svc := newTicketService(store)

	updated, err := svc.Update(ctx, 99, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, updated.Kind())

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 3, SeatIDs: []uint64{1}, PriceCents: 1000})
	require.NoError(t, err)
	updated, err = svc.Update(ctx, res.Model().Tickets[0].ID, 99, 1000)
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, updated.Kind())
}

func TestPurchaseUnknownUserAndProjection(t *testing.T) {
	ctx := context.Background()
	svc := newTicketService(newMemTicketStore())

	res, err := svc.PurchaseTickets(ctx, PurchaseInput{UserID: 99, ProjectionID: 3, SeatIDs: []uint64{1}, PriceCents: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, res.Kind())

	res, err = svc.PurchaseTickets(ctx, PurchaseInput{UserID: 7, ProjectionID: 99, SeatIDs: []uint64{1}, PriceCents: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, res.Kind())
}
