package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

// TicketStore is the persistence surface the ticket service needs.
// Purchase inserts all tickets and the buyer's bonus points in one
// transaction.
type TicketStore interface {
	Purchase(ctx context.Context, userID, projectionID uint64, seatIDs []uint64, priceCents uint32, reference string) ([]model.Ticket, error)
	GetByID(ctx context.Context, id uint64) (*model.Ticket, error)
	List(ctx context.Context) ([]model.Ticket, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error)
	ListByProjection(ctx context.Context, projectionID uint64) ([]model.Ticket, error)
	ExistsForSeat(ctx context.Context, projectionID, seatID uint64) (bool, error)
	Update(ctx context.Context, t *model.Ticket) error
	Delete(ctx context.Context, id uint64) error
}

// PurchaseInput carries a ticket purchase request.
type PurchaseInput struct {
	UserID       uint64
	ProjectionID uint64
	SeatIDs      []uint64
	PriceCents   uint32
}

// Purchase groups the tickets bought in one request under a shared
// reference.
type Purchase struct {
	Reference string         `json:"reference"`
	Tickets   []model.Ticket `json:"tickets"`
}

// TicketService validates and executes ticket operations.
type TicketService struct {
	store       TicketStore
	users       UserGetter
	projections ProjectionGetter
	seats       SeatGetter
	msgs        *domain.Catalog
}

// NewTicketService constructs a TicketService.
func NewTicketService(store TicketStore, users UserGetter, projections ProjectionGetter, seats SeatGetter, msgs *domain.Catalog) *TicketService {
	return &TicketService{
		store:       store,
		users:       users,
		projections: projections,
		seats:       seats,
		msgs:        msgs,
	}
}

// GetAll returns every ticket.
func (s *TicketService) GetAll(ctx context.Context) ([]model.Ticket, error) {
	return s.store.List(ctx)
}

// GetByID wraps a single ticket, or a not-found envelope.
func (s *TicketService) GetByID(ctx context.Context, id uint64) (domain.Result[model.Ticket], error) {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return domain.NotFound[model.Ticket](s.msgs.Get(domain.MsgTicketNotFound)), nil
		}
		return domain.Result[model.Ticket]{}, err
	}
	return domain.OK(*t), nil
}

// GetByUser returns the tickets bought by one user, or a not-found
// envelope when the user does not exist.
func (s *TicketService) GetByUser(ctx context.Context, userID uint64) (domain.Result[[]model.Ticket], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.NotFound[[]model.Ticket](s.msgs.Get(domain.MsgUserNotFound)), nil
		}
		return domain.Result[[]model.Ticket]{}, err
	}
	items, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return domain.Result[[]model.Ticket]{}, err
	}
	return domain.OK(items), nil
}

// GetByProjection returns the tickets sold for one projection.
func (s *TicketService) GetByProjection(ctx context.Context, projectionID uint64) (domain.Result[[]model.Ticket], error) {
	if _, err := s.projections.GetByID(ctx, projectionID); err != nil {
		if errors.Is(err, repository.ErrProjectionNotFound) {
			return domain.NotFound[[]model.Ticket](s.msgs.Get(domain.MsgProjectionNotFound)), nil
		}
		return domain.Result[[]model.Ticket]{}, err
	}
	items, err := s.store.ListByProjection(ctx, projectionID)
	if err != nil {
		return domain.Result[[]model.Ticket]{}, err
	}
	return domain.OK(items), nil
}

// PurchaseTickets validates and books every requested seat for one
// projection. Per-seat rules run in request order: the seat must exist,
// must sit in the projection's auditorium, and must still be free. All
// tickets and the buyer's bonus points are written in one transaction,
// so a failed seat never leaves a partial purchase behind.
func (s *TicketService) PurchaseTickets(ctx context.Context, in PurchaseInput) (domain.Result[Purchase], error) {
	seatIDs := dedupeIDs(in.SeatIDs)
	if len(seatIDs) == 0 {
		return domain.Invalid[Purchase](s.msgs.Get(domain.MsgTicketNoSeats)), nil
	}
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.NotFound[Purchase](s.msgs.Get(domain.MsgUserNotFound)), nil
		}
		return domain.Result[Purchase]{}, err
	}
	proj, err := s.projections.GetByID(ctx, in.ProjectionID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectionNotFound) {
			return domain.NotFound[Purchase](s.msgs.Get(domain.MsgProjectionNotFound)), nil
		}
		return domain.Result[Purchase]{}, err
	}
	for _, seatID := range seatIDs {
		seat, err := s.seats.GetByID(ctx, seatID)
		if err != nil {
			if errors.Is(err, repository.ErrSeatNotFound) {
				return domain.NotFound[Purchase](s.msgs.Get(domain.MsgSeatNotFound)), nil
			}
			return domain.Result[Purchase]{}, err
		}
		if seat.AuditoriumID != proj.AuditoriumID {
			return domain.Invalid[Purchase](s.msgs.Get(domain.MsgTicketSeatMismatch)), nil
		}
		taken, err := s.store.ExistsForSeat(ctx, in.ProjectionID, seatID)
		if err != nil {
			return domain.Result[Purchase]{}, err
		}
		if taken {
			return domain.Conflict[Purchase](s.msgs.Get(domain.MsgTicketSeatTaken)), nil
		}
	}

	reference := uuid.NewString()
	tickets, err := s.store.Purchase(ctx, in.UserID, in.ProjectionID, seatIDs, in.PriceCents, reference)
	if err != nil {
		// A concurrent buyer won the seat between check and insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Conflict[Purchase](s.msgs.Get(domain.MsgTicketSeatTaken)), nil
		}
		return domain.Result[Purchase]{}, err
	}
	return domain.OK(Purchase{Reference: reference, Tickets: tickets}), nil
}

// Update re-seats or re-prices a sold ticket. The new seat runs the same
// rules as a purchase: it must exist, sit in the projection's auditorium
// and be free. Keeping the current seat is allowed, so a pure re-pricing
// does not collide with the ticket itself.
func (s *TicketService) Update(ctx context.Context, id, seatID uint64, priceCents uint32) (domain.Result[model.Ticket], error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return domain.NotFound[model.Ticket](s.msgs.Get(domain.MsgTicketNotFound)), nil
		}
		return domain.Result[model.Ticket]{}, err
	}
	if seatID == existing.SeatID && priceCents == existing.PriceCents {
		return domain.OK(*existing), nil
	}
	seat, err := s.seats.GetByID(ctx, seatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return domain.NotFound[model.Ticket](s.msgs.Get(domain.MsgSeatNotFound)), nil
		}
		return domain.Result[model.Ticket]{}, err
	}
	proj, err := s.projections.GetByID(ctx, existing.ProjectionID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectionNotFound) {
			return domain.NotFound[model.Ticket](s.msgs.Get(domain.MsgProjectionNotFound)), nil
		}
		return domain.Result[model.Ticket]{}, err
	}
	if seat.AuditoriumID != proj.AuditoriumID {
		return domain.Invalid[model.Ticket](s.msgs.Get(domain.MsgTicketSeatMismatch)), nil
	}
	if seatID != existing.SeatID {
		taken, err := s.store.ExistsForSeat(ctx, existing.ProjectionID, seatID)
		if err != nil {
			return domain.Result[model.Ticket]{}, err
		}
		if taken {
			return domain.Conflict[model.Ticket](s.msgs.Get(domain.MsgTicketSeatTaken)), nil
		}
	}
	existing.SeatID = seatID
	existing.PriceCents = priceCents
	if err := s.store.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Conflict[model.Ticket](s.msgs.Get(domain.MsgTicketSeatTaken)), nil
		}
		return domain.Result[model.Ticket]{}, err
	}
	return domain.OK(*existing), nil
}

// Delete voids a ticket and takes back its bonus point.
func (s *TicketService) Delete(ctx context.Context, id uint64) (domain.Result[model.Ticket], error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return domain.NotFound[model.Ticket](s.msgs.Get(domain.MsgTicketNotFound)), nil
		}
		return domain.Result[model.Ticket]{}, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return domain.Result[model.Ticket]{}, err
	}
	return domain.OK(*existing), nil
}

// dedupeIDs drops repeated IDs while keeping first-seen order.
func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
