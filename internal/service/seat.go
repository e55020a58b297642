package service

import (
	"context"
	"errors"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

// SeatStore is the persistence surface the seat service needs.
type SeatStore interface {
	Create(ctx context.Context, s *model.Seat) error
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
	List(ctx context.Context) ([]model.Seat, error)
	ListByAuditorium(ctx context.Context, auditoriumID uint64) ([]model.Seat, error)
	ExistsAtPosition(ctx context.Context, auditoriumID uint64, row, number uint32, excludeID uint64) (bool, error)
	UpdatePosition(ctx context.Context, id uint64, row, number uint32) error
	HasTickets(ctx context.Context, id uint64) (bool, error)
	Delete(ctx context.Context, id uint64) error
}

// SeatService validates and executes seat operations. Seats are mostly
// grid-generated; this service covers manual layout adjustments.
type SeatService struct {
	store       SeatStore
	auditoriums AuditoriumGetter
	msgs        *domain.Catalog
}

// NewSeatService constructs a SeatService.
func NewSeatService(store SeatStore, auditoriums AuditoriumGetter, msgs *domain.Catalog) *SeatService {
	return &SeatService{store: store, auditoriums: auditoriums, msgs: msgs}
}

// GetAll returns every seat.
func (s *SeatService) GetAll(ctx context.Context) ([]model.Seat, error) {
	return s.store.List(ctx)
}

// GetByID wraps a single seat, or a not-found envelope.
func (s *SeatService) GetByID(ctx context.Context, id uint64) (domain.Result[model.Seat], error) {
	seat, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return domain.NotFound[model.Seat](s.msgs.Get(domain.MsgSeatNotFound)), nil
		}
		return domain.Result[model.Seat]{}, err
	}
	return domain.OK(*seat), nil
}

// GetByAuditorium returns all seats of one auditorium, or a not-found
// envelope when the auditorium does not exist.
func (s *SeatService) GetByAuditorium(ctx context.Context, auditoriumID uint64) (domain.Result[[]model.Seat], error) {
	if _, err := s.auditoriums.GetByID(ctx, auditoriumID); err != nil {
		if errors.Is(err, repository.ErrAuditoriumNotFound) {
			return domain.NotFound[[]model.Seat](s.msgs.Get(domain.MsgAuditoriumNotFound)), nil
		}
		return domain.Result[[]model.Seat]{}, err
	}
	items, err := s.store.ListByAuditorium(ctx, auditoriumID)
	if err != nil {
		return domain.Result[[]model.Seat]{}, err
	}
	return domain.OK(items), nil
}

// Create adds a single seat to an existing auditorium. The position must
// be positive and free within the auditorium.
func (s *SeatService) Create(ctx context.Context, auditoriumID uint64, row, number uint32) (domain.Result[model.Seat], error) {
	if row < 1 || number < 1 {
		return domain.Invalid[model.Seat](s.msgs.Get(domain.MsgSeatPositionRange)), nil
	}
	if _, err := s.auditoriums.GetByID(ctx, auditoriumID); err != nil {
		if errors.Is(err, repository.ErrAuditoriumNotFound) {
			return domain.NotFound[model.Seat](s.msgs.Get(domain.MsgAuditoriumNotFound)), nil
		}
		return domain.Result[model.Seat]{}, err
	}
	taken, err := s.store.ExistsAtPosition(ctx, auditoriumID, row, number, 0)
	if err != nil {
		return domain.Result[model.Seat]{}, err
	}
	if taken {
		return domain.Conflict[model.Seat](s.msgs.Get(domain.MsgSeatTaken)), nil
	}
	seat := &model.Seat{AuditoriumID: auditoriumID, Row: row, Number: number}
	if err := s.store.Create(ctx, seat); err != nil {
		return domain.Result[model.Seat]{}, err
	}
	return domain.OK(*seat), nil
}

// Update moves a seat to a new position within its auditorium.
func (s *SeatService) Update(ctx context.Context, id uint64, row, number uint32) (domain.Result[model.Seat], error) {
	if row < 1 || number < 1 {
		return domain.Invalid[model.Seat](s.msgs.Get(domain.MsgSeatPositionRange)), nil
	}
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return domain.NotFound[model.Seat](s.msgs.Get(domain.MsgSeatNotFound)), nil
		}
		return domain.Result[model.Seat]{}, err
	}
	taken, err := s.store.ExistsAtPosition(ctx, existing.AuditoriumID, row, number, id)
	if err != nil {
		return domain.Result[model.Seat]{}, err
	}
	if taken {
		return domain.Conflict[model.Seat](s.msgs.Get(domain.MsgSeatTaken)), nil
	}
	if err := s.store.UpdatePosition(ctx, id, row, number); err != nil {
		return domain.Result[model.Seat]{}, err
	}
	existing.Row = row
	existing.Number = number
	return domain.OK(*existing), nil
}

// Delete removes a seat unless a ticket was ever sold for it.
func (s *SeatService) Delete(ctx context.Context, id uint64) (domain.Result[model.Seat], error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return domain.NotFound[model.Seat](s.msgs.Get(domain.MsgSeatNotFound)), nil
		}
		return domain.Result[model.Seat]{}, err
	}
	sold, err := s.store.HasTickets(ctx, id)
	if err != nil {
		return domain.Result[model.Seat]{}, err
	}
	if sold {
		return domain.Conflict[model.Seat](s.msgs.Get(domain.MsgSeatHasTickets)), nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return domain.Result[model.Seat]{}, err
	}
	return domain.OK(*existing), nil
}
