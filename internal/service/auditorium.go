package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

// Auditorium layout bounds. The seat grid is generated at creation, so
// both dimensions are capped to keep a single auditorium at a sane size.
const (
	maxAuditoriumNameLen = 50
	maxSeatGridDim       = 20
)

// AuditoriumStore is the persistence surface the auditorium service needs.
type AuditoriumStore interface {
	Create(ctx context.Context, a *model.Auditorium) error
	GetByID(ctx context.Context, id uint64) (*model.Auditorium, error)
	List(ctx context.Context) ([]model.Auditorium, error)
	ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Auditorium, error)
	ExistsByCinemaAndName(ctx context.Context, cinemaID uint64, name string) (bool, error)
	UpdateName(ctx context.Context, id uint64, name string) error
	HasSoldTickets(ctx context.Context, id uint64) (bool, error)
	Delete(ctx context.Context, id uint64) error
}

// CreateAuditoriumInput carries the creation payload.
type CreateAuditoriumInput struct {
	CinemaID    uint64
	Name        string
	SeatRows    uint32
	SeatsPerRow uint32
}

// AuditoriumService validates and executes auditorium operations.
type AuditoriumService struct {
	store   AuditoriumStore
	cinemas CinemaGetter
	msgs    *domain.Catalog
}

// NewAuditoriumService constructs an AuditoriumService.
func NewAuditoriumService(store AuditoriumStore, cinemas CinemaGetter, msgs *domain.Catalog) *AuditoriumService {
	return &AuditoriumService{store: store, cinemas: cinemas, msgs: msgs}
}

// GetAll returns every auditorium.
func (s *AuditoriumService) GetAll(ctx context.Context) ([]model.Auditorium, error) {
	return s.store.List(ctx)
}

// GetByID wraps a single auditorium, or a not-found envelope.
func (s *AuditoriumService) GetByID(ctx context.Context, id uint64) (domain.Result[model.Auditorium], error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAuditoriumNotFound) {
			return domain.NotFound[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumNotFound)), nil
		}
		return domain.Result[model.Auditorium]{}, err
	}
	return domain.OK(*a), nil
}

// GetByCinema returns the auditoriums of one cinema, or a not-found
// envelope when the cinema does not exist.
func (s *AuditoriumService) GetByCinema(ctx context.Context, cinemaID uint64) (domain.Result[[]model.Auditorium], error) {
	if _, err := s.cinemas.GetByID(ctx, cinemaID); err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return domain.NotFound[[]model.Auditorium](s.msgs.Get(domain.MsgCinemaNotFound)), nil
		}
		return domain.Result[[]model.Auditorium]{}, err
	}
	items, err := s.store.ListByCinema(ctx, cinemaID)
	if err != nil {
		return domain.Result[[]model.Auditorium]{}, err
	}
	return domain.OK(items), nil
}

// Create validates and inserts a new auditorium together with its seat
// grid. Rule order: name, cinema existence, per-cinema name uniqueness,
// grid dimensions.
func (s *AuditoriumService) Create(ctx context.Context, in CreateAuditoriumInput) (domain.Result[model.Auditorium], error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Invalid[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumNameRequired)), nil
	}
	if utf8.RuneCountInString(name) > maxAuditoriumNameLen {
		return domain.Invalid[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumNameTooLong)), nil
	}
	if _, err := s.cinemas.GetByID(ctx, in.CinemaID); err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return domain.NotFound[model.Auditorium](s.msgs.Get(domain.MsgCinemaNotFound)), nil
		}
		return domain.Result[model.Auditorium]{}, err
	}
	taken, err := s.store.ExistsByCinemaAndName(ctx, in.CinemaID, name)
	if err != nil {
		return domain.Result[model.Auditorium]{}, err
	}
	if taken {
		return domain.Conflict[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumNameTaken)), nil
	}
	if in.SeatRows < 1 || in.SeatRows > maxSeatGridDim {
		return domain.Invalid[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumRowsRange)), nil
	}
	if in.SeatsPerRow < 1 || in.SeatsPerRow > maxSeatGridDim {
		return domain.Invalid[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumSeatsRange)), nil
	}

	a := &model.Auditorium{
		CinemaID:    in.CinemaID,
		Name:        name,
		SeatRows:    in.SeatRows,
		SeatsPerRow: in.SeatsPerRow,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return domain.Result[model.Auditorium]{}, err
	}
	return domain.OK(*a), nil
}

// Update renames an auditorium after re-running the name rules.
func (s *AuditoriumService) Update(ctx context.Context, id uint64, name string) (domain.Result[model.Auditorium], error) {
	name = strings.TrimSpace(name)
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAuditoriumNotFound) {
			return domain.NotFound[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumNotFound)), nil
		}
		return domain.Result[model.Auditorium]{}, err
	}
	if name == existing.Name {
		return domain.OK(*existing), nil
	}
	if name == "" {
		return domain.Invalid[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumNameRequired)), nil
	}
	if utf8.RuneCountInString(name) > maxAuditoriumNameLen {
		return domain.Invalid[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumNameTooLong)), nil
	}
	taken, err := s.store.ExistsByCinemaAndName(ctx, existing.CinemaID, name)
	if err != nil {
		return domain.Result[model.Auditorium]{}, err
	}
	if taken {
		return domain.Conflict[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumNameTaken)), nil
	}
	if err := s.store.UpdateName(ctx, id, name); err != nil {
		return domain.Result[model.Auditorium]{}, err
	}
	existing.Name = name
	return domain.OK(*existing), nil
}

// Delete removes an auditorium with its seats and projections. The
// delete is rejected while any of its projections has sold tickets.
func (s *AuditoriumService) Delete(ctx context.Context, id uint64) (domain.Result[model.Auditorium], error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAuditoriumNotFound) {
			return domain.NotFound[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumNotFound)), nil
		}
		return domain.Result[model.Auditorium]{}, err
	}
	sold, err := s.store.HasSoldTickets(ctx, id)
	if err != nil {
		return domain.Result[model.Auditorium]{}, err
	}
	if sold {
		return domain.Conflict[model.Auditorium](s.msgs.Get(domain.MsgAuditoriumHasTickets)), nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return domain.Result[model.Auditorium]{}, err
	}
	return domain.OK(*existing), nil
}
