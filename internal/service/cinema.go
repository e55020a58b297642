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

// maxCinemaNameLen bounds the cinema name in characters, matching the
// VARCHAR(255) column width.
const maxCinemaNameLen = 255

// CinemaStore is the persistence surface the cinema service needs.
type CinemaStore interface {
	Create(ctx context.Context, c *model.Cinema) error
	CreateWithAuditorium(ctx context.Context, c *model.Cinema, a *model.Auditorium) error
	GetByID(ctx context.Context, id uint64) (*model.Cinema, error)
	List(ctx context.Context) ([]model.Cinema, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	UpdateName(ctx context.Context, id uint64, name string) error
	HasSoldTickets(ctx context.Context, id uint64) (bool, error)
	Delete(ctx context.Context, id uint64) error
}

// CinemaWithAuditorium is the payload of the composite create: the new
// cinema together with its first auditorium.
type CinemaWithAuditorium struct {
	Cinema     model.Cinema     `json:"cinema"`
	Auditorium model.Auditorium `json:"auditorium"`
}

// CinemaService validates and executes cinema operations.
type CinemaService struct {
	store CinemaStore
	msgs  *domain.Catalog
}

// NewCinemaService constructs a CinemaService.
func NewCinemaService(store CinemaStore, msgs *domain.Catalog) *CinemaService {
	return &CinemaService{store: store, msgs: msgs}
}

// GetAll returns every cinema.
func (s *CinemaService) GetAll(ctx context.Context) ([]model.Cinema, error) {
	return s.store.List(ctx)
}

// GetByID wraps a single cinema, or a not-found envelope.
func (s *CinemaService) GetByID(ctx context.Context, id uint64) (domain.Result[model.Cinema], error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return domain.NotFound[model.Cinema](s.msgs.Get(domain.MsgCinemaNotFound)), nil
		}
		return domain.Result[model.Cinema]{}, err
	}
	return domain.OK(*c), nil
}

// validateCinemaName runs the name rules shared by create and update.
// A zero-value Result means all rules passed.
func (s *CinemaService) validateCinemaName(ctx context.Context, name string) (domain.Result[model.Cinema], error) {
	if name == "" {
		return domain.Invalid[model.Cinema](s.msgs.Get(domain.MsgCinemaNameRequired)), nil
	}
	if utf8.RuneCountInString(name) > maxCinemaNameLen {
		return domain.Invalid[model.Cinema](s.msgs.Get(domain.MsgCinemaNameTooLong)), nil
	}
	taken, err := s.store.ExistsByName(ctx, name)
	if err != nil {
		return domain.Result[model.Cinema]{}, err
	}
	if taken {
		return domain.Conflict[model.Cinema](s.msgs.Get(domain.MsgCinemaNameTaken)), nil
	}
	return domain.Result[model.Cinema]{}, nil
}

// Create validates and inserts a new cinema.
func (s *CinemaService) Create(ctx context.Context, name string) (domain.Result[model.Cinema], error) {
	name = strings.TrimSpace(name)
	if res, err := s.validateCinemaName(ctx, name); err != nil || res.Kind() != domain.KindNone {
		return res, err
	}
	c := &model.Cinema{Name: name}
	if err := s.store.Create(ctx, c); err != nil {
		return domain.Result[model.Cinema]{}, err
	}
	return domain.OK(*c), nil
}

// CreateWithAuditorium validates both halves of the composite create and
// runs it as one unit: a failed auditorium step never leaves a cinema
// behind.
func (s *CinemaService) CreateWithAuditorium(ctx context.Context, cinemaName, auditoriumName string, seatRows, seatsPerRow uint32) (domain.Result[CinemaWithAuditorium], error) {
	cinemaName = strings.TrimSpace(cinemaName)
	if res, err := s.validateCinemaName(ctx, cinemaName); err != nil {
		return domain.Result[CinemaWithAuditorium]{}, err
	} else if res.Kind() != domain.KindNone {
		return domain.Fail[CinemaWithAuditorium](res.Kind(), res.ErrorMessage()), nil
	}

	auditoriumName = strings.TrimSpace(auditoriumName)
	if auditoriumName == "" {
		return domain.Invalid[CinemaWithAuditorium](s.msgs.Get(domain.MsgAuditoriumNameRequired)), nil
	}
	if utf8.RuneCountInString(auditoriumName) > maxAuditoriumNameLen {
		return domain.Invalid[CinemaWithAuditorium](s.msgs.Get(domain.MsgAuditoriumNameTooLong)), nil
	}
	if seatRows < 1 || seatRows > maxSeatGridDim {
		return domain.Invalid[CinemaWithAuditorium](s.msgs.Get(domain.MsgAuditoriumRowsRange)), nil
	}
	if seatsPerRow < 1 || seatsPerRow > maxSeatGridDim {
		return domain.Invalid[CinemaWithAuditorium](s.msgs.Get(domain.MsgAuditoriumSeatsRange)), nil
	}

	c := &model.Cinema{Name: cinemaName}
	a := &model.Auditorium{Name: auditoriumName, SeatRows: seatRows, SeatsPerRow: seatsPerRow}
	if err := s.store.CreateWithAuditorium(ctx, c, a); err != nil {
		return domain.Result[CinemaWithAuditorium]{}, err
	}
	return domain.OK(CinemaWithAuditorium{Cinema: *c, Auditorium: *a}), nil
}

// Update validates and renames a cinema, returning the updated record.
func (s *CinemaService) Update(ctx context.Context, id uint64, name string) (domain.Result[model.Cinema], error) {
	name = strings.TrimSpace(name)
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return domain.NotFound[model.Cinema](s.msgs.Get(domain.MsgCinemaNotFound)), nil
		}
		return domain.Result[model.Cinema]{}, err
	}
	// Renaming to the current name is a no-op, not a duplicate.
	if name != existing.Name {
		if res, err := s.validateCinemaName(ctx, name); err != nil || res.Kind() != domain.KindNone {
			return res, err
		}
		if err := s.store.UpdateName(ctx, id, name); err != nil {
			return domain.Result[model.Cinema]{}, err
		}
		existing.Name = name
	}
	return domain.OK(*existing), nil
}

// Delete removes a cinema with its auditoriums and seats. The delete is
// rejected while any auditorium underneath has sold tickets.
func (s *CinemaService) Delete(ctx context.Context, id uint64) (domain.Result[model.Cinema], error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return domain.NotFound[model.Cinema](s.msgs.Get(domain.MsgCinemaNotFound)), nil
		}
		return domain.Result[model.Cinema]{}, err
	}
	sold, err := s.store.HasSoldTickets(ctx, id)
	if err != nil {
		return domain.Result[model.Cinema]{}, err
	}
	if sold {
		return domain.Conflict[model.Cinema](s.msgs.Get(domain.MsgCinemaHasTickets)), nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return domain.Result[model.Cinema]{}, err
	}
	return domain.OK(*existing), nil
}
