package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

// ProjectionStore is the persistence surface the projection service needs.
type ProjectionStore interface {
	Create(ctx context.Context, p *model.Projection) error
	GetByID(ctx context.Context, id uint64) (*model.Projection, error)
	List(ctx context.Context) ([]model.Projection, error)
	ListByMovie(ctx context.Context, movieID uint64) ([]model.Projection, error)
	ListByAuditorium(ctx context.Context, auditoriumID uint64) ([]model.Projection, error)
	ExistsAt(ctx context.Context, auditoriumID uint64, startsAt time.Time, excludeID uint64) (bool, error)
	HasTickets(ctx context.Context, id uint64) (bool, error)
	Update(ctx context.Context, p *model.Projection) error
	Delete(ctx context.Context, id uint64) error
}

// ProjectionInput carries the create/update payload.
type ProjectionInput struct {
	MovieID      uint64
	AuditoriumID uint64
	StartsAt     time.Time
}

// ProjectionService validates and executes projection operations.
type ProjectionService struct {
	store       ProjectionStore
	movies      MovieGetter
	auditoriums AuditoriumGetter
	msgs        *domain.Catalog

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

// NewProjectionService constructs a ProjectionService.
func NewProjectionService(store ProjectionStore, movies MovieGetter, auditoriums AuditoriumGetter, msgs *domain.Catalog) *ProjectionService {
	return &ProjectionService{
		store:       store,
		movies:      movies,
		auditoriums: auditoriums,
		msgs:        msgs,
		now:         time.Now,
	}
}

// GetAll returns every projection.
func (s *ProjectionService) GetAll(ctx context.Context) ([]model.Projection, error) {
	return s.store.List(ctx)
}

// GetByID wraps a single projection, or a not-found envelope.
func (s *ProjectionService) GetByID(ctx context.Context, id uint64) (domain.Result[model.Projection], error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectionNotFound) {
			return domain.NotFound[model.Projection](s.msgs.Get(domain.MsgProjectionNotFound)), nil
		}
		return domain.Result[model.Projection]{}, err
	}
	return domain.OK(*p), nil
}

// GetByMovie returns the projections of one movie, or a not-found
// envelope when the movie does not exist.
func (s *ProjectionService) GetByMovie(ctx context.Context, movieID uint64) (domain.Result[[]model.Projection], error) {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return domain.NotFound[[]model.Projection](s.msgs.Get(domain.MsgMovieNotFound)), nil
		}
		return domain.Result[[]model.Projection]{}, err
	}
	items, err := s.store.ListByMovie(ctx, movieID)
	if err != nil {
		return domain.Result[[]model.Projection]{}, err
	}
	return domain.OK(items), nil
}

// GetByAuditorium returns the projections scheduled in one auditorium.
func (s *ProjectionService) GetByAuditorium(ctx context.Context, auditoriumID uint64) (domain.Result[[]model.Projection], error) {
	if _, err := s.auditoriums.GetByID(ctx, auditoriumID); err != nil {
		if errors.Is(err, repository.ErrAuditoriumNotFound) {
			return domain.NotFound[[]model.Projection](s.msgs.Get(domain.MsgAuditoriumNotFound)), nil
		}
		return domain.Result[[]model.Projection]{}, err
	}
	items, err := s.store.ListByAuditorium(ctx, auditoriumID)
	if err != nil {
		return domain.Result[[]model.Projection]{}, err
	}
	return domain.OK(items), nil
}

// validate runs the projection rules in order. The past-time rule comes
// first so a stale request fails before any store access. excludeID
// skips the projection itself in the slot check on updates.
func (s *ProjectionService) validate(ctx context.Context, in ProjectionInput, excludeID uint64) (domain.Result[model.Projection], error) {
	if in.StartsAt.Before(s.now()) {
		return domain.Invalid[model.Projection](s.msgs.Get(domain.MsgProjectionPastTime)), nil
	}
	if _, err := s.movies.GetByID(ctx, in.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return domain.NotFound[model.Projection](s.msgs.Get(domain.MsgMovieNotFound)), nil
		}
		return domain.Result[model.Projection]{}, err
	}
	if _, err := s.auditoriums.GetByID(ctx, in.AuditoriumID); err != nil {
		if errors.Is(err, repository.ErrAuditoriumNotFound) {
			return domain.NotFound[model.Projection](s.msgs.Get(domain.MsgAuditoriumNotFound)), nil
		}
		return domain.Result[model.Projection]{}, err
	}
	taken, err := s.store.ExistsAt(ctx, in.AuditoriumID, in.StartsAt, excludeID)
	if err != nil {
		return domain.Result[model.Projection]{}, err
	}
	if taken {
		return domain.Conflict[model.Projection](s.msgs.Get(domain.MsgProjectionSlotTaken)), nil
	}
	return domain.Result[model.Projection]{}, nil
}

// Create validates and schedules a new projection.
func (s *ProjectionService) Create(ctx context.Context, in ProjectionInput) (domain.Result[model.Projection], error) {
	if res, err := s.validate(ctx, in, 0); err != nil || res.Kind() != domain.KindNone {
		return res, err
	}
	p := &model.Projection{
		MovieID:      in.MovieID,
		AuditoriumID: in.AuditoriumID,
		StartsAt:     in.StartsAt.UTC(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return domain.Result[model.Projection]{}, err
	}
	return domain.OK(*p), nil
}

// Update reschedules a projection after re-running all creation rules.
func (s *ProjectionService) Update(ctx context.Context, id uint64, in ProjectionInput) (domain.Result[model.Projection], error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectionNotFound) {
			return domain.NotFound[model.Projection](s.msgs.Get(domain.MsgProjectionNotFound)), nil
		}
		return domain.Result[model.Projection]{}, err
	}
	if res, err := s.validate(ctx, in, id); err != nil || res.Kind() != domain.KindNone {
		return res, err
	}
	existing.MovieID = in.MovieID
	existing.AuditoriumID = in.AuditoriumID
	existing.StartsAt = in.StartsAt.UTC()
	if err := s.store.Update(ctx, existing); err != nil {
		return domain.Result[model.Projection]{}, err
	}
	return domain.OK(*existing), nil
}

// Delete removes a projection unless tickets were sold for it.
func (s *ProjectionService) Delete(ctx context.Context, id uint64) (domain.Result[model.Projection], error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectionNotFound) {
			return domain.NotFound[model.Projection](s.msgs.Get(domain.MsgProjectionNotFound)), nil
		}
		return domain.Result[model.Projection]{}, err
	}
	sold, err := s.store.HasTickets(ctx, id)
	if err != nil {
		return domain.Result[model.Projection]{}, err
	}
	if sold {
		return domain.Conflict[model.Projection](s.msgs.Get(domain.MsgProjectionHasTickets)), nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return domain.Result[model.Projection]{}, err
	}
	return domain.OK(*existing), nil
}
