package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

// Movie validation bounds. The lower year bound is the first public film
// screening; the upper bound leaves room for announced releases.
const (
	minMovieYear   = 1895
	maxMovieYear   = 2100
	minMovieRating = 1
	maxMovieRating = 10
	topMoviesCount = 10
)

// MovieStore is the persistence surface the movie service needs.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	List(ctx context.Context) ([]model.Movie, error)
	SearchByTitle(ctx context.Context, needle string) ([]model.Movie, error)
	ListByYear(ctx context.Context, year int) ([]model.Movie, error)
	ListByTag(ctx context.Context, tagID uint64) ([]model.Movie, error)
	ListTop(ctx context.Context, n int) ([]model.Movie, error)
	Update(ctx context.Context, m *model.Movie) error
	SetCurrent(ctx context.Context, id uint64, current bool) error
	AttachTag(ctx context.Context, movieID, tagID uint64) error
	DetachTag(ctx context.Context, movieID, tagID uint64) (bool, error)
	Delete(ctx context.Context, id uint64) error
}

// MovieScheduleChecker answers the schedule questions that guard movie
// deletion.
type MovieScheduleChecker interface {
	HasFutureByMovie(ctx context.Context, movieID uint64, now time.Time) (bool, error)
	HasTicketsByMovie(ctx context.Context, movieID uint64) (bool, error)
}

// MovieInput carries the create/update payload.
type MovieInput struct {
	Title    string
	Year     int
	Rating   float64
	HasOscar bool
}

// MovieService validates and executes movie operations.
type MovieService struct {
	store       MovieStore
	tags        TagGetter
	projections MovieScheduleChecker
	msgs        *domain.Catalog

	now func() time.Time
}

// NewMovieService constructs a MovieService.
func NewMovieService(store MovieStore, tags TagGetter, projections MovieScheduleChecker, msgs *domain.Catalog) *MovieService {
	return &MovieService{
		store:       store,
		tags:        tags,
		projections: projections,
		msgs:        msgs,
		now:         time.Now,
	}
}

// GetAll returns every movie with its tags.
func (s *MovieService) GetAll(ctx context.Context) ([]model.Movie, error) {
	return s.store.List(ctx)
}

// GetByID wraps a single movie, or a not-found envelope.
func (s *MovieService) GetByID(ctx context.Context, id uint64) (domain.Result[model.Movie], error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return domain.NotFound[model.Movie](s.msgs.Get(domain.MsgMovieNotFound)), nil
		}
		return domain.Result[model.Movie]{}, err
	}
	return domain.OK(*m), nil
}

// SearchByTitle returns movies whose title contains the given substring.
func (s *MovieService) SearchByTitle(ctx context.Context, needle string) ([]model.Movie, error) {
	return s.store.SearchByTitle(ctx, strings.TrimSpace(needle))
}

// GetByYear returns movies released in the given year.
func (s *MovieService) GetByYear(ctx context.Context, year int) ([]model.Movie, error) {
	return s.store.ListByYear(ctx, year)
}

// GetByTag returns movies carrying the given tag, or a not-found envelope
// when the tag does not exist.
func (s *MovieService) GetByTag(ctx context.Context, tagID uint64) (domain.Result[[]model.Movie], error) {
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return domain.NotFound[[]model.Movie](s.msgs.Get(domain.MsgTagNotFound)), nil
		}
		return domain.Result[[]model.Movie]{}, err
	}
	items, err := s.store.ListByTag(ctx, tagID)
	if err != nil {
		return domain.Result[[]model.Movie]{}, err
	}
	return domain.OK(items), nil
}

// GetTop returns the ten highest rated movies. Among equal ratings an
// Oscar winner ranks higher.
func (s *MovieService) GetTop(ctx context.Context) ([]model.Movie, error) {
	return s.store.ListTop(ctx, topMoviesCount)
}

// validateMovieInput runs the shared create/update rules in order.
func (s *MovieService) validateMovieInput(in MovieInput) domain.Result[model.Movie] {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Invalid[model.Movie](s.msgs.Get(domain.MsgMovieTitleRequired))
	}
	if in.Year < minMovieYear || in.Year > maxMovieYear {
		return domain.Invalid[model.Movie](s.msgs.Get(domain.MsgMovieYearRange))
	}
	if in.Rating < minMovieRating || in.Rating > maxMovieRating {
		return domain.Invalid[model.Movie](s.msgs.Get(domain.MsgMovieRatingRange))
	}
	return domain.Result[model.Movie]{}
}

// Create validates and inserts a new movie. New movies start out not
// current; Activate flips them into the active repertoire.
func (s *MovieService) Create(ctx context.Context, in MovieInput) (domain.Result[model.Movie], error) {
	if res := s.validateMovieInput(in); res.Kind() != domain.KindNone {
		return res, nil
	}
	m := &model.Movie{
		Title:    strings.TrimSpace(in.Title),
		Year:     in.Year,
		Rating:   in.Rating,
		HasOscar: in.HasOscar,
	}
	if err := s.store.Create(ctx, m); err != nil {
		return domain.Result[model.Movie]{}, err
	}
	return domain.OK(*m), nil
}

// Update validates and rewrites a movie's mutable fields.
func (s *MovieService) Update(ctx context.Context, id uint64, in MovieInput) (domain.Result[model.Movie], error) {
	if res := s.validateMovieInput(in); res.Kind() != domain.KindNone {
		return res, nil
	}
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return domain.NotFound[model.Movie](s.msgs.Get(domain.MsgMovieNotFound)), nil
		}
		return domain.Result[model.Movie]{}, err
	}
	existing.Title = strings.TrimSpace(in.Title)
	existing.Year = in.Year
	existing.Rating = in.Rating
	existing.HasOscar = in.HasOscar
	if err := s.store.Update(ctx, existing); err != nil {
		return domain.Result[model.Movie]{}, err
	}
	return domain.OK(*existing), nil
}

// Activate marks the movie as part of the current repertoire.
func (s *MovieService) Activate(ctx context.Context, id uint64) (domain.Result[model.Movie], error) {
	return s.setCurrent(ctx, id, true)
}

// Deactivate removes the movie from the current repertoire.
func (s *MovieService) Deactivate(ctx context.Context, id uint64) (domain.Result[model.Movie], error) {
	return s.setCurrent(ctx, id, false)
}

func (s *MovieService) setCurrent(ctx context.Context, id uint64, current bool) (domain.Result[model.Movie], error) {
	if err := s.store.SetCurrent(ctx, id, current); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return domain.NotFound[model.Movie](s.msgs.Get(domain.MsgMovieNotFound)), nil
		}
		return domain.Result[model.Movie]{}, err
	}
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.Result[model.Movie]{}, err
	}
	return domain.OK(*m), nil
}

// AttachTag links a tag to a movie. Attaching an already attached tag is
// a conflict.
func (s *MovieService) AttachTag(ctx context.Context, movieID, tagID uint64) (domain.Result[model.Movie], error) {
	if _, err := s.store.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return domain.NotFound[model.Movie](s.msgs.Get(domain.MsgMovieNotFound)), nil
		}
		return domain.Result[model.Movie]{}, err
	}
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return domain.NotFound[model.Movie](s.msgs.Get(domain.MsgTagNotFound)), nil
		}
		return domain.Result[model.Movie]{}, err
	}
	if err := s.store.AttachTag(ctx, movieID, tagID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Conflict[model.Movie](s.msgs.Get(domain.MsgMovieAlreadyTagged)), nil
		}
		return domain.Result[model.Movie]{}, err
	}
	m, err := s.store.GetByID(ctx, movieID)
	if err != nil {
		return domain.Result[model.Movie]{}, err
	}
	return domain.OK(*m), nil
}

// DetachTag removes a tag link from a movie.
func (s *MovieService) DetachTag(ctx context.Context, movieID, tagID uint64) (domain.Result[model.Movie], error) {
	if _, err := s.store.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return domain.NotFound[model.Movie](s.msgs.Get(domain.MsgMovieNotFound)), nil
		}
		return domain.Result[model.Movie]{}, err
	}
	removed, err := s.store.DetachTag(ctx, movieID, tagID)
	if err != nil {
		return domain.Result[model.Movie]{}, err
	}
	if !removed {
		return domain.NotFound[model.Movie](s.msgs.Get(domain.MsgMovieTagMissing)), nil
	}
	m, err := s.store.GetByID(ctx, movieID)
	if err != nil {
		return domain.Result[model.Movie]{}, err
	}
	return domain.OK(*m), nil
}

// Delete removes a movie with its tag links and past projections. A
// movie with an upcoming projection, or with any sold ticket, stays.
func (s *MovieService) Delete(ctx context.Context, id uint64) (domain.Result[model.Movie], error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return domain.NotFound[model.Movie](s.msgs.Get(domain.MsgMovieNotFound)), nil
		}
		return domain.Result[model.Movie]{}, err
	}
	future, err := s.projections.HasFutureByMovie(ctx, id, s.now().UTC())
	if err != nil {
		return domain.Result[model.Movie]{}, err
	}
	if future {
		return domain.Conflict[model.Movie](s.msgs.Get(domain.MsgMovieHasFutureShows)), nil
	}
	sold, err := s.projections.HasTicketsByMovie(ctx, id)
	if err != nil {
		return domain.Result[model.Movie]{}, err
	}
	if sold {
		return domain.Conflict[model.Movie](s.msgs.Get(domain.MsgMovieHasTickets)), nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return domain.Result[model.Movie]{}, err
	}
	return domain.OK(*existing), nil
}
