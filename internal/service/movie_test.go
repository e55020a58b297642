package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

// memMovieStore is an in-memory MovieStore.
type memMovieStore struct {
	movies map[uint64]model.Movie
	nextID uint64
	links  map[uint64]map[uint64]bool // movie -> tag set
}

func newMemMovieStore() *memMovieStore {
	return &memMovieStore{movies: map[uint64]model.Movie{}, links: map[uint64]map[uint64]bool{}}
}

func (s *memMovieStore) Create(_ context.Context, m *model.Movie) error {
	s.nextID++
	m.ID = s.nextID
	m.Tags = []model.Tag{}
	s.movies[m.ID] = *m
	return nil
}

func (s *memMovieStore) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	m, ok := s.movies[id]
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	return &m, nil
}

func (s *memMovieStore) List(_ context.Context) ([]model.Movie, error) {
	out := make([]model.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		out = append(out, m)
	}
	return out, nil
}

func (s *memMovieStore) SearchByTitle(_ context.Context, _ string) ([]model.Movie, error) {
	return nil, nil
}

func (s *memMovieStore) ListByYear(_ context.Context, _ int) ([]model.Movie, error) {
	return nil, nil
}

func (s *memMovieStore) ListByTag(_ context.Context, tagID uint64) ([]model.Movie, error) {
	out := []model.Movie{}
	for id, tags := range s.links {
		if tags[tagID] {
			out = append(out, s.movies[id])
		}
	}
	return out, nil
}

// ListTop mirrors the SQL ordering: rating descending, Oscar winners
// first among equal ratings, id ascending.
func (s *memMovieStore) ListTop(_ context.Context, n int) ([]model.Movie, error) {
	all := make([]model.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Rating != all[j].Rating {
			return all[i].Rating > all[j].Rating
		}
		if all[i].HasOscar != all[j].HasOscar {
			return all[i].HasOscar
		}
		return all[i].ID < all[j].ID
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *memMovieStore) Update(_ context.Context, m *model.Movie) error {
	if _, ok := s.movies[m.ID]; !ok {
		return repository.ErrMovieNotFound
	}
	s.movies[m.ID] = *m
	return nil
}

func (s *memMovieStore) SetCurrent(_ context.Context, id uint64, current bool) error {
	m, ok := s.movies[id]
	if !ok {
		return repository.ErrMovieNotFound
	}
	m.IsCurrent = current
	s.movies[id] = m
	return nil
}

func (s *memMovieStore) AttachTag(_ context.Context, movieID, tagID uint64) error {
	if s.links[movieID] == nil {
		s.links[movieID] = map[uint64]bool{}
	}
	if s.links[movieID][tagID] {
		return repository.ErrDuplicate
	}
	s.links[movieID][tagID] = true
	return nil
}

func (s *memMovieStore) DetachTag(_ context.Context, movieID, tagID uint64) (bool, error) {
	if !s.links[movieID][tagID] {
		return false, nil
	}
	delete(s.links[movieID], tagID)
	return true, nil
}

func (s *memMovieStore) Delete(_ context.Context, id uint64) error {
	delete(s.movies, id)
	delete(s.links, id)
	return nil
}

// scheduleFake answers the movie deletion guards.
type scheduleFake struct {
	future  bool
	tickets bool
}

func (f scheduleFake) HasFutureByMovie(_ context.Context, _ uint64, _ time.Time) (bool, error) {
	return f.future, nil
}

func (f scheduleFake) HasTicketsByMovie(_ context.Context, _ uint64) (bool, error) {
	return f.tickets, nil
}

func tagExists(id uint64) tagGetterFunc {
	return func(_ context.Context, got uint64) (*model.Tag, error) {
		if got == id {
			return &model.Tag{ID: id, Name: "drama"}, nil
		}
		return nil, repository.ErrTagNotFound
	}
}

func newMovieService(store *memMovieStore, sched scheduleFake) *MovieService {
	return NewMovieService(store, tagExists(1), sched, domain.DefaultCatalog())
}

func TestMovieCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newMovieService(newMemMovieStore(), scheduleFake{})

	cases := []struct {
		name string
		in   MovieInput
	}{
		{"empty title", MovieInput{Title: " ", Year: 2000, Rating: 7}},
		{"year too early", MovieInput{Title: "Heat", Year: 1894, Rating: 7}},
		{"year too late", MovieInput{Title: "Heat", Year: 2101, Rating: 7}},
		{"rating too low", MovieInput{Title: "Heat", Year: 2000, Rating: 0.5}},
		{"rating too high", MovieInput{Title: "Heat", Year: 2000, Rating: 10.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Create(ctx, tc.in)
			require.NoError(t, err)
			assert.Equal(t, domain.KindInvalid, res.Kind())
		})
	}

	res, err := svc.Create(ctx, MovieInput{Title: "Heat", Year: 1995, Rating: 8.3})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	assert.False(t, res.Model().IsCurrent)
}

func TestMovieCreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newMovieService(newMemMovieStore(), scheduleFake{})

	created, err := svc.Create(ctx, MovieInput{Title: "Heat", Year: 1995, Rating: 8.3, HasOscar: true})
	require.NoError(t, err)
	require.True(t, created.IsSuccessful())

	fetched, err := svc.GetByID(ctx, created.Model().ID)
	require.NoError(t, err)
	require.True(t, fetched.IsSuccessful())
	assert.Equal(t, created.Model(), fetched.Model())
}

func TestMovieActivateDeactivate(t *testing.T) {
	ctx := context.Background()
	store := newMemMovieStore()
	svc := newMovieService(store, scheduleFake{})

	created, err := svc.Create(ctx, MovieInput{Title: "Heat", Year: 1995, Rating: 8.3})
	require.NoError(t, err)
	id := created.Model().ID

	res, err := svc.Activate(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Model().IsCurrent)

	res, err = svc.Deactivate(ctx, id)
	require.NoError(t, err)
	assert.False(t, res.Model().IsCurrent)

	res, err = svc.Activate(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, res.Kind())
}

func TestMovieTopOrdersOscarWinnersFirstOnTies(t *testing.T) {
	ctx := context.Background()
	store := newMemMovieStore()
	svc := newMovieService(store, scheduleFake{})

	for _, m := range []MovieInput{
		{Title: "Plain Nine", Year: 2001, Rating: 9, HasOscar: false},
		{Title: "Oscar Nine", Year: 2002, Rating: 9, HasOscar: true},
		{Title: "Perfect Ten", Year: 2003, Rating: 10, HasOscar: false},
	} {
		res, err := svc.Create(ctx, m)
		require.NoError(t, err)
		require.True(t, res.IsSuccessful())
	}

	top, err := svc.GetTop(ctx)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Perfect Ten", top[0].Title)
	assert.Equal(t, "Oscar Nine", top[1].Title)
	assert.Equal(t, "Plain Nine", top[2].Title)
}

func TestMovieDeleteGuardedByFutureProjections(t *testing.T) {
	ctx := context.Background()
	store := newMemMovieStore()
	svc := newMovieService(store, scheduleFake{future: true})

	created, err := svc.Create(ctx, MovieInput{Title: "Heat", Year: 1995, Rating: 8.3})
	require.NoError(t, err)
	id := created.Model().ID

	res, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())
	// Movie row stays intact.
	_, err = store.GetByID(ctx, id)
	assert.NoError(t, err)

	svc = newMovieService(store, scheduleFake{})
	res, err = svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())
	_, err = store.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrMovieNotFound)
}

func TestMovieDeleteGuardedBySoldTickets(t *testing.T) {
	ctx := context.Background()
	store := newMemMovieStore()
	svc := newMovieService(store, scheduleFake{tickets: true})

	created, err := svc.Create(ctx, MovieInput{Title: "Heat", Year: 1995, Rating: 8.3})
	require.NoError(t, err)

	res, err := svc.Delete(ctx, created.Model().ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())
}

func TestMovieTagAttachDetach(t *testing.T) {
	ctx := context.Background()
	store := newMemMovieStore()
	svc := newMovieService(store, scheduleFake{})

	created, err := svc.Create(ctx, MovieInput{Title: "Heat", Year: 1995, Rating: 8.3})
	require.NoError(t, err)
	id := created.Model().ID

	res, err := svc.AttachTag(ctx, id, 1)
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())

	// Attaching twice is a conflict.
	res, err = svc.AttachTag(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())

	res, err = svc.DetachTag(ctx, id, 1)
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())

	// Detaching a tag that is not attached is not found.
	res, err = svc.DetachTag(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, res.Kind())

	res, err = svc.AttachTag(ctx, id, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, res.Kind())
}
