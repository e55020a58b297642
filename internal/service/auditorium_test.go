package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

func cinemaExists(id uint64) cinemaGetterFunc {
	return func(_ context.Context, got uint64) (*model.Cinema, error) {
		if got == id {
			return &model.Cinema{ID: id, Name: "Odeon"}, nil
		}
		return nil, repository.ErrCinemaNotFound
	}
}

func TestAuditoriumCreate(t *testing.T) {
	ctx := context.Background()
	store := newMemAuditoriumStore()
	svc := NewAuditoriumService(store, cinemaExists(1), domain.DefaultCatalog())

	res, err := svc.Create(ctx, CreateAuditoriumInput{CinemaID: 1, Name: "Screen 1", SeatRows: 10, SeatsPerRow: 12})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	assert.Equal(t, uint32(10), res.Model().SeatRows)
	assert.Equal(t, uint32(12), res.Model().SeatsPerRow)
}

func TestAuditoriumCreateValidationOrder(t *testing.T) {
	ctx := context.Background()
	store := newMemAuditoriumStore()
	svc := NewAuditoriumService(store, cinemaExists(1), domain.DefaultCatalog())

	res, err := svc.Create(ctx, CreateAuditoriumInput{CinemaID: 1, Name: "", SeatRows: 10, SeatsPerRow: 12})
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())

	res, err = svc.Create(ctx, CreateAuditoriumInput{CinemaID: 1, Name: strings.Repeat("x", 51), SeatRows: 10, SeatsPerRow: 12})
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())

	res, err = svc.Create(ctx, CreateAuditoriumInput{CinemaID: 99, Name: "Screen 1", SeatRows: 10, SeatsPerRow: 12})
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, res.Kind())

	for _, rows := range []uint32{0, 21} {
		res, err = svc.Create(ctx, CreateAuditoriumInput{CinemaID: 1, Name: "Screen 1", SeatRows: rows, SeatsPerRow: 12})
		require.NoError(t, err)
		assert.Equal(t, domain.KindInvalid, res.Kind())
	}
}

func TestAuditoriumNameLengthCountsCharacters(t *testing.T) {
	ctx := context.Background()
	svc := NewAuditoriumService(newMemAuditoriumStore(), cinemaExists(1), domain.DefaultCatalog())

	// 50 two-byte characters fit the limit despite the larger byte count.
	res, err := svc.Create(ctx, CreateAuditoriumInput{CinemaID: 1, Name: strings.Repeat("ß", 50), SeatRows: 5, SeatsPerRow: 5})
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())

	res, err = svc.Create(ctx, CreateAuditoriumInput{CinemaID: 1, Name: strings.Repeat("ß", 51), SeatRows: 5, SeatsPerRow: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())
}

func TestAuditoriumDuplicateNameWithinCinema(t *testing.T) {
	ctx := context.Background()
	store := newMemAuditoriumStore()
	getter := func(_ context.Context, id uint64) (*model.Cinema, error) {
		return &model.Cinema{ID: id}, nil
	}
	svc := NewAuditoriumService(store, cinemaGetterFunc(getter), domain.DefaultCatalog())

	res, err := svc.Create(ctx, CreateAuditoriumInput{CinemaID: 1, Name: "Screen 1", SeatRows: 5, SeatsPerRow: 5})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())

	// Same name in the same cinema is a conflict.
	res, err = svc.Create(ctx, CreateAuditoriumInput{CinemaID: 1, Name: "Screen 1", SeatRows: 5, SeatsPerRow: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())

	// Same name in a different cinema is fine.
	res, err = svc.Create(ctx, CreateAuditoriumInput{CinemaID: 2, Name: "Screen 1", SeatRows: 5, SeatsPerRow: 5})
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())
}

func TestAuditoriumDeleteGuardedBySoldTickets(t *testing.T) {
	ctx := context.Background()
	store := newMemAuditoriumStore()
	svc := NewAuditoriumService(store, cinemaExists(1), domain.DefaultCatalog())

	created, err := svc.Create(ctx, CreateAuditoriumInput{CinemaID: 1, Name: "Screen 1", SeatRows: 5, SeatsPerRow: 5})
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
