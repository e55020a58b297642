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

// memTagStore is an in-memory TagStore with case-insensitive names,
// matching the tags table collation.
type memTagStore struct {
	tags   map[uint64]model.Tag
	nextID uint64
}

func newMemTagStore() *memTagStore {
	return &memTagStore{tags: map[uint64]model.Tag{}}
}

func (s *memTagStore) Create(_ context.Context, t *model.Tag) error {
	s.nextID++
	t.ID = s.nextID
	s.tags[t.ID] = *t
	return nil
}

func (s *memTagStore) GetByID(_ context.Context, id uint64) (*model.Tag, error) {
	t, ok := s.tags[id]
	if !ok {
		return nil, repository.ErrTagNotFound
	}
	return &t, nil
}

func (s *memTagStore) List(_ context.Context) ([]model.Tag, error) {
	out := make([]model.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t)
	}
	return out, nil
}

func (s *memTagStore) ExistsByName(_ context.Context, name string, excludeID uint64) (bool, error) {
	for _, t := range s.tags {
		if t.ID != excludeID && strings.EqualFold(t.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memTagStore) UpdateName(_ context.Context, id uint64, name string) error {
	t, ok := s.tags[id]
	if !ok {
		return repository.ErrTagNotFound
	}
	t.Name = name
	s.tags[id] = t
	return nil
}

func (s *memTagStore) Delete(_ context.Context, id uint64) error {
	delete(s.tags, id)
	return nil
}

func TestTagCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewTagService(newMemTagStore(), domain.DefaultCatalog())

	res, err := svc.Create(ctx, "drama")
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	assert.Equal(t, "drama", res.Model().Name)

	res, err = svc.Create(ctx, "  ")
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())
}

func TestTagNameUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := NewTagService(newMemTagStore(), domain.DefaultCatalog())

	res, err := svc.Create(ctx, "drama")
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())

	res, err = svc.Create(ctx, "DRAMA")
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())
}

func TestTagUpdateAllowsCaseChangeOfOwnName(t *testing.T) {
	ctx := context.Background()
	svc := NewTagService(newMemTagStore(), domain.DefaultCatalog())

	created, err := svc.Create(ctx, "drama")
	require.NoError(t, err)

	res, err := svc.Update(ctx, created.Model().ID, "Drama")
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())
	assert.Equal(t, "Drama", res.Model().Name)
}

func TestTagDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemTagStore()
	svc := NewTagService(store, domain.DefaultCatalog())

	created, err := svc.Create(ctx, "drama")
	require.NoError(t, err)

	res, err := svc.Delete(ctx, created.Model().ID)
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())

	res, err = svc.Delete(ctx, created.Model().ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindNotFound, res.Kind())
}
