package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
)

// TagStore is the persistence surface the tag service needs.
type TagStore interface {
	Create(ctx context.Context, t *model.Tag) error
	GetByID(ctx context.Context, id uint64) (*model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
	ExistsByName(ctx context.Context, name string, excludeID uint64) (bool, error)
	UpdateName(ctx context.Context, id uint64, name string) error
	Delete(ctx context.Context, id uint64) error
}

// TagService validates and executes tag operations. Tag names are unique
// case-insensitively.
type TagService struct {
	store TagStore
	msgs  *domain.Catalog
}

// NewTagService constructs a TagService.
func NewTagService(store TagStore, msgs *domain.Catalog) *TagService {
	return &TagService{store: store, msgs: msgs}
}

// GetAll returns every tag.
func (s *TagService) GetAll(ctx context.Context) ([]model.Tag, error) {
	return s.store.List(ctx)
}

// GetByID wraps a single tag, or a not-found envelope.
func (s *TagService) GetByID(ctx context.Context, id uint64) (domain.Result[model.Tag], error) {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return domain.NotFound[model.Tag](s.msgs.Get(domain.MsgTagNotFound)), nil
		}
		return domain.Result[model.Tag]{}, err
	}
	return domain.OK(*t), nil
}

// Create validates and inserts a new tag.
func (s *TagService) Create(ctx context.Context, name string) (domain.Result[model.Tag], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Invalid[model.Tag](s.msgs.Get(domain.MsgTagNameRequired)), nil
	}
	taken, err := s.store.ExistsByName(ctx, name, 0)
	if err != nil {
		return domain.Result[model.Tag]{}, err
	}
	if taken {
		return domain.Conflict[model.Tag](s.msgs.Get(domain.MsgTagNameTaken)), nil
	}
	t := &model.Tag{Name: name}
	if err := s.store.Create(ctx, t); err != nil {
		return domain.Result[model.Tag]{}, err
	}
	return domain.OK(*t), nil
}

// Update renames a tag, keeping the case-insensitive uniqueness rule.
func (s *TagService) Update(ctx context.Context, id uint64, name string) (domain.Result[model.Tag], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Invalid[model.Tag](s.msgs.Get(domain.MsgTagNameRequired)), nil
	}
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return domain.NotFound[model.Tag](s.msgs.Get(domain.MsgTagNotFound)), nil
		}
		return domain.Result[model.Tag]{}, err
	}
	taken, err := s.store.ExistsByName(ctx, name, id)
	if err != nil {
		return domain.Result[model.Tag]{}, err
	}
	if taken {
		return domain.Conflict[model.Tag](s.msgs.Get(domain.MsgTagNameTaken)), nil
	}
	if err := s.store.UpdateName(ctx, id, name); err != nil {
		return domain.Result[model.Tag]{}, err
	}
	existing.Name = name
	return domain.OK(*existing), nil
}

// Delete removes a tag and detaches it from every movie.
func (s *TagService) Delete(ctx context.Context, id uint64) (domain.Result[model.Tag], error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return domain.NotFound[model.Tag](s.msgs.Get(domain.MsgTagNotFound)), nil
		}
		return domain.Result[model.Tag]{}, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return domain.Result[model.Tag]{}, err
	}
	return domain.OK(*existing), nil
}
