// Package service implements the domain services. Every mutating
// operation follows the same pipeline: run the entity's validation rules
// in order, stop at the first failure, mutate the store only when all
// rules pass, and report the outcome through a domain.Result envelope.
// The second return value of each operation carries infrastructure
// faults only; it is never used for business failures.
//
// Services depend on narrow store interfaces rather than the concrete
// repositories so tests can run against in-memory fakes.
package service

import (
	"context"

	"github.com/iliyamo/cinema-management/internal/model"
)

// Read-only lookups shared across services for referential checks.

// CinemaGetter resolves a cinema by ID.
type CinemaGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Cinema, error)
}

// AuditoriumGetter resolves an auditorium by ID.
type AuditoriumGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Auditorium, error)
}

// MovieGetter resolves a movie by ID.
type MovieGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// TagGetter resolves a tag by ID.
type TagGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Tag, error)
}

// ProjectionGetter resolves a projection by ID.
type ProjectionGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Projection, error)
}

// SeatGetter resolves a seat by ID.
type SeatGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
}

// UserGetter resolves a user by ID.
type UserGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}
