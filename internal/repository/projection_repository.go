// Repository methods for projections (scheduled screenings). Times are
// stored as DATETIME in UTC; parseTime=true in the DSN maps them to
// time.Time on scan.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cinema-management/internal/model"
)

// ErrProjectionNotFound is returned when a projection cannot be found.
var ErrProjectionNotFound = errors.New("projection not found")

// ProjectionRepo encapsulates all database queries related to projections.
type ProjectionRepo struct {
	db *sql.DB
}

// NewProjectionRepo constructs a ProjectionRepo with the provided DB handle.
func NewProjectionRepo(db *sql.DB) *ProjectionRepo {
	return &ProjectionRepo{db: db}
}

const projectionCols = "id, movie_id, auditorium_id, starts_at, created_at, updated_at"

func scanProjection(row interface{ Scan(...any) error }, p *model.Projection) error {
	return row.Scan(&p.ID, &p.MovieID, &p.AuditoriumID, &p.StartsAt, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts a new projection and selects it back fully populated.
// ErrDuplicate when the (auditorium, time) unique key rejects the slot.
func (r *ProjectionRepo) Create(ctx context.Context, p *model.Projection) error {
	const qInsert = "INSERT INTO projections (movie_id, auditorium_id, starts_at) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, p.MovieID, p.AuditoriumID, p.StartsAt.UTC())
	if err != nil {
		return duplicateOr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	const qSelect = "SELECT " + projectionCols + " FROM projections WHERE id = ?"
	return scanProjection(r.db.QueryRowContext(ctx, qSelect, p.ID), p)
}

// GetByID fetches a projection, ErrProjectionNotFound when missing.
func (r *ProjectionRepo) GetByID(ctx context.Context, id uint64) (*model.Projection, error) {
	const q = "SELECT " + projectionCols + " FROM projections WHERE id = ?"
	var p model.Projection
	if err := scanProjection(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectionNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all projections ordered by start time.
func (r *ProjectionRepo) List(ctx context.Context) ([]model.Projection, error) {
	const q = "SELECT " + projectionCols + " FROM projections ORDER BY starts_at"
	return r.queryList(ctx, q)
}

// ListByMovie returns all projections of a movie ordered by start time.
func (r *ProjectionRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Projection, error) {
	const q = "SELECT " + projectionCols + " FROM projections WHERE movie_id = ? ORDER BY starts_at"
	return r.queryList(ctx, q, movieID)
}

// ListByAuditorium returns all projections in an auditorium ordered by
// start time.
func (r *ProjectionRepo) ListByAuditorium(ctx context.Context, auditoriumID uint64) ([]model.Projection, error) {
	const q = "SELECT " + projectionCols + " FROM projections WHERE auditorium_id = ? ORDER BY starts_at"
	return r.queryList(ctx, q, auditoriumID)
}

func (r *ProjectionRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Projection, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Projection, 0)
	for rows.Next() {
		var p model.Projection
		if err := scanProjection(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ExistsAt reports whether another projection occupies the exact
// (auditorium, start time) slot, optionally excluding one projection ID
// (for updates).
func (r *ProjectionRepo) ExistsAt(ctx context.Context, auditoriumID uint64, startsAt time.Time, excludeID uint64) (bool, error) {
	const q = `SELECT 1 FROM projections
	           WHERE auditorium_id = ? AND starts_at = ? AND id <> ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, auditoriumID, startsAt.UTC(), excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// HasFutureByMovie reports whether the movie has any projection starting
// at or after the given instant. Movie deletion is rejected while this
// holds.
func (r *ProjectionRepo) HasFutureByMovie(ctx context.Context, movieID uint64, now time.Time) (bool, error) {
	const q = "SELECT 1 FROM projections WHERE movie_id = ? AND starts_at >= ? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, movieID, now.UTC()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// HasTicketsByMovie reports whether any ticket exists for any projection
// of the movie.
func (r *ProjectionRepo) HasTicketsByMovie(ctx context.Context, movieID uint64) (bool, error) {
	const q = `SELECT 1 FROM tickets t
	           JOIN projections p ON p.id = t.projection_id
	           WHERE p.movie_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, movieID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// HasTickets reports whether any ticket references the projection.
func (r *ProjectionRepo) HasTickets(ctx context.Context, id uint64) (bool, error) {
	const q = "SELECT 1 FROM tickets WHERE projection_id = ? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Update rewrites the schedulable fields of a projection.
// ErrProjectionNotFound when no row matches, ErrDuplicate on a slot
// collision.
func (r *ProjectionRepo) Update(ctx context.Context, p *model.Projection) error {
	const q = `UPDATE projections
	           SET movie_id = ?, auditorium_id = ?, starts_at = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.MovieID, p.AuditoriumID, p.StartsAt.UTC(), p.ID)
	if err != nil {
		return duplicateOr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProjectionNotFound
	}
	return nil
}

// Delete removes a projection. The service layer rejects the delete
// beforehand while tickets exist. ErrProjectionNotFound when missing.
func (r *ProjectionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projections WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProjectionNotFound
	}
	return nil
}
