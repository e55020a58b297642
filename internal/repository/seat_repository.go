// Repository methods for individual seats. Most seats are generated in
// bulk when an auditorium is created; single-seat CRUD exists for
// adjusting a layout afterwards.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-management/internal/model"
)

// ErrSeatNotFound is returned when a seat cannot be found in the DB.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo encapsulates all database queries related to seats.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the provided DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatCols = "id, auditorium_id, row_no, seat_no"

func scanSeat(row interface{ Scan(...any) error }, s *model.Seat) error {
	return row.Scan(&s.ID, &s.AuditoriumID, &s.Row, &s.Number)
}

// Create inserts a single seat. A position collision that slipped past
// the service check surfaces as ErrDuplicate.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	const q = "INSERT INTO seats (auditorium_id, row_no, seat_no) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, s.AuditoriumID, s.Row, s.Number)
	if err != nil {
		return duplicateOr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a seat by its ID, ErrSeatNotFound when missing.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = "SELECT " + seatCols + " FROM seats WHERE id = ?"
	var s model.Seat
	if err := scanSeat(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns every seat ordered by auditorium, row and number.
func (r *SeatRepo) List(ctx context.Context) ([]model.Seat, error) {
	const q = "SELECT " + seatCols + " FROM seats ORDER BY auditorium_id, row_no, seat_no"
	return r.queryList(ctx, q)
}

// ListByAuditorium returns all seats of an auditorium ordered by row and
// number for deterministic output.
func (r *SeatRepo) ListByAuditorium(ctx context.Context, auditoriumID uint64) ([]model.Seat, error) {
	const q = "SELECT " + seatCols + " FROM seats WHERE auditorium_id = ? ORDER BY row_no, seat_no"
	return r.queryList(ctx, q, auditoriumID)
}

func (r *SeatRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := scanSeat(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ExistsAtPosition reports whether the auditorium already has a seat at
// (row, number), optionally excluding one seat ID (for updates).
func (r *SeatRepo) ExistsAtPosition(ctx context.Context, auditoriumID uint64, row, number uint32, excludeID uint64) (bool, error) {
	const q = `SELECT 1 FROM seats
	           WHERE auditorium_id = ? AND row_no = ? AND seat_no = ? AND id <> ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, auditoriumID, row, number, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// UpdatePosition moves a seat to a new row/number. ErrSeatNotFound when
// no row is affected, ErrDuplicate on a position collision.
func (r *SeatRepo) UpdatePosition(ctx context.Context, id uint64, row, number uint32) error {
	const q = "UPDATE seats SET row_no = ?, seat_no = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, row, number, id)
	if err != nil {
		return duplicateOr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// HasTickets reports whether any ticket references the seat.
func (r *SeatRepo) HasTickets(ctx context.Context, id uint64) (bool, error) {
	const q = "SELECT 1 FROM tickets WHERE seat_id = ? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Delete removes a seat, ErrSeatNotFound when it does not exist.
func (r *SeatRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM seats WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}
