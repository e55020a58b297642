// Repository methods for auditoriums. Creating an auditorium also
// generates its full seat grid, so the insert always runs inside a
// transaction shared with the seat inserts.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-management/internal/model"
)

// ErrAuditoriumNotFound is returned when an auditorium cannot be found.
var ErrAuditoriumNotFound = errors.New("auditorium not found")

// AuditoriumRepo encapsulates all database queries related to
// auditoriums and their seat grids.
type AuditoriumRepo struct {
	db *sql.DB
}

// NewAuditoriumRepo constructs an AuditoriumRepo with the provided DB handle.
func NewAuditoriumRepo(db *sql.DB) *AuditoriumRepo {
	return &AuditoriumRepo{db: db}
}

const auditoriumCols = "id, cinema_id, name, seat_rows, seats_per_row, created_at, updated_at"

func scanAuditorium(row interface{ Scan(...any) error }, a *model.Auditorium) error {
	return row.Scan(&a.ID, &a.CinemaID, &a.Name, &a.SeatRows, &a.SeatsPerRow, &a.CreatedAt, &a.UpdatedAt)
}

// createAuditoriumTx inserts an auditorium and its seat grid within an
// existing transaction. It populates the generated ID and timestamp
// fields on the provided record. Shared with the cinema composite create.
func createAuditoriumTx(ctx context.Context, tx *sql.Tx, a *model.Auditorium) error {
	const qInsert = `INSERT INTO auditoriums (cinema_id, name, seat_rows, seats_per_row)
	                 VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, qInsert, a.CinemaID, a.Name, a.SeatRows, a.SeatsPerRow)
	if err != nil {
		return duplicateOr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	if err := insertSeatGridTx(ctx, tx, a.ID, a.SeatRows, a.SeatsPerRow); err != nil {
		return err
	}

	const qSelect = "SELECT " + auditoriumCols + " FROM auditoriums WHERE id = ?"
	return scanAuditorium(tx.QueryRowContext(ctx, qSelect, a.ID), a)
}

// insertSeatGridTx bulk-inserts rows*perRow seats for an auditorium in a
// single statement.
func insertSeatGridTx(ctx context.Context, tx *sql.Tx, auditoriumID uint64, rows, perRow uint32) error {
	if rows == 0 || perRow == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("INSERT INTO seats (auditorium_id, row_no, seat_no) VALUES ")
	args := make([]any, 0, int(rows)*int(perRow)*3)
	first := true
	for row := uint32(1); row <= rows; row++ {
		for num := uint32(1); num <= perRow; num++ {
			if !first {
				sb.WriteString(",")
			}
			first = false
			sb.WriteString("(?, ?, ?)")
			args = append(args, auditoriumID, row, num)
		}
	}
	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}

// Create inserts a new auditorium and generates its seat grid in one
// transaction. On success the record is fully populated.
func (r *AuditoriumRepo) Create(ctx context.Context, a *model.Auditorium) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	err = createAuditoriumTx(ctx, tx, a)
	return err
}

// GetByID fetches an auditorium by its ID, ErrAuditoriumNotFound when missing.
func (r *AuditoriumRepo) GetByID(ctx context.Context, id uint64) (*model.Auditorium, error) {
	const q = "SELECT " + auditoriumCols + " FROM auditoriums WHERE id = ?"
	var a model.Auditorium
	if err := scanAuditorium(r.db.QueryRowContext(ctx, q, id), &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAuditoriumNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all auditoriums ordered by id.
func (r *AuditoriumRepo) List(ctx context.Context) ([]model.Auditorium, error) {
	const q = "SELECT " + auditoriumCols + " FROM auditoriums ORDER BY id"
	return r.queryList(ctx, q)
}

// ListByCinema returns all auditoriums of one cinema ordered by id.
func (r *AuditoriumRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Auditorium, error) {
	const q = "SELECT " + auditoriumCols + " FROM auditoriums WHERE cinema_id = ? ORDER BY id"
	return r.queryList(ctx, q, cinemaID)
}

func (r *AuditoriumRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Auditorium, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Auditorium, 0)
	for rows.Next() {
		var a model.Auditorium
		if err := scanAuditorium(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ExistsByCinemaAndName reports whether the cinema already has an
// auditorium with the given name.
func (r *AuditoriumRepo) ExistsByCinemaAndName(ctx context.Context, cinemaID uint64, name string) (bool, error) {
	const q = "SELECT 1 FROM auditoriums WHERE cinema_id = ? AND name = ? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, cinemaID, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// UpdateName renames an auditorium. ErrAuditoriumNotFound when no row is
// affected, ErrDuplicate when the per-cinema unique key rejects the name.
func (r *AuditoriumRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	const q = "UPDATE auditoriums SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, name, id)
	if err != nil {
		return duplicateOr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAuditoriumNotFound
	}
	return nil
}

// HasSoldTickets reports whether any ticket exists for a projection in
// this auditorium. Used as the deletion guard.
func (r *AuditoriumRepo) HasSoldTickets(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT 1 FROM tickets t
	           JOIN projections p ON p.id = t.projection_id
	           WHERE p.auditorium_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Delete removes an auditorium with its projections and seats inside a
// transaction. ErrAuditoriumNotFound when the auditorium does not exist.
func (r *AuditoriumRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM auditoriums WHERE id = ?", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrAuditoriumNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM projections WHERE auditorium_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM seats WHERE auditorium_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM auditoriums WHERE id = ?", id)
	return err
}
