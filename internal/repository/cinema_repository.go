// This file defines repository methods for cinemas: CRUD, uniqueness
// lookups and the composite cinema-with-auditorium create. A cinema owns
// its auditoriums, which in turn own their seats, so deletion cascades
// through both levels inside one transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-management/internal/model"
)

// ErrCinemaNotFound is returned when a cinema cannot be found in the DB.
var ErrCinemaNotFound = errors.New("cinema not found")

// CinemaRepo encapsulates all database queries related to cinemas. It
// depends on a sql.DB connection pool configured at startup.
type CinemaRepo struct {
	db *sql.DB
}

// NewCinemaRepo constructs a CinemaRepo with the provided DB handle.
func NewCinemaRepo(db *sql.DB) *CinemaRepo {
	return &CinemaRepo{db: db}
}

const cinemaCols = "id, name, created_at, updated_at"

func scanCinema(row interface{ Scan(...any) error }, c *model.Cinema) error {
	return row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a new cinema. On success the ID, CreatedAt and
// UpdatedAt fields are populated via a follow-up SELECT so callers
// receive a fully populated record. A lost uniqueness race surfaces as
// ErrDuplicate.
func (r *CinemaRepo) Create(ctx context.Context, c *model.Cinema) error {
	const qInsert = "INSERT INTO cinemas (name) VALUES (?)"
	res, err := r.db.ExecContext(ctx, qInsert, c.Name)
	if err != nil {
		return duplicateOr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	const qSelect = "SELECT " + cinemaCols + " FROM cinemas WHERE id = ?"
	return scanCinema(r.db.QueryRowContext(ctx, qSelect, c.ID), c)
}

// CreateWithAuditorium creates a cinema together with its first
// auditorium and the auditorium's seat grid in a single transaction.
// Either all three land or none do, so a failed auditorium step can
// never leave a cinema behind without its auditorium.
func (r *CinemaRepo) CreateWithAuditorium(ctx context.Context, c *model.Cinema, a *model.Auditorium) error {
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

	res, err := tx.ExecContext(ctx, "INSERT INTO cinemas (name) VALUES (?)", c.Name)
	if err != nil {
		err = duplicateOr(err)
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	a.CinemaID = c.ID
	if err = createAuditoriumTx(ctx, tx, a); err != nil {
		return err
	}

	const qSelect = "SELECT " + cinemaCols + " FROM cinemas WHERE id = ?"
	err = scanCinema(tx.QueryRowContext(ctx, qSelect, c.ID), c)
	return err
}

// GetByID fetches a cinema by its ID. It returns ErrCinemaNotFound if no
// row is found.
func (r *CinemaRepo) GetByID(ctx context.Context, id uint64) (*model.Cinema, error) {
	const q = "SELECT " + cinemaCols + " FROM cinemas WHERE id = ?"
	var c model.Cinema
	if err := scanCinema(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCinemaNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all cinemas ordered by id.
func (r *CinemaRepo) List(ctx context.Context) ([]model.Cinema, error) {
	const q = "SELECT " + cinemaCols + " FROM cinemas ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Cinema, 0)
	for rows.Next() {
		var c model.Cinema
		if err := scanCinema(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ExistsByName reports whether any cinema already carries the name.
func (r *CinemaRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	const q = "SELECT 1 FROM cinemas WHERE name = ? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// UpdateName updates the cinema name. It returns ErrCinemaNotFound when
// no row is affected and ErrDuplicate when the new name loses a
// uniqueness race.
func (r *CinemaRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	const q = "UPDATE cinemas SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, name, id)
	if err != nil {
		return duplicateOr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCinemaNotFound
	}
	return nil
}

// HasSoldTickets reports whether any ticket exists for a projection in
// any auditorium of this cinema. Used as the deletion guard.
func (r *CinemaRepo) HasSoldTickets(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT 1 FROM tickets t
	           JOIN projections p ON p.id = t.projection_id
	           JOIN auditoriums a ON a.id = p.auditorium_id
	           WHERE a.cinema_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Delete removes a cinema and all dependent records (projections, seats
// and auditoriums) within a transaction. The caller is responsible for
// rejecting the delete beforehand when sold tickets exist underneath.
// ErrCinemaNotFound is returned when the cinema does not exist.
func (r *CinemaRepo) Delete(ctx context.Context, id uint64) error {
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
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM cinemas WHERE id = ?", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrCinemaNotFound
		}
		return err
	}
	// Cascade: projections scheduled in this cinema's auditoriums.
	if _, err = tx.ExecContext(ctx,
		`DELETE p FROM projections p
		 JOIN auditoriums a ON a.id = p.auditorium_id
		 WHERE a.cinema_id = ?`, id); err != nil {
		return err
	}
	// Seats of this cinema's auditoriums.
	if _, err = tx.ExecContext(ctx,
		`DELETE s FROM seats s
		 JOIN auditoriums a ON a.id = s.auditorium_id
		 WHERE a.cinema_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM auditoriums WHERE cinema_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM cinemas WHERE id = ?", id)
	return err
}
