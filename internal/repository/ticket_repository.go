// Repository methods for tickets. Purchase is the one multi-step write
// of this API that touches two tables: it inserts every requested ticket
// and bumps the buyer's bonus points inside a single transaction, so a
// failure partway through leaves neither tickets nor points behind. The
// unique key on (projection_id, seat_id) is the final backstop against
// two concurrent purchases of the same seat.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-management/internal/model"
)

// ErrTicketNotFound is returned when a ticket cannot be found in the DB.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepo encapsulates all database queries related to tickets.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the provided DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

const ticketCols = "id, user_id, seat_id, projection_id, price_cents, reference, created_at"

func scanTicket(row interface{ Scan(...any) error }, t *model.Ticket) error {
	return row.Scan(&t.ID, &t.UserID, &t.SeatID, &t.ProjectionID, &t.PriceCents, &t.Reference, &t.CreatedAt)
}

// Purchase inserts one ticket per seat and increments the buyer's bonus
// points by one per ticket, all within a single transaction. The
// reference ties the tickets of this purchase together. A concurrent
// purchase of any of the seats surfaces as ErrDuplicate and rolls the
// whole purchase back.
func (r *TicketRepo) Purchase(ctx context.Context, userID, projectionID uint64, seatIDs []uint64, priceCents uint32, reference string) ([]model.Ticket, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const qInsert = `INSERT INTO tickets (user_id, seat_id, projection_id, price_cents, reference)
	                 VALUES (?, ?, ?, ?, ?)`
	ids := make([]uint64, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		var res sql.Result
		res, err = tx.ExecContext(ctx, qInsert, userID, seatID, projectionID, priceCents, reference)
		if err != nil {
			err = duplicateOr(err)
			return nil, err
		}
		var id int64
		if id, err = res.LastInsertId(); err != nil {
			return nil, err
		}
		ids = append(ids, uint64(id))
	}

	// One bonus point per ticket bought in this request.
	const qBonus = "UPDATE users SET bonus_points = bonus_points + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err = tx.ExecContext(ctx, qBonus, len(seatIDs), userID); err != nil {
		return nil, err
	}

	// Select the created rows back so callers get populated timestamps.
	const qSelect = "SELECT " + ticketCols + " FROM tickets WHERE id = ?"
	tickets := make([]model.Ticket, 0, len(ids))
	for _, id := range ids {
		var t model.Ticket
		if err = scanTicket(tx.QueryRowContext(ctx, qSelect, id), &t); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// GetByID fetches a ticket, ErrTicketNotFound when missing.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	const q = "SELECT " + ticketCols + " FROM tickets WHERE id = ?"
	var t model.Ticket
	if err := scanTicket(r.db.QueryRowContext(ctx, q, id), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all tickets ordered by id.
func (r *TicketRepo) List(ctx context.Context) ([]model.Ticket, error) {
	const q = "SELECT " + ticketCols + " FROM tickets ORDER BY id"
	return r.queryList(ctx, q)
}

// ListByUser returns the user's tickets, newest first.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	const q = "SELECT " + ticketCols + " FROM tickets WHERE user_id = ? ORDER BY created_at DESC, id DESC"
	return r.queryList(ctx, q, userID)
}

// ListByProjection returns all tickets sold for a projection.
func (r *TicketRepo) ListByProjection(ctx context.Context, projectionID uint64) ([]model.Ticket, error) {
	const q = "SELECT " + ticketCols + " FROM tickets WHERE projection_id = ? ORDER BY id"
	return r.queryList(ctx, q, projectionID)
}

func (r *TicketRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Ticket, 0)
	for rows.Next() {
		var t model.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update re-seats or re-prices a ticket. A seat collision on the unique
// (projection_id, seat_id) key surfaces as ErrDuplicate.
func (r *TicketRepo) Update(ctx context.Context, t *model.Ticket) error {
	const q = "UPDATE tickets SET seat_id = ?, price_cents = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, t.SeatID, t.PriceCents, t.ID); err != nil {
		return duplicateOr(err)
	}
	return nil
}

// ExistsForSeat reports whether the seat is already ticketed for the
// projection.
func (r *TicketRepo) ExistsForSeat(ctx context.Context, projectionID, seatID uint64) (bool, error) {
	const q = "SELECT 1 FROM tickets WHERE projection_id = ? AND seat_id = ? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, projectionID, seatID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// ExistsForUser reports whether the user holds any ticket. Used as the
// user deletion guard.
func (r *TicketRepo) ExistsForUser(ctx context.Context, userID uint64) (bool, error) {
	const q = "SELECT 1 FROM tickets WHERE user_id = ? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Delete cancels a ticket and takes the matching bonus point back from
// the buyer, both within one transaction. ErrTicketNotFound when the
// ticket does not exist.
func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
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

	var userID uint64
	if err = tx.QueryRowContext(ctx, "SELECT user_id FROM tickets WHERE id = ?", id).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrTicketNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM tickets WHERE id = ?", id); err != nil {
		return err
	}
	const qBonus = `UPDATE users
	                SET bonus_points = IF(bonus_points > 0, bonus_points - 1, 0),
	                    updated_at = CURRENT_TIMESTAMP
	                WHERE id = ?`
	_, err = tx.ExecContext(ctx, qBonus, userID)
	return err
}
