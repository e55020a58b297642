// Repository methods for users. UserName is the unique login identifier
// and is normalized to lower case before every read or write.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-management/internal/model"
)

// ErrUserNotFound is returned when a user cannot be found in the DB.
var ErrUserNotFound = errors.New("user not found")

// UserRepo encapsulates all database queries related to users.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userCols = "id, user_name, first_name, last_name, role, bonus_points, password_hash, is_active, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }, u *model.User) error {
	return row.Scan(&u.ID, &u.UserName, &u.FirstName, &u.LastName, &u.Role,
		&u.BonusPoints, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

// Create inserts a new user and selects it back fully populated. The
// PasswordHash field must already contain a bcrypt hash. ErrDuplicate on
// a lost user-name uniqueness race.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.UserName = strings.ToLower(strings.TrimSpace(u.UserName))
	const qInsert = `INSERT INTO users (user_name, first_name, last_name, role, password_hash)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, u.UserName, u.FirstName, u.LastName, u.Role, u.PasswordHash)
	if err != nil {
		return duplicateOr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)

	const qSelect = "SELECT " + userCols + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRowContext(ctx, qSelect, u.ID), u)
}

// GetByID fetches a user by id, ErrUserNotFound when missing.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = "SELECT " + userCols + " FROM users WHERE id = ?"
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, id), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByUserName fetches a user by normalized user name.
func (r *UserRepo) GetByUserName(ctx context.Context, userName string) (*model.User, error) {
	const q = "SELECT " + userCols + " FROM users WHERE user_name = ? LIMIT 1"
	var u model.User
	err := scanUser(r.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(userName))), &u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	const q = "SELECT " + userCols + " FROM users ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ExistsByUserName reports whether the normalized user name is taken.
func (r *UserRepo) ExistsByUserName(ctx context.Context, userName string) (bool, error) {
	const q = "SELECT 1 FROM users WHERE user_name = ? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(userName))).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Update rewrites the mutable profile fields (names and role).
// ErrUserNotFound when no row matches.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	const q = `UPDATE users
	           SET first_name = ?, last_name = ?, role = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, u.FirstName, u.LastName, u.Role, u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user and their refresh tokens in one transaction.
// The service layer rejects the delete while the user holds tickets.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
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
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrUserNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE user_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}
