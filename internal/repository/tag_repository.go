// Repository methods for tags. Tag names are unique case-insensitively;
// the tags table uses a case-insensitive collation so the unique key
// matches the service-level check.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-management/internal/model"
)

// ErrTagNotFound is returned when a tag cannot be found in the DB.
var ErrTagNotFound = errors.New("tag not found")

// TagRepo encapsulates all database queries related to tags.
type TagRepo struct {
	db *sql.DB
}

// NewTagRepo constructs a TagRepo with the provided DB handle.
func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

// Create inserts a new tag. ErrDuplicate on a lost uniqueness race.
func (r *TagRepo) Create(ctx context.Context, t *model.Tag) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO tags (name) VALUES (?)", t.Name)
	if err != nil {
		return duplicateOr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a tag by its ID, ErrTagNotFound when missing.
func (r *TagRepo) GetByID(ctx context.Context, id uint64) (*model.Tag, error) {
	var t model.Tag
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM tags WHERE id = ?", id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all tags ordered by name.
func (r *TagRepo) List(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM tags ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ExistsByName reports whether a tag with the name exists, ignoring
// case, optionally excluding one tag ID (for renames).
func (r *TagRepo) ExistsByName(ctx context.Context, name string, excludeID uint64) (bool, error) {
	const q = "SELECT 1 FROM tags WHERE LOWER(name) = LOWER(?) AND id <> ? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, name, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// UpdateName renames a tag. ErrTagNotFound when no row is affected,
// ErrDuplicate when the new name collides.
func (r *TagRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE tags SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return duplicateOr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTagNotFound
	}
	return nil
}

// Delete removes a tag and detaches it from all movies in one
// transaction. ErrTagNotFound when the tag does not exist.
func (r *TagRepo) Delete(ctx context.Context, id uint64) error {
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
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM tags WHERE id = ?", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrTagNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM movie_tags WHERE tag_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	return err
}
