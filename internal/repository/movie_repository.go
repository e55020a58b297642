// Repository methods for movies and their tag attachments. List queries
// load tags with the two-step pattern used throughout this codebase:
// fetch the movies first, then populate tags for all of them with one
// IN query instead of a query per movie.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-management/internal/model"
)

// ErrMovieNotFound is returned when a movie cannot be found in the DB.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo encapsulates all database queries related to movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieCols = "id, title, year, rating, is_current, has_oscar, created_at, updated_at"

func scanMovie(row interface{ Scan(...any) error }, m *model.Movie) error {
	return row.Scan(&m.ID, &m.Title, &m.Year, &m.Rating, &m.IsCurrent, &m.HasOscar, &m.CreatedAt, &m.UpdatedAt)
}

// Create inserts a new movie and selects it back fully populated.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const qInsert = `INSERT INTO movies (title, year, rating, is_current, has_oscar)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, m.Title, m.Year, m.Rating, m.IsCurrent, m.HasOscar)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	const qSelect = "SELECT " + movieCols + " FROM movies WHERE id = ?"
	if err := scanMovie(r.db.QueryRowContext(ctx, qSelect, m.ID), m); err != nil {
		return err
	}
	m.Tags = []model.Tag{}
	return nil
}

// GetByID fetches a movie with its tags, ErrMovieNotFound when missing.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = "SELECT " + movieCols + " FROM movies WHERE id = ?"
	var m model.Movie
	if err := scanMovie(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	movies := []model.Movie{m}
	if err := r.attachTags(ctx, movies); err != nil {
		return nil, err
	}
	return &movies[0], nil
}

// List returns all movies with their tags ordered by id.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	const q = "SELECT " + movieCols + " FROM movies ORDER BY id"
	return r.queryList(ctx, q)
}

// SearchByTitle returns movies whose title contains the substring,
// case-insensitive via the table collation.
func (r *MovieRepo) SearchByTitle(ctx context.Context, needle string) ([]model.Movie, error) {
	const q = "SELECT " + movieCols + " FROM movies WHERE title LIKE ? ORDER BY id"
	return r.queryList(ctx, q, "%"+needle+"%")
}

// ListByYear returns movies released in the given year.
func (r *MovieRepo) ListByYear(ctx context.Context, year int) ([]model.Movie, error) {
	const q = "SELECT " + movieCols + " FROM movies WHERE year = ? ORDER BY id"
	return r.queryList(ctx, q, year)
}

// ListByTag returns movies attached to the given tag.
func (r *MovieRepo) ListByTag(ctx context.Context, tagID uint64) ([]model.Movie, error) {
	const q = `SELECT ` + movieCols + ` FROM movies
	           WHERE id IN (SELECT movie_id FROM movie_tags WHERE tag_id = ?)
	           ORDER BY id`
	return r.queryList(ctx, q, tagID)
}

// ListTop returns the n highest rated movies: rating descending, Oscar
// winners first among equal ratings, id ascending as the final
// tie-breaker for stable output.
func (r *MovieRepo) ListTop(ctx context.Context, n int) ([]model.Movie, error) {
	const q = "SELECT " + movieCols + " FROM movies ORDER BY rating DESC, has_oscar DESC, id LIMIT ?"
	return r.queryList(ctx, q, n)
}

func (r *MovieRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachTags populates Tags for all given movies with a single IN query.
func (r *MovieRepo) attachTags(ctx context.Context, movies []model.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	index := make(map[uint64]int, len(movies))
	ids := make([]any, 0, len(movies))
	placeholders := make([]string, 0, len(movies))
	for i := range movies {
		movies[i].Tags = []model.Tag{}
		index[movies[i].ID] = i
		ids = append(ids, movies[i].ID)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT mt.movie_id, t.id, t.name
	      FROM movie_tags mt
	      JOIN tags t ON t.id = mt.tag_id
	      WHERE mt.movie_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY mt.movie_id, t.name`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var movieID uint64
		var t model.Tag
		if err := rows.Scan(&movieID, &t.ID, &t.Name); err != nil {
			return err
		}
		if i, ok := index[movieID]; ok {
			movies[i].Tags = append(movies[i].Tags, t)
		}
	}
	return rows.Err()
}

// Update rewrites the mutable movie fields. ErrMovieNotFound when no row
// matches.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
	           SET title = ?, year = ?, rating = ?, has_oscar = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Year, m.Rating, m.HasOscar, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// SetCurrent flips the is_current flag (the activate/deactivate state
// machine). ErrMovieNotFound when no row matches.
func (r *MovieRepo) SetCurrent(ctx context.Context, id uint64, current bool) error {
	const q = "UPDATE movies SET is_current = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, current, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// AttachTag links a tag to a movie. ErrDuplicate when already attached.
func (r *MovieRepo) AttachTag(ctx context.Context, movieID, tagID uint64) error {
	const q = "INSERT INTO movie_tags (movie_id, tag_id) VALUES (?, ?)"
	_, err := r.db.ExecContext(ctx, q, movieID, tagID)
	return duplicateOr(err)
}

// DetachTag removes a tag link; reports whether a link was removed.
func (r *MovieRepo) DetachTag(ctx context.Context, movieID, tagID uint64) (bool, error) {
	const q = "DELETE FROM movie_tags WHERE movie_id = ? AND tag_id = ?"
	res, err := r.db.ExecContext(ctx, q, movieID, tagID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes a movie, its tag links and its (ticketless, past)
// projections in one transaction. The service layer guards against
// future projections and sold tickets before calling this.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
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
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM movies WHERE id = ?", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrMovieNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM movie_tags WHERE movie_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM projections WHERE movie_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	return err
}
