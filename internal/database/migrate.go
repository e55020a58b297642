package database

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations holds the schema DDL in dependency order. Every statement
// is idempotent (CREATE TABLE IF NOT EXISTS) so startup can re-run them
// safely. The unique keys are part of the correctness story: the
// services check uniqueness first for a friendly message, and these
// constraints decide the winner when two requests race.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cinemas (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name       VARCHAR(255)    NOT NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_cinemas_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS auditoriums (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		cinema_id     BIGINT UNSIGNED NOT NULL,
		name          VARCHAR(50)     NOT NULL,
		seat_rows     INT UNSIGNED    NOT NULL,
		seats_per_row INT UNSIGNED    NOT NULL,
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_auditoriums_cinema_name (cinema_id, name),
		CONSTRAINT fk_auditoriums_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seats (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		auditorium_id BIGINT UNSIGNED NOT NULL,
		row_no        INT UNSIGNED    NOT NULL,
		seat_no       INT UNSIGNED    NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_seats_position (auditorium_id, row_no, seat_no),
		CONSTRAINT fk_seats_auditorium FOREIGN KEY (auditorium_id) REFERENCES auditoriums (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS movies (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		title      VARCHAR(255)    NOT NULL,
		year       INT             NOT NULL,
		rating     DECIMAL(3,1)    NOT NULL,
		is_current TINYINT(1)      NOT NULL DEFAULT 0,
		has_oscar  TINYINT(1)      NOT NULL DEFAULT 0,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	// utf8mb4_0900_ai_ci is accent/case insensitive, so the unique key
	// already treats "Drama" and "drama" as the same name.
	`CREATE TABLE IF NOT EXISTS tags (
		id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(100)    NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_tags_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci`,

	`CREATE TABLE IF NOT EXISTS movie_tags (
		movie_id BIGINT UNSIGNED NOT NULL,
		tag_id   BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (movie_id, tag_id),
		CONSTRAINT fk_movie_tags_movie FOREIGN KEY (movie_id) REFERENCES movies (id),
		CONSTRAINT fk_movie_tags_tag   FOREIGN KEY (tag_id)   REFERENCES tags (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS projections (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		movie_id      BIGINT UNSIGNED NOT NULL,
		auditorium_id BIGINT UNSIGNED NOT NULL,
		starts_at     DATETIME        NOT NULL,
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_projections_slot (auditorium_id, starts_at),
		CONSTRAINT fk_projections_movie      FOREIGN KEY (movie_id)      REFERENCES movies (id),
		CONSTRAINT fk_projections_auditorium FOREIGN KEY (auditorium_id) REFERENCES auditoriums (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_name     VARCHAR(100)    NOT NULL,
		first_name    VARCHAR(100)    NOT NULL DEFAULT '',
		last_name     VARCHAR(100)    NOT NULL DEFAULT '',
		role          VARCHAR(20)     NOT NULL DEFAULT 'USER',
		bonus_points  INT UNSIGNED    NOT NULL DEFAULT 0,
		password_hash VARCHAR(100)    NOT NULL,
		is_active     TINYINT(1)      NOT NULL DEFAULT 1,
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_user_name (user_name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id       BIGINT UNSIGNED NOT NULL,
		seat_id       BIGINT UNSIGNED NOT NULL,
		projection_id BIGINT UNSIGNED NOT NULL,
		price_cents   INT UNSIGNED    NOT NULL,
		reference     CHAR(36)        NOT NULL,
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_tickets_seat_projection (projection_id, seat_id),
		CONSTRAINT fk_tickets_user       FOREIGN KEY (user_id)       REFERENCES users (id),
		CONSTRAINT fk_tickets_seat       FOREIGN KEY (seat_id)       REFERENCES seats (id),
		CONSTRAINT fk_tickets_projection FOREIGN KEY (projection_id) REFERENCES projections (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64)        NOT NULL,
		expires_at DATETIME        NOT NULL,
		revoked_at DATETIME        NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate runs all schema statements in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
