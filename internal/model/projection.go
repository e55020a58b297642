package model

import "time"

// Projection is a scheduled screening of a movie in an auditorium at a
// specific time. No two projections may share the same auditorium and
// start time, and a projection cannot be scheduled in the past.
//
// Fields:
//  ID           – primary key identifier.
//  MovieID      – movie being screened.
//  AuditoriumID – auditorium hosting the screening.
//  StartsAt     – start time (UTC).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Projection struct {
	ID           uint64    `json:"id"`            // projections.id
	MovieID      uint64    `json:"movie_id"`      // projections.movie_id
	AuditoriumID uint64    `json:"auditorium_id"` // projections.auditorium_id
	StartsAt     time.Time `json:"starts_at"`     // projections.starts_at
	CreatedAt    time.Time `json:"created_at"`    // projections.created_at
	UpdatedAt    time.Time `json:"updated_at"`    // projections.updated_at
}
