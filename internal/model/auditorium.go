package model

import "time"

// Auditorium represents a single screening room inside a cinema. An
// auditorium's name must be unique within its cinema but may repeat
// across cinemas. Creating an auditorium also generates its seat grid
// (SeatRows rows of SeatsPerRow seats each), so both dimensions are
// persisted on the auditorium row.
//
// Fields:
//  ID          – primary key identifier.
//  CinemaID    – owning cinema (auditoriums are cascade-deleted with it).
//  Name        – name, unique per cinema (max 50 chars).
//  SeatRows    – number of seat rows, 1..20.
//  SeatsPerRow – seats in each row, 1..20.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Auditorium struct {
	ID          uint64    `json:"id"`            // auditoriums.id
	CinemaID    uint64    `json:"cinema_id"`     // auditoriums.cinema_id
	Name        string    `json:"name"`          // auditoriums.name
	SeatRows    uint32    `json:"seat_rows"`     // auditoriums.seat_rows
	SeatsPerRow uint32    `json:"seats_per_row"` // auditoriums.seats_per_row
	CreatedAt   time.Time `json:"created_at"`    // auditoriums.created_at
	UpdatedAt   time.Time `json:"updated_at"`    // auditoriums.updated_at
}
