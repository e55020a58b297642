package model

import "time"

// Cinema represents a venue that contains one or more auditoriums. The
// cinema name is unique across the whole system; the database enforces
// this with a unique key in addition to the service-level check.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique, human-friendly venue name (max 255 chars).
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Cinema struct {
	ID        uint64    `json:"id"`         // cinemas.id
	Name      string    `json:"name"`       // cinemas.name
	CreatedAt time.Time `json:"created_at"` // cinemas.created_at
	UpdatedAt time.Time `json:"updated_at"` // cinemas.updated_at
}
