package model

import "time"

// Ticket grants one user one seat at one projection. A (seat,
// projection) pair admits at most one ticket; the database carries a
// unique key as the final backstop against double booking. Tickets
// bought in the same request share a purchase Reference (UUID) which is
// also carried on the published ticket.purchased event.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – buyer.
//  SeatID       – booked seat.
//  ProjectionID – projection the seat is booked for.
//  PriceCents   – price paid, in cents.
//  Reference    – purchase reference shared by tickets of one request.
//  CreatedAt    – timestamp of purchase.
type Ticket struct {
	ID           uint64    `json:"id"`            // tickets.id
	UserID       uint64    `json:"user_id"`       // tickets.user_id
	SeatID       uint64    `json:"seat_id"`       // tickets.seat_id
	ProjectionID uint64    `json:"projection_id"` // tickets.projection_id
	PriceCents   uint32    `json:"price_cents"`   // tickets.price_cents
	Reference    string    `json:"reference"`     // tickets.reference
	CreatedAt    time.Time `json:"created_at"`    // tickets.created_at
}
