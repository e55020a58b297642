package model

// Seat is a single seat inside an auditorium. The (row, number,
// auditorium) triple is unique; the database carries a matching unique
// key so two concurrent writes cannot both land.
//
// Fields:
//  ID           – primary key identifier.
//  AuditoriumID – owning auditorium (seats are cascade-deleted with it).
//  Row          – 1-based row position.
//  Number       – 1-based seat position within the row.
type Seat struct {
	ID           uint64 `json:"id"`            // seats.id
	AuditoriumID uint64 `json:"auditorium_id"` // seats.auditorium_id
	Row          uint32 `json:"row"`           // seats.row_no
	Number       uint32 `json:"number"`        // seats.seat_no
}
