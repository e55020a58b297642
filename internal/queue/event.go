// Package queue defines the ticket.purchased event, its publisher and
// the background consumer that writes purchases to logs/tickets.log.
package queue

// TicketPurchasedEvent is published after a purchase transaction
// commits. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type TicketPurchasedEvent struct {
	Reference        string   `json:"reference"`
	UserID           uint64   `json:"user_id"`
	ProjectionID     uint64   `json:"projection_id"`
	SeatIDs          []uint64 `json:"seat_ids"`
	TicketCount      int      `json:"ticket_count"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	PurchasedAt      string   `json:"purchased_at"`
}
