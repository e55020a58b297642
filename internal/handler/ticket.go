package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-management/internal/queue"
	"github.com/iliyamo/cinema-management/internal/service"
)

// TicketHandler exposes the ticket endpoints.
type TicketHandler struct {
	svc *service.TicketService
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(svc *service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// Purchase handles POST /v1/tickets. The buyer is the authenticated
// user; one ticket is booked per requested seat. On success a
// ticket.purchased event is published best effort after the purchase
// committed.
func (h *TicketHandler) Purchase(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var body struct {
		ProjectionID uint64   `json:"projection_id"`
		SeatIDs      []uint64 `json:"seat_ids"`
		PriceCents   uint32   `json:"price_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.PurchaseTickets(c.Request().Context(), service.PurchaseInput{
		UserID:       userID,
		ProjectionID: body.ProjectionID,
		SeatIDs:      body.SeatIDs,
		PriceCents:   body.PriceCents,
	})
	if err == nil && res.IsSuccessful() {
		p := res.Model()
		seatIDs := make([]uint64, 0, len(p.Tickets))
		var total uint32
		for _, t := range p.Tickets {
			seatIDs = append(seatIDs, t.SeatID)
			total += t.PriceCents
		}
		// Best effort; the purchase is already committed. The request
		// context is not used because it dies with the response.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = queue.PublishTicketPurchased(ctx, queue.TicketPurchasedEvent{
				Reference:        p.Reference,
				UserID:           userID,
				ProjectionID:     body.ProjectionID,
				SeatIDs:          seatIDs,
				TicketCount:      len(p.Tickets),
				TotalAmountCents: total,
				PurchasedAt:      time.Now().UTC().Format(time.RFC3339),
			})
		}()
	}
	return respond(c, http.StatusCreated, res, err)
}

// List handles GET /v1/tickets.
func (h *TicketHandler) List(c echo.Context) error {
	items, err := h.svc.GetAll(c.Request().Context())
	return respondList(c, items, err)
}

// Get handles GET /v1/tickets/:id.
func (h *TicketHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByID(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}

// Mine handles GET /v1/tickets/mine: the authenticated user's tickets.
func (h *TicketHandler) Mine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	res, err := h.svc.GetByUser(c.Request().Context(), userID)
	return respond(c, http.StatusOK, res, err)
}

// ByUser handles GET /v1/users/:id/tickets.
func (h *TicketHandler) ByUser(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByUser(c.Request().Context(), userID)
	return respond(c, http.StatusOK, res, err)
}

// ByProjection handles GET /v1/projections/:id/tickets.
func (h *TicketHandler) ByProjection(c echo.Context) error {
	projectionID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByProjection(c.Request().Context(), projectionID)
	return respond(c, http.StatusOK, res, err)
}

// Update handles PUT /v1/tickets/:id: re-seating or re-pricing.
func (h *TicketHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		SeatID     uint64 `json:"seat_id"`
		PriceCents uint32 `json:"price_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.Update(c.Request().Context(), id, body.SeatID, body.PriceCents)
	return respond(c, http.StatusOK, res, err)
}

// Delete handles DELETE /v1/tickets/:id.
func (h *TicketHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.Delete(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}
