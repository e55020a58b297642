package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-management/internal/service"
)

// SeatHandler exposes the seat endpoints.
type SeatHandler struct {
	svc *service.SeatService
}

// NewSeatHandler constructs a SeatHandler.
func NewSeatHandler(svc *service.SeatService) *SeatHandler {
	return &SeatHandler{svc: svc}
}

// List handles GET /v1/seats.
func (h *SeatHandler) List(c echo.Context) error {
	items, err := h.svc.GetAll(c.Request().Context())
	return respondList(c, items, err)
}

// ListByAuditorium handles GET /v1/auditoriums/:id/seats.
func (h *SeatHandler) ListByAuditorium(c echo.Context) error {
	auditoriumID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByAuditorium(c.Request().Context(), auditoriumID)
	return respond(c, http.StatusOK, res, err)
}

// Get handles GET /v1/seats/:id.
func (h *SeatHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByID(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}

// Create handles POST /v1/seats.
func (h *SeatHandler) Create(c echo.Context) error {
	var body struct {
		AuditoriumID uint64 `json:"auditorium_id"`
		Row          uint32 `json:"row"`
		Number       uint32 `json:"number"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.Create(c.Request().Context(), body.AuditoriumID, body.Row, body.Number)
	return respond(c, http.StatusCreated, res, err)
}

// Update handles PUT /v1/seats/:id.
func (h *SeatHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Row    uint32 `json:"row"`
		Number uint32 `json:"number"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.Update(c.Request().Context(), id, body.Row, body.Number)
	return respond(c, http.StatusOK, res, err)
}

// Delete handles DELETE /v1/seats/:id.
func (h *SeatHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.Delete(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}
