package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-management/internal/service"
)

// AuditoriumHandler exposes the auditorium endpoints.
type AuditoriumHandler struct {
	svc *service.AuditoriumService
}

// NewAuditoriumHandler constructs an AuditoriumHandler.
func NewAuditoriumHandler(svc *service.AuditoriumService) *AuditoriumHandler {
	return &AuditoriumHandler{svc: svc}
}

// List handles GET /v1/auditoriums.
func (h *AuditoriumHandler) List(c echo.Context) error {
	items, err := h.svc.GetAll(c.Request().Context())
	return respondList(c, items, err)
}

// ListByCinema handles GET /v1/cinemas/:id/auditoriums.
func (h *AuditoriumHandler) ListByCinema(c echo.Context) error {
	cinemaID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByCinema(c.Request().Context(), cinemaID)
	return respond(c, http.StatusOK, res, err)
}

// Get handles GET /v1/auditoriums/:id.
func (h *AuditoriumHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByID(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}

// Create handles POST /v1/auditoriums. The seat grid is generated with
// the auditorium.
func (h *AuditoriumHandler) Create(c echo.Context) error {
	var body struct {
		CinemaID    uint64 `json:"cinema_id"`
		Name        string `json:"name"`
		SeatRows    uint32 `json:"seat_rows"`
		SeatsPerRow uint32 `json:"seats_per_row"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.Create(c.Request().Context(), service.CreateAuditoriumInput{
		CinemaID:    body.CinemaID,
		Name:        body.Name,
		SeatRows:    body.SeatRows,
		SeatsPerRow: body.SeatsPerRow,
	})
	return respond(c, http.StatusCreated, res, err)
}

// Update handles PUT /v1/auditoriums/:id.
func (h *AuditoriumHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.Update(c.Request().Context(), id, body.Name)
	return respond(c, http.StatusOK, res, err)
}

// Delete handles DELETE /v1/auditoriums/:id.
func (h *AuditoriumHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.Delete(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}
