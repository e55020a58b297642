package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-management/internal/service"
)

// CinemaHandler exposes the cinema endpoints.
type CinemaHandler struct {
	svc *service.CinemaService
}

// NewCinemaHandler constructs a CinemaHandler.
func NewCinemaHandler(svc *service.CinemaService) *CinemaHandler {
	return &CinemaHandler{svc: svc}
}

// List handles GET /v1/cinemas.
func (h *CinemaHandler) List(c echo.Context) error {
	items, err := h.svc.GetAll(c.Request().Context())
	return respondList(c, items, err)
}

// Get handles GET /v1/cinemas/:id.
func (h *CinemaHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByID(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}

// Create handles POST /v1/cinemas.
func (h *CinemaHandler) Create(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.Create(c.Request().Context(), body.Name)
	return respond(c, http.StatusCreated, res, err)
}

// CreateWithAuditorium handles POST /v1/cinemas/with-auditorium: a new
// cinema and its first auditorium in one request.
func (h *CinemaHandler) CreateWithAuditorium(c echo.Context) error {
	var body struct {
		Name       string `json:"name"`
		Auditorium struct {
			Name        string `json:"name"`
			SeatRows    uint32 `json:"seat_rows"`
			SeatsPerRow uint32 `json:"seats_per_row"`
		} `json:"auditorium"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.CreateWithAuditorium(c.Request().Context(),
		body.Name, body.Auditorium.Name, body.Auditorium.SeatRows, body.Auditorium.SeatsPerRow)
	return respond(c, http.StatusCreated, res, err)
}

// Update handles PUT /v1/cinemas/:id.
func (h *CinemaHandler) Update(c echo.Context) error {
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

// Delete handles DELETE /v1/cinemas/:id.
func (h *CinemaHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.Delete(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}
