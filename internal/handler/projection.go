package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-management/internal/service"
)

// ProjectionHandler exposes the projection endpoints.
type ProjectionHandler struct {
	svc *service.ProjectionService
}

// NewProjectionHandler constructs a ProjectionHandler.
func NewProjectionHandler(svc *service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{svc: svc}
}

type projectionBody struct {
	MovieID      uint64 `json:"movie_id"`
	AuditoriumID uint64 `json:"auditorium_id"`
	StartsAt     string `json:"starts_at"`
}

// parse converts the wire payload into a service input. The timestamp
// is RFC3339.
func (b projectionBody) parse() (service.ProjectionInput, error) {
	at, err := time.Parse(time.RFC3339, b.StartsAt)
	if err != nil {
		return service.ProjectionInput{}, err
	}
	return service.ProjectionInput{
		MovieID:      b.MovieID,
		AuditoriumID: b.AuditoriumID,
		StartsAt:     at,
	}, nil
}

// List handles GET /v1/projections.
func (h *ProjectionHandler) List(c echo.Context) error {
	items, err := h.svc.GetAll(c.Request().Context())
	return respondList(c, items, err)
}

// Get handles GET /v1/projections/:id.
func (h *ProjectionHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByID(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}

// ByMovie handles GET /v1/movies/:id/projections.
func (h *ProjectionHandler) ByMovie(c echo.Context) error {
	movieID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByMovie(c.Request().Context(), movieID)
	return respond(c, http.StatusOK, res, err)
}

// ByAuditorium handles GET /v1/auditoriums/:id/projections.
func (h *ProjectionHandler) ByAuditorium(c echo.Context) error {
	auditoriumID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByAuditorium(c.Request().Context(), auditoriumID)
	return respond(c, http.StatusOK, res, err)
}

// Create handles POST /v1/projections.
func (h *ProjectionHandler) Create(c echo.Context) error {
	var body projectionBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	in, err := body.parse()
	if err != nil {
		return fail(c, http.StatusBadRequest, "starts_at must be an RFC3339 timestamp")
	}
	res, err := h.svc.Create(c.Request().Context(), in)
	return respond(c, http.StatusCreated, res, err)
}

// Update handles PUT /v1/projections/:id.
func (h *ProjectionHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body projectionBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	in, err := body.parse()
	if err != nil {
		return fail(c, http.StatusBadRequest, "starts_at must be an RFC3339 timestamp")
	}
	res, err := h.svc.Update(c.Request().Context(), id, in)
	return respond(c, http.StatusOK, res, err)
}

// Delete handles DELETE /v1/projections/:id.
func (h *ProjectionHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.Delete(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}
