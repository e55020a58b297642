package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-management/internal/service"
)

// MovieHandler exposes the movie endpoints, including the browse
// queries available to guests.
type MovieHandler struct {
	svc *service.MovieService
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(svc *service.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

type movieBody struct {
	Title    string  `json:"title"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
	HasOscar bool    `json:"has_oscar"`
}

// List handles GET /v1/movies.
func (h *MovieHandler) List(c echo.Context) error {
	items, err := h.svc.GetAll(c.Request().Context())
	return respondList(c, items, err)
}

// Get handles GET /v1/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByID(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}

// Search handles GET /v1/movies/search?title=...
func (h *MovieHandler) Search(c echo.Context) error {
	items, err := h.svc.SearchByTitle(c.Request().Context(), c.QueryParam("title"))
	return respondList(c, items, err)
}

// ByYear handles GET /v1/movies/year/:year.
func (h *MovieHandler) ByYear(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid year")
	}
	items, err := h.svc.GetByYear(c.Request().Context(), year)
	return respondList(c, items, err)
}

// ByTag handles GET /v1/tags/:id/movies.
func (h *MovieHandler) ByTag(c echo.Context) error {
	tagID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.GetByTag(c.Request().Context(), tagID)
	return respond(c, http.StatusOK, res, err)
}

// Top handles GET /v1/movies/top.
func (h *MovieHandler) Top(c echo.Context) error {
	items, err := h.svc.GetTop(c.Request().Context())
	return respondList(c, items, err)
}

// Create handles POST /v1/movies.
func (h *MovieHandler) Create(c echo.Context) error {
	var body movieBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.Create(c.Request().Context(), service.MovieInput(body))
	return respond(c, http.StatusCreated, res, err)
}

// Update handles PUT /v1/movies/:id.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var body movieBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.svc.Update(c.Request().Context(), id, service.MovieInput(body))
	return respond(c, http.StatusOK, res, err)
}

// Activate handles POST /v1/movies/:id/activate.
func (h *MovieHandler) Activate(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.Activate(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}

// Deactivate handles POST /v1/movies/:id/deactivate.
func (h *MovieHandler) Deactivate(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.Deactivate(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}

// AttachTag handles POST /v1/movies/:id/tags/:tagId.
func (h *MovieHandler) AttachTag(c echo.Context) error {
	movieID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	tagID, err := parseID(c, "tagId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid tag id")
	}
	res, err := h.svc.AttachTag(c.Request().Context(), movieID, tagID)
	return respond(c, http.StatusOK, res, err)
}

// DetachTag handles DELETE /v1/movies/:id/tags/:tagId.
func (h *MovieHandler) DetachTag(c echo.Context) error {
	movieID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	tagID, err := parseID(c, "tagId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid tag id")
	}
	res, err := h.svc.DetachTag(c.Request().Context(), movieID, tagID)
	return respond(c, http.StatusOK, res, err)
}

// Delete handles DELETE /v1/movies/:id.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.Delete(c.Request().Context(), id)
	return respond(c, http.StatusOK, res, err)
}
