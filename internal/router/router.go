// Package router maps URLs to handlers and applies the authentication
// and role middleware per group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-management/internal/handler"
	"github.com/iliyamo/cinema-management/internal/middleware"
	"github.com/iliyamo/cinema-management/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth       *handler.AuthHandler
	Cinema     *handler.CinemaHandler
	Auditorium *handler.AuditoriumHandler
	Seat       *handler.SeatHandler
	Movie      *handler.MovieHandler
	Tag        *handler.TagHandler
	Projection *handler.ProjectionHandler
	Ticket     *handler.TicketHandler
	User       *handler.UserHandler
}

// Register wires all routes. Browse endpoints are public; purchases
// need an authenticated USER; movie and tag management needs
// SUPER_USER; venue, projection and user administration needs ADMIN.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	// Auth lifecycle.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout, middleware.JWTAuth(jwtSecret))
	auth.GET("/me", h.Auth.Me, middleware.JWTAuth(jwtSecret))

	// Public browse.
	e.GET("/v1/cinemas", h.Cinema.List)
	e.GET("/v1/cinemas/:id", h.Cinema.Get)
	e.GET("/v1/cinemas/:id/auditoriums", h.Auditorium.ListByCinema)
	e.GET("/v1/auditoriums", h.Auditorium.List)
	e.GET("/v1/auditoriums/:id", h.Auditorium.Get)
	e.GET("/v1/auditoriums/:id/seats", h.Seat.ListByAuditorium)
	e.GET("/v1/auditoriums/:id/projections", h.Projection.ByAuditorium)
	e.GET("/v1/seats", h.Seat.List)
	e.GET("/v1/seats/:id", h.Seat.Get)
	e.GET("/v1/movies", h.Movie.List)
	e.GET("/v1/movies/top", h.Movie.Top)
	e.GET("/v1/movies/search", h.Movie.Search)
	e.GET("/v1/movies/year/:year", h.Movie.ByYear)
	e.GET("/v1/movies/:id", h.Movie.Get)
	e.GET("/v1/movies/:id/projections", h.Projection.ByMovie)
	e.GET("/v1/tags", h.Tag.List)
	e.GET("/v1/tags/:id", h.Tag.Get)
	e.GET("/v1/tags/:id/movies", h.Movie.ByTag)
	e.GET("/v1/projections", h.Projection.List)
	e.GET("/v1/projections/:id", h.Projection.Get)

	// Any authenticated role can buy tickets and see its own.
	user := e.Group("/v1", middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleSuperUser, model.RoleAdmin))
	user.POST("/tickets", h.Ticket.Purchase)
	user.GET("/tickets/mine", h.Ticket.Mine)

	// Movie and tag management.
	super := e.Group("/v1", middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleSuperUser, model.RoleAdmin))
	super.POST("/movies", h.Movie.Create)
	super.PUT("/movies/:id", h.Movie.Update)
	super.POST("/movies/:id/activate", h.Movie.Activate)
	super.POST("/movies/:id/deactivate", h.Movie.Deactivate)
	super.POST("/movies/:id/tags/:tagId", h.Movie.AttachTag)
	super.DELETE("/movies/:id/tags/:tagId", h.Movie.DetachTag)
	super.DELETE("/movies/:id", h.Movie.Delete)
	super.POST("/tags", h.Tag.Create)
	super.PUT("/tags/:id", h.Tag.Update)
	super.DELETE("/tags/:id", h.Tag.Delete)

	// Venue, schedule and account administration.
	admin := e.Group("/v1", middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin))
	admin.POST("/cinemas", h.Cinema.Create)
	admin.POST("/cinemas/with-auditorium", h.Cinema.CreateWithAuditorium)
	admin.PUT("/cinemas/:id", h.Cinema.Update)
	admin.DELETE("/cinemas/:id", h.Cinema.Delete)
	admin.POST("/auditoriums", h.Auditorium.Create)
	admin.PUT("/auditoriums/:id", h.Auditorium.Update)
	admin.DELETE("/auditoriums/:id", h.Auditorium.Delete)
	admin.POST("/seats", h.Seat.Create)
	admin.PUT("/seats/:id", h.Seat.Update)
	admin.DELETE("/seats/:id", h.Seat.Delete)
	admin.POST("/projections", h.Projection.Create)
	admin.PUT("/projections/:id", h.Projection.Update)
	admin.DELETE("/projections/:id", h.Projection.Delete)
	admin.GET("/projections/:id/tickets", h.Ticket.ByProjection)
	admin.GET("/tickets", h.Ticket.List)
	admin.GET("/tickets/:id", h.Ticket.Get)
	admin.PUT("/tickets/:id", h.Ticket.Update)
	admin.DELETE("/tickets/:id", h.Ticket.Delete)
	admin.GET("/users", h.User.List)
	admin.POST("/users", h.User.Create)
	admin.GET("/users/:id", h.User.Get)
	admin.GET("/users/:id/tickets", h.Ticket.ByUser)
	admin.PUT("/users/:id", h.User.Update)
	admin.DELETE("/users/:id", h.User.Delete)
}
