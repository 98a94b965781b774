package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/office-seat-reservation/internal/config"
	"github.com/iliyamo/office-seat-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/office-seat-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/office-seat-reservation/internal/model"
)

// Handlers bundles every handler the router wires up, so the wiring
// in main stays a single call.
type Handlers struct {
	Auth     *handler.AuthHandler
	Seats    *handler.SeatHandler
	Bookings *handler.BookingHandler
	Leaves   *handler.LeaveHandler
	Stream   *handler.StreamHandler
	Activity *handler.ActivityHandler
	Schedule *handler.ScheduleHandler
	Admin    *handler.AdminHandler
}

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check.
func RegisterRoutes(e *echo.Echo) {
	// The /healthz endpoint is used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Session bootstrap operations: no existing token required.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and returns a new pair.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a refresh_token body and invalidates that
	// session without requiring a JWT.
	g.POST("/logout", a.Logout)

	// Protected profile endpoints live under /v1 behind JWTAuth.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleUser, model.RoleAdmin))
	auth.GET("/me", a.Me)
	// With a bearer token and an empty body this revokes every
	// session of the employee.
	auth.POST("/logout", a.Logout)
}

// RegisterAPI registers the seat-map API under /api.  The whole group
// sits behind the Redis token-bucket rate limiter; the schedule
// endpoint additionally goes through the response cache since its
// output is a pure function of the date.  Mutating and per-employee
// endpoints require a valid access token.
func RegisterAPI(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	api := e.Group("/api")
	api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Public reads.
	api.GET("/seats", h.Seats.Get)
	api.GET("/time", h.Schedule.Time)
	api.GET("/schedule", h.Schedule.Get,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	api.GET("/activity", h.Activity.Recent)
	// The live feed is public too: it carries the same information
	// as the seat map.
	api.GET("/stream", h.Stream.Stream)

	// Authenticated operations.
	authed := api.Group("", middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin))
	authed.POST("/book", h.Bookings.Book)
	authed.POST("/release", h.Bookings.Release)
	authed.POST("/leave/declare", h.Leaves.Declare)
	authed.POST("/leave/cancel", h.Leaves.Cancel)
	authed.GET("/leave/status", h.Leaves.Status)
	authed.GET("/my-bookings", h.Activity.MyBookings)
}

// RegisterAdmin registers the management panel under /v1/admin.  All
// routes require the admin role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin))
	g.GET("/employees", h.ListEmployees)
	g.POST("/employees", h.CreateEmployee)
	g.DELETE("/employees/:id", h.DeleteEmployee)
	g.GET("/bookings", h.ListBookings)
	g.GET("/leaves", h.ListLeaves)
}
