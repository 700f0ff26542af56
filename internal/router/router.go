package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/joifzeio/interfac/internal/config"     // cache and rate limit settings
	"github.com/joifzeio/interfac/internal/handler"    // import the handlers that implement business logic
	"github.com/joifzeio/interfac/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/joifzeio/interfac/internal/repository" // role constants
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while the session introspection endpoint lives under the protected /v1
// group.  The jwtSecret is used to verify tokens on protected routes.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (login, refresh, logout).  Each of
	// these handlers is responsible for generating or exchanging tokens.
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle dashboard login at /v1/auth/login.
	g.POST("/login", a.Login)
	// Register a POST endpoint to refresh access tokens at /v1/auth/refresh. This rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Register a POST endpoint to log out using a refresh token.  The handler
	// accepts a JSON body containing a `refresh_token` and will invalidate
	// that token.  If the token is valid, a 204 response is returned;
	// otherwise 400/401/500 are possible depending on the error.
	g.POST("/logout", a.Logout)

	// Create another group for routes that require a valid access token.  All
	// handlers registered on this group will execute the JWTAuth middleware
	// before being invoked.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Both dashboard roles may introspect their own session.
	auth.Use(middleware.RequireRole(repository.RoleSuperAdmin, repository.RoleAdmin))
	// Register a GET endpoint at /v1/me that returns the authenticated account's information.
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated marketing-page endpoints on
// the provided Echo instance.  These routes carry the Redis response cache
// and the token-bucket rate limiter but no JWT or role middleware.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, n *handler.NewsletterHandler, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	g.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// Upcoming events, ordered by machine date ascending
	g.GET("/events", p.GetUpcoming)
	// Past events, newest created first
	g.GET("/events/past", p.GetPast)
	// Legacy flat shape for the older marketing pages
	g.GET("/events/flat", p.GetFlat)
	// Embeddable ticket widget URL for one event
	g.GET("/events/:id/ticket-url", p.GetTicketURL)
	// Newsletter signup ({email, city}); POST is never cached, only rate limited
	g.POST("/newsletter", n.Subscribe)
}

// RegisterAdmin registers the dashboard's management routes.  Every route in
// the group requires a valid JWT; account management is further gated to
// SUPER_ADMIN by a second role check on the individual routes.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, auth *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(repository.RoleSuperAdmin, repository.RoleAdmin))

	// Event management (full replace on update, idempotent delete)
	g.GET("/events", a.ListEvents)
	g.POST("/events", a.CreateEvent)
	g.POST("/events/import", a.ImportFlat)
	g.PUT("/events/:id", a.UpdateEvent)
	g.DELETE("/events/:id", a.DeleteEvent)

	// Tour management; creating a tour expands it into one event per city
	g.GET("/tours", a.ListTours)
	g.POST("/tours", a.CreateTour)
	g.DELETE("/tours/:id", a.DeleteTour)

	// Account management is SUPER_ADMIN only
	super := middleware.RequireRole(repository.RoleSuperAdmin)
	g.GET("/admins", auth.ListAdmins, super)
	g.POST("/admins", auth.AddAdmin, super)
}
