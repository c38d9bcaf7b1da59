package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-directory/internal/handler"
    "github.com/iliyamo/event-directory/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Used by load balancers and monitoring systems to verify the service
    // is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // /refresh rotates the refresh token; /refresh-access only issues a new
    // access token for the same session.
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout accepts a JSON body containing a `refresh_token` and
    // invalidates that token; it does not require a JWT.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
    // Revokes every active session of the caller, unlike /auth/logout which
    // only invalidates the presented refresh token.
    auth.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterEvents registers the event directory endpoints. Every route
// requires a valid access token; cacheMW additionally wraps the joined-users
// listing, the only read here whose body does not depend on the caller.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
    g := e.Group("/v1/events")
    g.Use(middleware.JWTAuth(jwtSecret))

    // Reads. Search is a POST because the filter set travels in the body.
    g.POST("/search", h.SearchEvents)
    g.GET("/:id", h.GetEvent)
    g.GET("/:id/joined", h.GetJoinedUsers, cacheMW)

    // Writes.
    g.POST("", h.CreateEvent)
    g.POST("/:id", h.EditEvent)
    g.POST("/:id/delete", h.DeleteEvent)

    // Membership.
    g.POST("/:id/join", h.JoinEvent)
    g.POST("/:id/unjoin", h.UnjoinEvent)
}
