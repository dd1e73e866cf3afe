// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/alcolens/alcolens-api/internal/config"
	"github.com/alcolens/alcolens-api/internal/handler"
	"github.com/alcolens/alcolens-api/internal/middleware"
)

// RegisterRoutes registers routes that need neither authentication nor
// Redis: currently only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the clinician auth endpoints.  Register, login,
// refresh and logout live under /v1/auth without middleware; /v1/me sits
// behind JWT validation and the DOCTOR role check.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(handler.RoleDoctor))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated patient-facing endpoints.
// Invite validation and submission share the token-bucket limiter; the
// question catalog is cached since it only changes on deploy.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(rlCfg, rdb)

	e.GET("/v1/questions", p.GetQuestions, middleware.CacheGET(rdb, 10*time.Minute))
	e.GET("/v1/invites/validate", p.ValidateInvite, limiter)
	e.POST("/v1/responses", p.SubmitResponse, limiter)
}

// RegisterDoctor registers the clinician-only patient and invite
// endpoints behind JWT and role middleware.
func RegisterDoctor(e *echo.Echo, d *handler.DoctorHandler, jwtSecret string) {
	g := e.Group("/v1/doctor")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(handler.RoleDoctor))

	g.POST("/patients", d.CreatePatient)
	g.POST("/patients/:id/invites", d.IssueInvite)
	g.GET("/results", d.ListResults)
}
