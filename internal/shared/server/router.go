package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/analysis"
	googleauth "github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/auth"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/curriculos"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/noticias"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/profiles"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/auth"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/config"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/metrics"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/middleware"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/respond"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/trilhas"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/users"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/vagas"
)

// analysisRateRule caps paid model calls per user.
var analysisRateRule = middleware.RateLimitRule{Rate: 0.2, Burst: 3}

// RouterDeps carries everything the router needs. Handlers may be nil; their
// routes are simply not registered, which keeps partial wiring usable in
// tests.
type RouterDeps struct {
	Config            config.Config
	Tokens            *auth.Tokens
	RateLimiter       *middleware.RateLimiter
	UsersHandler      *users.Handler
	GoogleAuth        *googleauth.GoogleService
	ProfilesHandler   *profiles.Handler
	CurriculosHandler *curriculos.Handler
	AnalysisHandler   *analysis.Handler
	NoticiasHandler   *noticias.Handler
	VagasHandler      *vagas.Handler
	TrilhasHandler    *trilhas.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterPublicRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.NoticiasHandler != nil {
		deps.NoticiasHandler.RegisterPublicRoutes(api)
	}
	if deps.VagasHandler != nil {
		deps.VagasHandler.RegisterPublicRoutes(api)
	}
	if deps.TrilhasHandler != nil {
		deps.TrilhasHandler.RegisterPublicRoutes(api)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(deps.Tokens))

	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(authed)
	}
	if deps.ProfilesHandler != nil {
		deps.ProfilesHandler.RegisterRoutes(authed)
	}
	if deps.CurriculosHandler != nil {
		deps.CurriculosHandler.RegisterRoutes(authed)
	}
	if deps.VagasHandler != nil {
		deps.VagasHandler.RegisterRoutes(authed)
	}
	if deps.TrilhasHandler != nil {
		deps.TrilhasHandler.RegisterRoutes(authed)
	}
	if deps.AnalysisHandler != nil {
		limited := authed.Group("")
		limited.Use(middleware.RateLimit(deps.RateLimiter, analysisRateRule))
		deps.AnalysisHandler.RegisterRoutes(limited)
	}

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	if deps.NoticiasHandler != nil {
		deps.NoticiasHandler.RegisterAdminRoutes(admin)
	}
	if deps.VagasHandler != nil {
		deps.VagasHandler.RegisterAdminRoutes(admin)
	}
	if deps.TrilhasHandler != nil {
		deps.TrilhasHandler.RegisterAdminRoutes(admin)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
