package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-event-management/internal/container"
	handlers "github.com/oksasatya/go-ddd-event-management/internal/interface/http"
	"github.com/oksasatya/go-ddd-event-management/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-event-management/internal/router/modules"
	"github.com/oksasatya/go-ddd-event-management/pkg/helpers"
	"github.com/oksasatya/go-ddd-event-management/pkg/validation"
)

// NewEngine builds the Gin engine with global middleware and every module
// registered from the container.
func NewEngine(c *container.Container) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(corsConfig(c.Config.CORSOrigins())))
	if c.Config.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	auth := middleware.Auth(c.JWT, c.Redis, c.Logger)

	var cookies *helpers.Manager
	if cfg.CookieEnabled {
		cookies = helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	}

	r.AddRoot(modules.NewHealthModule(handlers.NewHealthHandler()))
	r.AddRoot(modules.NewAuthModule(
		handlers.NewAuthHandler(c.Users, c.JWT, c.Redis, cookies, c.Logger, cfg.BcryptCost),
		auth,
	))

	var mutationAuth gin.HandlerFunc
	if cfg.EventsRequireAuth {
		mutationAuth = auth
	}
	r.Add(modules.NewEventModule(
		handlers.NewEventHandler(c.Events, c.Publisher, c.Logger),
		cfg.APIBackendName,
		mutationAuth,
	))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
