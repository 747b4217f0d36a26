package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/athan/internal/catalog"
	"github.com/Nixie-Tech-LLC/athan/internal/config"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	adminapi "github.com/Nixie-Tech-LLC/athan/internal/http/api/admin/endpoints"
	calendarapi "github.com/Nixie-Tech-LLC/athan/internal/http/api/calendar/endpoints"
)

// RegisterRoutes sets up all application routes. runs is nil without a database.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, cat *catalog.Catalog, regen adminapi.Regenerator, runs adminapi.RunLister) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"If-None-Match",
			"X-If-None-Match",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"ETag",
			"X-Content-ETag",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{Prefix: ""},
		calendarapi.HealthModule(cat),
	)

	api.MountGroup(r, api.GroupConfig{Prefix: "/api/v1"},
		calendarapi.CalendarModule(cat),
	)

	api.MountGroup(r, api.GroupConfig{Prefix: "/api/tv"},
		calendarapi.IntegrationsModule(cat, cfg.City),
	)

	// admin routes need a signing secret
	if cfg.JWTSecret == "" {
		return
	}
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"},
		adminapi.AuthPublicModule(cfg.JWTSecret, cfg.AdminPasswordHash),
	)
	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
	},
		adminapi.GenerationModule(regen, runs),
	)
}
