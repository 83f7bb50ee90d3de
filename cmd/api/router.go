package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"streamhub-backend/internal/shared/middleware"
	"streamhub-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Identify(c.SessionService, c.Config.Session.CookieName, c.Config.Notification.APIKey),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupUserRoutes(api, c)
		setupSeriesRoutes(api, c)
		setupEpisodeRoutes(api, c)
		setupNotificationRoutes(api, c)
		setupArtworkRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.AuthHandler.Register)
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/logout", c.AuthHandler.Logout)
	}

	api.GET("/admin/me", c.AuthHandler.Me)
}

// ========================================
// USER ROUTES (admin)
// ========================================
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	users := api.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.GET("", c.UserHandler.List)
		users.POST("/:id/status", c.UserHandler.UpdateStatus)
		users.POST("/:id/role", c.UserHandler.UpdateRole)
	}
}

// ========================================
// SERIES ROUTES
// ========================================
// Read mode quyết định quyền đọc; mutations chặn admin ngay ở route
func setupSeriesRoutes(api *gin.RouterGroup, c *container.Container) {
	series := api.Group("/series")
	{
		series.GET("", c.SeriesHandler.List)
		series.GET("/export", c.SeriesHandler.Export)
		series.GET("/:id", c.SeriesHandler.Get)
		series.GET("/:id/episodes", c.SeriesHandler.Episodes)
	}

	// Mutations: 403 trước khi parse body hay :id
	adminSeries := api.Group("/series")
	adminSeries.Use(middleware.RequireAdmin())
	{
		adminSeries.POST("", c.SeriesHandler.Create)
		adminSeries.POST("/:id/status", c.SeriesHandler.UpdateStatus)
		adminSeries.DELETE("/:id", c.SeriesHandler.Delete)
	}
}

// ========================================
// EPISODE ROUTES
// ========================================
func setupEpisodeRoutes(api *gin.RouterGroup, c *container.Container) {
	episodes := api.Group("/episodes")
	{
		episodes.GET("", c.EpisodeHandler.List)
		episodes.GET("/:id", c.EpisodeHandler.Get)
	}

	adminEpisodes := api.Group("/episodes")
	adminEpisodes.Use(middleware.RequireAdmin())
	{
		adminEpisodes.POST("", c.EpisodeHandler.Create)
		adminEpisodes.POST("/:id/status", c.EpisodeHandler.UpdateStatus)
		adminEpisodes.DELETE("/:id", c.EpisodeHandler.Delete)
	}
}

// ========================================
// NOTIFICATION ROUTES
// ========================================
func setupNotificationRoutes(api *gin.RouterGroup, c *container.Container) {
	notifications := api.Group("/notifications")
	{
		notifications.GET("", c.NotificationHandler.List)
		notifications.POST("", c.NotificationHandler.Create)
		notifications.POST("/push", c.NotificationHandler.Push)
		notifications.POST("/:id/read", c.NotificationHandler.MarkRead)
		notifications.DELETE("/:id", middleware.RequireAdmin(), c.NotificationHandler.Delete)
	}
}

// ========================================
// ARTWORK ROUTES
// ========================================
func setupArtworkRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/artwork", c.ArtworkHandler.Upload)
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}
		statusCode := http.StatusOK

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		c.JSON(statusCode, health)
	}
}
