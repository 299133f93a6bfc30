package server

import (
	"github.com/labstack/echo/v4"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	taxHandler *handlers.TaxHandler,
	estimateHandler *handlers.EstimateHandler,
	statsHandler *handlers.StatsHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	taxRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	taxGroup := api.Group("/tax", taxRateLimiter)
	taxGroup.POST("/calculate", taxHandler.Calculate)
	taxGroup.POST("/compare", taxHandler.Compare)
	taxGroup.GET("/years", taxHandler.Years)
	taxGroup.GET("/regimes", taxHandler.Regimes)
	taxGroup.GET("/slabs", taxHandler.Slabs)

	estimates := api.Group("/estimates", authMiddleware)
	estimates.POST("", estimateHandler.Create)
	estimates.GET("", estimateHandler.List)
	estimates.GET("/:id", estimateHandler.Get)
	estimates.GET("/:id/export/json", estimateHandler.ExportJSON)
	estimates.GET("/:id/export/csv", estimateHandler.ExportCSV)
	estimates.DELETE("/:id", estimateHandler.Delete)

	stats := api.Group("/stats", authMiddleware)
	stats.GET("/overview", statsHandler.Overview)
	stats.GET("/by-year", statsHandler.ByYear)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/estimates", adminHandler.ListEstimates)
	admin.GET("/usage", adminHandler.Usage)
}
