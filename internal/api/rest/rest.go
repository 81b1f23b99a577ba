package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/nitk/memory-vault/internal/api/middleware"
)

// SetupRoutes configures all REST API routes. uploadGuards run on the upload
// relay after authentication.
func SetupRoutes(router *gin.Engine, handler Handler, authenticator *middleware.Authenticator, uploadGuards ...gin.HandlerFunc) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Memory endpoints (public read access)
		v1.GET("/memories", handler.ListMemories)
		v1.GET("/memories/:id", handler.GetMemory)

		// Token transfer history (public read access)
		v1.GET("/tokens/:token_id/transfers", handler.GetTokenTransfers)

		// Upload relay (requires JWT or API key)
		upload := append([]gin.HandlerFunc{middleware.Auth(authenticator)}, uploadGuards...)
		v1.POST("/uploads", append(upload, handler.Upload)...)
	}
}
