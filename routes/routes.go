package routes

import (
	"net/http"
	"time"

	"miles/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, ch *handlers.ChatHandler) {
	api := r.Group("/api")
	{
		api.POST("/chat", ch.HandleChat)
		api.DELETE("/chat/session/:sessionID", ch.ClearSession)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Miles"})
	})
}

// RegisterRoutes wires up all route groups and global middleware.
func RegisterRoutes(r *gin.Engine, ch *handlers.ChatHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Miles Travel API",
			"status":  "running",
		})
	})

	RegisterChatRoutes(r, ch)
	RegisterHealthRoute(r)
}
