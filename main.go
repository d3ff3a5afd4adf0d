// File: miles/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"miles/config"
	"miles/handlers"
	"miles/middleware"
	"miles/routes"
	"miles/services/amadeus"
	ai "miles/services/intelligence"
	"miles/services/travel"
	"miles/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Provider gateway and query cache.
	amadeusSvc := amadeus.NewAmadeusService(
		config.AppConfig.AmadeusAPIBase,
		config.AppConfig.AmadeusAPIKey,
		config.AppConfig.AmadeusAPISecret,
		time.Duration(config.AppConfig.ProviderTimeoutSeconds)*time.Second,
	)
	queryCache := travel.NewQueryCache(
		time.Duration(config.AppConfig.CacheTTLSeconds)*time.Second,
		config.AppConfig.CacheMaxEntries,
	)
	travelSvc := travel.NewTravelService(amadeusSvc, queryCache)

	// Gemini-backed intelligence services.
	geminiClient, err := ai.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
	}
	defer geminiClient.Close()

	detector := ai.NewIntentDetector(geminiClient)
	composer := ai.NewComposer(geminiClient)
	sessionStore := ai.NewRedisSessionStore(utils.GetSessionCacheClient(), 30*time.Minute)

	chatHandler := handlers.NewChatHandler(detector, composer, travelSvc, sessionStore)

	routes.RegisterRoutes(router, chatHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
