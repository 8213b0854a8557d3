package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LovationAdmin/finance-tracker-api/config"
	"github.com/LovationAdmin/finance-tracker-api/handlers"
	"github.com/LovationAdmin/finance-tracker-api/middleware"
	"github.com/LovationAdmin/finance-tracker-api/routes"
	"github.com/LovationAdmin/finance-tracker-api/services"
	"github.com/LovationAdmin/finance-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	gin.SetMode(cfg.GinMode)
	utils.ConfigureLogging(cfg.Production, cfg.LogLevel)

	store := services.NewTransactionStore()
	wsHandler := handlers.NewWSHandler()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	limiter.StartCleanup()
	defer limiter.Stop()

	router := routes.NewRouter(cfg, routes.Deps{
		Store:   store,
		WS:      wsHandler,
		Limiter: limiter,
	})

	if cfg.AllowAllOrigins() {
		log.Printf("🌍 CORS: Allowing all origins")
	} else {
		log.Printf("🌍 CORS: Allowing origins:")
		for _, origin := range cfg.AllowedOrigins {
			log.Printf("   - %s", origin)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		utils.LogStartup("Finance Tracker API", routes.Version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := wsHandler.Close(); err != nil {
		log.Printf("⚠️ Failed to close websocket sessions: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Forced shutdown: %v", err)
	}
	log.Printf("👋 Server stopped with %d transactions in memory", store.Len())
}
