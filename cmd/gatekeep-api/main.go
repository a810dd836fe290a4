package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimitrije/gatekeep-api/internal/config"
	"github.com/dimitrije/gatekeep-api/internal/database"
	"github.com/dimitrije/gatekeep-api/internal/handlers"
	"github.com/dimitrije/gatekeep-api/internal/identity"
	"github.com/dimitrije/gatekeep-api/internal/metrics"
	authmw "github.com/dimitrije/gatekeep-api/internal/middleware"
	"github.com/dimitrije/gatekeep-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	collector := metrics.NewCollector()
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.SessionExpiry)
	profileService := services.NewProfileService(db)
	identityClient := identity.NewClient(cfg.Identity)

	authHandler := handlers.NewAuthHandler(identityClient, profileService, jwtService, collector)
	adminHandler := handlers.NewAdminHandler(identityClient, profileService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(authmw.CORS(cfg.AllowedOrigins))
	app.Use(authmw.Metrics(collector))
	app.Use(middleware.BodyParser())

	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	protected := app.Group("")
	protected.Use(authmw.Auth(jwtService))
	protected.Get("/auth/me", authHandler.Me)

	admin := app.Group("/admin")
	admin.Use(authmw.Auth(jwtService))
	admin.Get("/all-users", adminHandler.AllUsers)
	admin.Post("/create-user", adminHandler.CreateUser)
	admin.Put("/update-user/:id", adminHandler.UpdateUser)

	app.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	app.Get("/metrics", func(c *drift.Context) {
		collector.Handler().ServeHTTP(c.Response, c.Request)
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
