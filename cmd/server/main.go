package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/Hrhcoolshegs/verdict/internal/config"
	"github.com/Hrhcoolshegs/verdict/internal/db"
	"github.com/Hrhcoolshegs/verdict/internal/handler"
	"github.com/Hrhcoolshegs/verdict/internal/middleware"
	"github.com/Hrhcoolshegs/verdict/internal/repository"
	"github.com/Hrhcoolshegs/verdict/internal/router"
	"github.com/Hrhcoolshegs/verdict/internal/service"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "verdict-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	movieRepo := repository.NewMovieRepo(pool)
	verdictRepo := repository.NewVerdictRepo(pool)

	catalogSvc := service.NewCatalogService(movieRepo, cache, cfg.CinemaThreshold)
	verdictSvc := service.NewVerdictService(verdictRepo, cache, cfg.CinemaThreshold)
	statsSvc := service.NewStatsService(movieRepo, verdictRepo, cache, cfg.CinemaThreshold)
	otpSvc := service.NewOTPService(cache, nil)

	statsWorker := service.NewStatsWorker(pool, statsSvc, cache)
	go statsWorker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "Verdict API",
		ServerHeader: "Verdict",
	})

	router.Setup(app, &router.Handlers{
		Movie:   handler.NewMovieHandler(catalogSvc),
		Verdict: handler.NewVerdictHandler(verdictSvc, cfg.IPSalt),
		Auth:    handler.NewAuthHandler(otpSvc),
		Stats:   handler.NewStatsHandler(statsSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("verdict backend starting on :%s (env=%s, threshold=%d)",
		cfg.Port, cfg.Environment, cfg.CinemaThreshold)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
