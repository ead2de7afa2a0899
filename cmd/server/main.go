package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/config"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/db"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/handler"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/middleware"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/oracle"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/repository"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/router"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/service"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "review-engine")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	// Repositories
	voteRepo := repository.NewVoteRepo(pool)
	helpfulnessRepo := repository.NewHelpfulnessRepo(pool)
	engagementRepo := repository.NewEngagementRepo(pool)
	moderationRepo := repository.NewModerationRepo(pool)
	queueRepo := repository.NewQueueRepo(pool)
	auditRepo := repository.NewAuditRepo(pool)
	reviewRepo := repository.NewReviewRepo(pool)

	// Services
	auditSvc := service.NewAuditService(auditRepo)
	helpfulnessSvc := service.NewHelpfulnessService(voteRepo, helpfulnessRepo, reviewRepo)
	credibilitySvc := service.NewCredibilityService()
	voteSvc := service.NewVoteService(voteRepo, reviewRepo, helpfulnessSvc, credibilitySvc, cache)
	engagementSvc := service.NewEngagementService(engagementRepo, helpfulnessRepo, reviewRepo, cache, cfg.EngagementHalfLifeDays)
	queueSvc := service.NewQueueService(queueRepo, auditSvc)
	oracleClient := oracle.NewHTTPClient(cfg.OracleURL, cfg.OracleTimeout)
	moderationSvc := service.NewModerationService(cfg.Policy, oracleClient, cfg.OracleTimeout,
		moderationRepo, reviewRepo, queueSvc, auditSvc, cache)

	// Background workers
	rankWorker := service.NewRankWorker(pool, helpfulnessSvc, cache, cfg.RankBatchWindow)
	go rankWorker.Start(ctx)

	engagementWorker := service.NewEngagementWorker(engagementSvc, cfg.EngagementInterval)
	go engagementWorker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "Review Engine API",
		ServerHeader: "ReviewEngine",
	})

	router.Setup(app, &router.Handlers{
		Vote:       handler.NewVoteHandler(voteSvc, cfg.IPSalt),
		Scores:     handler.NewScoresHandler(helpfulnessSvc, engagementSvc, cache),
		Moderation: handler.NewModerationHandler(moderationSvc, queueSvc, auditSvc),
		Health:     handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutdown signal received")
		_ = app.Shutdown()
	}()

	log.Printf("review engine starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
