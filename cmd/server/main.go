package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rajeswari195/kayak/internal/analytics"
	"github.com/Rajeswari195/kayak/internal/auth"
	"github.com/Rajeswari195/kayak/internal/booking"
	"github.com/Rajeswari195/kayak/internal/clickstream"
	"github.com/Rajeswari195/kayak/internal/config"
	"github.com/Rajeswari195/kayak/internal/document"
	"github.com/Rajeswari195/kayak/internal/eventbus"
	"github.com/Rajeswari195/kayak/internal/httpapi"
	"github.com/Rajeswari195/kayak/internal/metrics"
	"github.com/Rajeswari195/kayak/internal/relational"
	"github.com/Rajeswari195/kayak/internal/review"
	"github.com/Rajeswari195/kayak/internal/search"
	"github.com/Rajeswari195/kayak/pkg/database"
	pkgdocument "github.com/Rajeswari195/kayak/pkg/document"
	"github.com/Rajeswari195/kayak/pkg/kafka"
	pkgredis "github.com/Rajeswari195/kayak/pkg/redis"
	"github.com/Rajeswari195/kayak/pkg/tracing"

	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.InitTracer(ctx, &cfg.Tracing)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	pg, err := database.NewPostgresConnection(&cfg.Relational)
	if err != nil {
		log.Fatalf("failed to connect to relational store: %v", err)
	}
	defer pg.Close()

	mongoDB, err := pkgdocument.Connect(cfg.Document.URL, cfg.Document.Database)
	if err != nil {
		log.Fatalf("failed to connect to document store: %v", err)
	}
	if err := pkgdocument.CreateIndexes(mongoDB); err != nil {
		log.Fatalf("failed to create document store indexes: %v", err)
	}

	cache := pkgredis.NewClient(&cfg.Cache)
	defer cache.Close()

	producer := kafka.NewProducer(&cfg.EventBus)
	defer producer.Close()

	m := metrics.New()
	publisher := eventbus.NewPublisher(producer, m)

	relStore := relational.NewStore(pg)
	clickStore := document.NewClickstreamStore(mongoDB)
	reviewStore := document.NewReviewStore(mongoDB)
	auditStore := document.NewAuditStore(mongoDB)

	tokens := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TTLSeconds)
	authService := auth.NewAuthService(relStore, tokens)
	bookingEngine := booking.NewEngine(pg, publisher, m, time.Duration(cfg.App.InventoryLockTimeoutMS)*time.Millisecond)
	searchService := search.NewService(relStore, relStore, relStore, cache)
	reviewService := review.NewService(reviewStore)
	clickService := clickstream.NewService(clickStore)
	analyticsService := analytics.NewService(relStore, clickStore, cache, cfg.App.AnalyticsLockTTL)

	router := httpapi.NewRouter(httpapi.Deps{
		Tokens:    tokens,
		Auth:      authService,
		Users:     relStore,
		Bookings:  bookingEngine,
		Search:    searchService,
		Reviews:   reviewService,
		Clicks:    clickService,
		Analytics: analyticsService,
		Audit:     auditStore,
		Metrics:   m,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("kayak listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
