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

	httpapi "sipspotter/cafe-svc/internal/api/http"
	"sipspotter/cafe-svc/internal/auth"
	"sipspotter/cafe-svc/internal/service"
	"sipspotter/cafe-svc/internal/storage"
	"sipspotter/config"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSigningKey == "" {
		log.Fatal("JWT_SIGNING_KEY must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	repository := storage.NewPostgresRepository(db)
	if err := repository.Migrate(ctx); err != nil {
		log.Fatal("Failed to apply schema:", err)
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()
	cache := storage.NewRedisCache(rdb, cfg.ListingCacheTTL, cfg.ReviewCacheTTL)

	reviewWriter := config.NewKafkaWriter(cfg, cfg.ReviewsTopic)
	visitWriter := config.NewKafkaWriter(cfg, cfg.VisitsTopic)
	defer reviewWriter.Close()
	defer visitWriter.Close()
	publisher := storage.NewKafkaPublisher(reviewWriter, visitWriter)

	listings := storage.NewListingClient(cfg.ListingAPIURL, cfg.ListingAPIKey, cfg.ListingMaxRetries, nil)

	reviews := service.NewReviewService(repository, cache, publisher)
	cafes := service.NewCafeService(listings, cache, reviews, float64(cfg.SearchRadiusMeters))
	favorites := service.NewFavoriteService(repository)
	schedules := service.NewScheduleService(repository, publisher)

	reader := config.NewKafkaReader(cfg, cfg.ReviewsTopic, "cafe-svc-"+hostname())
	defer reader.Close()
	go service.NewReviewEventConsumer(reader, cache).Start(ctx)

	handler := httpapi.NewHandler(cafes, reviews, favorites, schedules,
		service.DefaultQRGenerator{BaseURL: cfg.ShareBaseURL}, auth.NewVerifier(cfg.JWTSigningKey))

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: server shutdown: %v", err)
		}
	}()

	log.Printf("Cafe Service starting on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// hostname gives each replica its own consumer group so every instance sees
// every review event.
func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "local"
	}
	return name
}
