package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"assessment/internal/db"
	"assessment/internal/domain/directory"
	"assessment/internal/domain/evaluation"
	"assessment/internal/domain/rubric"
	"assessment/internal/domain/statistics"
	"assessment/internal/platform/config"
	"assessment/internal/platform/metrics"
	"assessment/internal/platform/sentiment"
	authhandler "assessment/internal/transport/http/handlers/auth"
	directoryhandler "assessment/internal/transport/http/handlers/directory"
	evaluationhandler "assessment/internal/transport/http/handlers/evaluation"
	rubrichandler "assessment/internal/transport/http/handlers/rubric"
	statisticshandler "assessment/internal/transport/http/handlers/statistics"
	"assessment/internal/transport/http/middleware"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	var classifier evaluation.Classifier
	if cfg.SentimentURL != "" {
		classifier = sentiment.NewClient(cfg.SentimentURL, cfg.SentimentTimeout)
	} else {
		slog.Warn("SENTIMENT_URL not set, comments will not be annotated")
	}

	directoryService := directory.NewService(directory.NewStore(pool))
	rubricService := rubric.NewService(rubric.NewStore(pool))
	evaluationService := evaluation.NewService(evaluation.NewStore(pool), classifier)
	statisticsService := statistics.NewService(
		statistics.NewStore(pool), cfg.SentimentExcellentLabel, cfg.StatsTopN)

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(chimw.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(collector.Snapshot())
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(directoryService, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		directoryhandler.NewHandler(directoryService).RegisterRoutes(r)
		rubrichandler.NewHandler(rubricService).RegisterRoutes(r)
		evaluationhandler.NewHandler(evaluationService).RegisterRoutes(r)
		statisticshandler.NewHandler(statisticsService).RegisterRoutes(r)
	})

	slog.Info("assessment server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
