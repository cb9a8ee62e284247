package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"example.com/workoutlog/internal/api"
	"example.com/workoutlog/internal/auth"
	"example.com/workoutlog/internal/config"
	"example.com/workoutlog/internal/domain"
	persistence "example.com/workoutlog/internal/persistence/postgres"
	httptransport "example.com/workoutlog/internal/transport/http"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "workoutlog-api").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	repo := persistence.NewRepository(pool)
	hasher := auth.NewBcryptHasher()

	accounts := domain.NewAccountService(repo, hasher)
	lifecycle := domain.NewLifecycleService(repo)
	workouts := domain.NewWorkoutService(repo, repo)
	stats := domain.NewStatsService(repo)

	tokens := auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TokenTTL: cfg.TokenTTL}

	handler := api.NewHandler(accounts, lifecycle, workouts, stats, tokens, cfg.ListPageSize, cfg.StatsTopN)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	requestLogger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}

	authMiddleware := auth.NewMiddleware(tokens, func(r *http.Request) bool {
		switch {
		case r.URL.Path == "/healthz", r.URL.Path == "/metrics":
			return true
		case strings.HasPrefix(r.URL.Path, "/v1/auth/"):
			return true
		}
		return false
	})

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, authMiddleware.Wrap(requestLogger(mux)))

	logger.Info().Str("address", cfg.HTTPAddress).Msg("workoutlog-api listening")
	if err := httptransport.Run(ctx, server, 15*time.Second); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("shutdown complete")
}
