// Command bootstrap ensures the admin account exists and assigns any
// legacy rows that predate authentication to it. Safe to re-run: with an
// existing admin only the password hash changes.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"example.com/workoutlog/internal/auth"
	"example.com/workoutlog/internal/config"
	"example.com/workoutlog/internal/domain"
	persistence "example.com/workoutlog/internal/persistence/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "workoutlog-bootstrap").Logger()

	password := flag.String("password", "", "admin password (min. 6 characters); falls back to ADMIN_PASSWORD, then stdin")
	flag.Parse()

	pw := *password
	if pw == "" {
		pw = os.Getenv("ADMIN_PASSWORD")
	}
	if pw == "" {
		fmt.Fprint(os.Stderr, "Enter admin password (min. 6 characters): ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			pw = strings.TrimSpace(scanner.Text())
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	repo := persistence.NewRepository(pool)
	service := domain.NewBootstrapService(repo, auth.NewBcryptHasher())

	result, err := service.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, pw)
	if err != nil {
		logger.Fatal().Err(err).Msg("bootstrap failed; no rows were changed")
	}

	if result.Created {
		logger.Info().
			Str("admin_id", result.AdminID).
			Int64("orphaned_sessions", result.OrphanedSessions).
			Int64("orphaned_workouts", result.OrphanedWorkouts).
			Msg("admin created; legacy rows assigned")
	} else {
		logger.Info().Str("admin_id", result.AdminID).Msg("admin already existed; password updated")
	}
}
