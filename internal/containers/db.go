// Package containers provides test container utilities
package containers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vlatan/lesson-videos/internal/config"
)

type dbContainer struct {
	container *postgres.PostgresContainer
}

// SetupTestDB creates a PostgreSQL container, runs migrations, and seeds data
func SetupTestDB(ctx context.Context, cfg *config.Config, projectRoot string) (Container, error) {

	// Construct the absolute path to the migrations folder
	migrationsDir := filepath.Join(projectRoot, "migrations")

	// get the appropriate init scripts
	initScripts, err := getMigrationFiles(migrationsDir)
	if err != nil {
		return nil, err
	}

	// Fall back to throwaway credentials if none in env
	withTestCredentials(cfg)

	// Create PostgreSQL container
	container, err := postgres.Run(ctx, "postgres:16.3",
		postgres.WithSQLDriver("pgx"),
		postgres.WithInitScripts(initScripts...),
		postgres.WithDatabase(cfg.DBDatabase),
		postgres.WithUsername(cfg.DBUsername),
		postgres.WithPassword(cfg.DBPassword),
		postgres.BasicWaitStrategies(),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	// Get container details for connection
	host, err := container.Host(ctx)
	if err != nil {
		if cErr := container.Terminate(ctx); cErr != nil {
			err = errors.Join(err, cErr)
		}
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		if cErr := container.Terminate(ctx); cErr != nil {
			err = errors.Join(err, cErr)
		}
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	// Update config with container connection details
	cfg.DBHost = host
	cfg.DBPort = port.Int()

	// Setup database (migrations + seeding)
	if err := setupDatabase(ctx, cfg); err != nil {
		if cErr := container.Terminate(ctx); cErr != nil {
			err = errors.Join(err, cErr)
		}
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &dbContainer{container}, nil
}

// Terminate stops and removes the container
func (db *dbContainer) Terminate(ctx context.Context) {
	if err := db.container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %v", err)
	}
}

func withTestCredentials(cfg *config.Config) {
	if cfg.DBDatabase == "" {
		cfg.DBDatabase = "lessons_test"
	}
	if cfg.DBUsername == "" {
		cfg.DBUsername = "test"
	}
	if cfg.DBPassword == "" {
		cfg.DBPassword = "test"
	}
}

func setupDatabase(ctx context.Context, cfg *config.Config) error {
	// Create connection string
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DBUsername, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)

	// Create connection for setup
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Seed data
	if err := seedTestData(ctx, pool); err != nil {
		return fmt.Errorf("failed to seed test data: %w", err)
	}

	return nil
}

func seedTestData(ctx context.Context, pool *pgxpool.Pool) error {
	queries := []string{
		`INSERT INTO lesson_video (lesson_id, video_id, reference, slug, title, enriched) VALUES
			(1, 'dQw4w9WgXcQ', 'https://youtu.be/dQw4w9WgXcQ', 'never-gonna-give-you-up', 'Never Gonna Give You Up', TRUE),
			(2, 'aaaaaaaaaaa', 'aaaaaaaaaaa', '', 'Untitled', FALSE)`,
	}

	for _, query := range queries {
		if _, err := pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
	}

	log.Println("Test data seeded successfully")
	return nil
}

func getMigrationFiles(migrationsDir string) ([]string, error) {
	var migrations []string

	err := filepath.Walk(migrationsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Only process files ending with "up.sql"
		if !info.IsDir() && strings.HasSuffix(info.Name(), "up.sql") {
			migrations = append(migrations, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return migrations, nil
}
