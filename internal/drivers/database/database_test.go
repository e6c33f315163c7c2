package database

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/vlatan/lesson-videos/internal/config"
	"github.com/vlatan/lesson-videos/internal/containers"
)

var testCfg *config.Config

func TestMain(m *testing.M) {
	os.Exit(runTests(m))
}

// runTests spins a Postgres container and runs the package tests
func runTests(m *testing.M) int {

	projectRoot, err := containers.GetProjectRoot()
	if err != nil {
		log.Fatal(err)
	}

	// Valid only for local test runs
	envPath := filepath.Join(projectRoot, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("failed to load .env file; %v", err)
	}

	ctx := context.Background()
	testCfg = config.New()

	container, err := containers.SetupTestDB(ctx, testCfg, projectRoot)
	if err != nil {
		log.Fatal(err)
	}
	defer container.Terminate(ctx)

	return m.Run()
}

func TestNew(t *testing.T) {

	// The pool connects lazily, so a bad host fails on first query
	badHostCfg := *testCfg
	badHostCfg.DBHost = "invalid.localhost"

	tests := []struct {
		name         string
		cfg          *config.Config
		wantErr      bool
		wantQueryErr bool
	}{
		{"nil config", nil, true, true},
		{"invalid host", &badHostCfg, false, true},
		{"valid config", testCfg, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.cfg)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("got error = %v, want error = %t", err, tt.wantErr)
			}

			if err != nil {
				if db != nil {
					t.Errorf("got %+v, want nil service", db)
				}
				return
			}

			t.Cleanup(db.Close)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			t.Cleanup(cancel)

			var one int
			err = db.QueryRow(ctx, "SELECT 1").Scan(&one)
			if gotErr := err != nil; gotErr != tt.wantQueryErr {
				t.Errorf("got query error = %v, want error = %t", err, tt.wantQueryErr)
			}
		})
	}
}
