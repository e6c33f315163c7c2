package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestHealth(t *testing.T) {

	ctx := context.TODO()

	// Timed out context
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Nanosecond)
	t.Cleanup(cancel)

	// Allow more max connections to properly measure 85% utilization
	maxConnCfg := *testCfg
	maxConnCfg.DBMaxConns = 10

	db, err := New(&maxConnCfg)
	if err != nil {
		t.Fatalf("failed to create db pool; %v", err)
	}

	t.Cleanup(db.Close)

	tests := []struct {
		name   string
		ctx    context.Context
		stress bool
		down   bool
	}{
		{"context timeout", timeoutCtx, false, true},
		{"highly utilized", ctx, true, false},
		{"valid result", ctx, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			// Hold all but one connection
			if tt.stress {
				held := make([]*pgxpool.Conn, 0, maxConnCfg.DBMaxConns)
				for range maxConnCfg.DBMaxConns - 1 {
					conn, err := db.Acquire(tt.ctx)
					if err != nil {
						t.Fatalf("failed to acquire connection; %v", err)
					}
					held = append(held, conn)
				}

				t.Cleanup(func() {
					for _, conn := range held {
						conn.Release()
					}
				})
			}

			stats := db.Health(tt.ctx)
			if down := stats["status"] == "down"; down != tt.down {
				t.Errorf("got down = %t, want down = %t", down, tt.down)
			}

			if _, highly := stats["message"]; highly != tt.stress {
				t.Errorf("got message = %v, want message = %t", stats["message"], tt.stress)
			}
		})
	}
}
