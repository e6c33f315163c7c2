package misc

import (
	"context"
)

// HealthChecker reports health statistics of a backing service
type HealthChecker interface {
	Health(ctx context.Context) map[string]any
}

type Service struct {
	db  HealthChecker
	rdb HealthChecker
}

func New(db, rdb HealthChecker) *Service {
	return &Service{db: db, rdb: rdb}
}
