package pkg

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SIH-2025/edusafe-service/internal/config"
)

// InitDatabase opens the Postgres connection with a bounded retry loop, so
// the service survives the database coming up slightly later than it does.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if cfg.Environment == "development" {
		gormLogLevel = logger.Info
	}

	var (
		db  *gorm.DB
		err error
	)
	for attempt := 1; attempt <= cfg.DBConnAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(gormLogLevel),
		})
		if err == nil {
			break
		}
		slog.Warn("Database connection failed, retrying",
			"attempt", attempt,
			"max_attempts", cfg.DBConnAttempts,
			"error", err)
		time.Sleep(cfg.DBConnInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.DBConnAttempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// HealthMonitor tracks database reachability in the background. API requests
// consult the flag instead of pinging per request.
type HealthMonitor struct {
	available atomic.Bool
	cancel    context.CancelFunc
}

// StartHealthMonitor pings the database on the given interval and keeps the
// availability flag current.
func StartHealthMonitor(db *gorm.DB, interval time.Duration) *HealthMonitor {
	ctx, cancel := context.WithCancel(context.Background())
	m := &HealthMonitor{cancel: cancel}
	m.available.Store(true)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.check(ctx, db)
			}
		}
	}()

	return m
}

func (m *HealthMonitor) check(ctx context.Context, db *gorm.DB) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	sqlDB, err := db.DB()
	if err != nil {
		m.available.Store(false)
		return
	}

	healthy := sqlDB.PingContext(pingCtx) == nil
	if healthy != m.available.Load() {
		if healthy {
			slog.Info("Database connection restored")
		} else {
			slog.Error("Database connection lost")
		}
	}
	m.available.Store(healthy)
}

// Available reports the last observed database state.
func (m *HealthMonitor) Available() bool {
	return m.available.Load()
}

// Stop ends the background monitoring.
func (m *HealthMonitor) Stop() {
	m.cancel()
}
