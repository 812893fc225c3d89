package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	cfg    *Config
	logger *zap.Logger
	store  Store
)

func main() {
	cfg = LoadConfig()

	var err error
	logger, err = newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using in-memory store, data will not survive restarts")
		store = newMemoryStore()
	default:
		store = connectPostgres(cfg.Database)
	}

	if cfg.SyncKey == "" {
		logger.Warn("SYNC_KEY not set, authenticated endpoints will reject all requests")
	}

	gin.SetMode(gin.ReleaseMode)
	r := setupRouter()

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// connectPostgres dials the database with retries, runs migrations when the
// migrations directory is present, and returns the KV store.
func connectPostgres(db DatabaseConfig) Store {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.DBName, db.SSLMode)

	var pool *pgxpool.Pool
	var err error

	maxRetries := 30
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), connStr)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				break
			}
			pool.Close()
		}
		logger.Warn("database not ready", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(retryInterval)
	}
	if err != nil {
		logger.Fatal("failed to connect to database after retries", zap.Error(err))
	}
	logger.Info("connected to database")

	migrationsPath := filepath.Join(".", "db", "migrations")
	if _, statErr := os.Stat(migrationsPath); os.IsNotExist(statErr) {
		logger.Warn("migrations directory not found, skipping migrations",
			zap.String("path", migrationsPath))
	} else {
		migrationDB, openErr := sql.Open("postgres", connStr)
		if openErr != nil {
			logger.Fatal("failed to open migration connection", zap.Error(openErr))
		}
		defer migrationDB.Close()

		if err := runMigrations(migrationDB, migrationsPath); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		if version, dirty, vErr := getMigrationVersion(migrationDB, migrationsPath); vErr == nil {
			logger.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
	}

	return newPGStore(pool)
}

func corsMiddleware() gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", syncKeyHeader},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(corsCfg)
}
