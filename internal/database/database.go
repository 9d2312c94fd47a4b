package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studentapi/internal/config"
	"studentapi/internal/model"
)

// ErrNoStudentsTable is returned by Connect when the store has never been seeded.
var ErrNoStudentsTable = errors.New("students table does not exist")

// InitDB opens the SQL store named by cfg.DataSource and migrates the
// students table, creating the sqlite file if needed. Used when seeding.
func InitDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	return Open(ctx, dialector)
}

// Connect opens an existing SQL store for reading. The sqlite file and the
// students table must already exist; nothing is created or migrated.
func Connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.DataSource == config.SourceSQLite {
		if _, err := os.Stat(cfg.SQLitePath); err != nil {
			return nil, fmt.Errorf("sqlite database: %w", err)
		}
	}

	db, err := connect(ctx, dialector)
	if err != nil {
		return nil, err
	}
	if !db.WithContext(ctx).Migrator().HasTable(&model.Student{}) {
		Close(db)
		return nil, ErrNoStudentsTable
	}
	return db, nil
}

// Open connects with the given dialector and auto-migrates the Student table.
func Open(ctx context.Context, dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := connect(ctx, dialector)
	if err != nil {
		return nil, err
	}

	// Auto-migrate the Student table
	if err := db.WithContext(ctx).AutoMigrate(&model.Student{}); err != nil {
		Close(db)
		return nil, fmt.Errorf("failed to auto-migrate the database: %w", err)
	}
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DataSource {
	case config.SourcePostgres:
		return postgres.Open(cfg.PostgresDSN()), nil
	case config.SourceSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("data source %q is not a database", cfg.DataSource)
	}
}

// connect opens the pool without gorm's own ping and pings under ctx, so
// an unreachable server cannot stall startup past the caller's deadline.
func connect(ctx context.Context, dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	log.Printf("Connected to %s database", dialector.Name())
	return db, nil
}
