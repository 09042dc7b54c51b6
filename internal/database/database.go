package database

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sjperalta/fintera-ledger/internal/models"
	pkgLogger "github.com/sjperalta/fintera-ledger/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteScheme = "sqlite://"

// Connect establishes a connection to PostgreSQL, or to SQLite when the URL
// points at a local database file.
func Connect(databaseURL string) (*gorm.DB, error) {
	// Configure GORM logger
	logLevel := logger.Silent
	if os.Getenv("ENVIRONMENT") != "production" {
		logLevel = logger.Info
	}

	gormLogger := pkgLogger.NewGormLogger(
		logLevel,
		200*time.Millisecond,
	)

	local := IsSQLite(databaseURL)
	var dialector gorm.Dialector
	if local {
		dialector = sqlite.Open(strings.TrimPrefix(databaseURL, sqliteScheme))
	} else {
		dialector = postgres.Open(databaseURL)
	}

	// Open database connection
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true, // Improve performance
		PrepareStmt:            !local,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	if local {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// IsSQLite reports whether databaseURL names a SQLite database
func IsSQLite(databaseURL string) bool {
	switch {
	case strings.HasPrefix(databaseURL, sqliteScheme),
		strings.HasPrefix(databaseURL, "file:"),
		databaseURL == ":memory:",
		strings.HasSuffix(databaseURL, ".db"),
		strings.HasSuffix(databaseURL, ".sqlite"):
		return true
	}
	return false
}

// Migrate creates or updates the schema for every model
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Tenant{},
		&models.TenantLoanSettings{},
		&models.Customer{},
		&models.Loan{},
		&models.Installment{},
		&models.CollectionCase{},
		&models.AuditLog{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
