package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/orders/internal/logging"
	"github.com/Skotchmaster/orders/internal/models"
)

// ErrDatabaseConnection marks a store that is unreachable or unusable.
var ErrDatabaseConnection = errors.New("database connection error")

func configurePool(sqlDB *sql.DB, embedded bool) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	if embedded {
		// sqlite allows a single writer; in-memory databases also live per connection
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
		return
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func dialector(dsn string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return postgres.Open(dsn), false, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), true, nil
	case strings.HasPrefix(dsn, "file:"), strings.HasPrefix(dsn, ":memory:"):
		return sqlite.Open(dsn), true, nil
	default:
		return nil, false, fmt.Errorf("unsupported DATABASE_URL scheme: %q", dsn)
	}
}

// gormWriter sends GORM's warnings and slow-query traces through the slog
// logger carried by ctx.
func gormWriter(ctx context.Context) logger.Writer {
	l := logging.FromContext(ctx).With("component", "gorm")
	return slog.NewLogLogger(l.Handler(), slog.LevelWarn)
}

// Open connects to the store named by dsn and verifies it answers a ping.
// Every failure is wrapped in ErrDatabaseConnection.
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL is empty", ErrDatabaseConnection)
	}

	dial, embedded, err := dialector(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnection, err)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger: logger.New(gormWriter(ctx), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", ErrDatabaseConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: get sql.DB: %w", ErrDatabaseConnection, err)
	}
	configurePool(sqlDB, embedded)

	if err := Ping(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the orders and items tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Order{}, &models.Item{}); err != nil {
		return fmt.Errorf("%w: migrate: %w", ErrDatabaseConnection, err)
	}
	return nil
}

// Reset drops every table and recreates the schema.
func Reset(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&models.Item{}, &models.Order{}); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return Migrate(db)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("%w: get sql.DB: %w", ErrDatabaseConnection, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrDatabaseConnection, err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Classify wraps connection-level failures in ErrDatabaseConnection and
// returns every other error unchanged.
func Classify(err error) error {
	if err == nil || errors.Is(err, ErrDatabaseConnection) {
		return err
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", ErrDatabaseConnection, err)
	}
	return err
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	// SQLSTATE class 08: connection exception
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "08") {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// database/sql does not export its closed-pool error
	return strings.Contains(err.Error(), "sql: database is closed")
}
