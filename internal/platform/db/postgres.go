package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/ferdiebergado/hireloop/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DSN builds the connection string for the pgx stdlib driver.
func DSN(cfg *config.DB) string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   cfg.Name,
	}
	q := dsn.Query()
	q.Set("sslmode", cfg.SSLMode)
	dsn.RawQuery = q.Encode()
	return dsn.String()
}

// NewPostgresDB creates and validates a database connection.
func NewPostgresDB(signalCtx context.Context, cfg *config.DB) (*sql.DB, error) {
	slog.Info("Connecting to the database...")

	conn, err := sql.Open(cfg.Driver, DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime.Duration)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime.Duration)

	pingCtx, cancel := context.WithTimeout(signalCtx, cfg.PingTimeout.Duration)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	slog.Info("Connected to the database.", "db", cfg.Name)

	return conn, nil
}
