package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
)

// ErrDatabaseUnavailable is returned by NewDB when the server does not answer a ping.
var ErrDatabaseUnavailable = errors.New("database unavailable")

// NewDB opens a MySQL connection pool for dsn. Time columns are always parsed into time.Time.
// The pool is only returned once the server answers a ping.
func NewDB(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database dsn: %w", err)
	}
	cfg.ParseTime = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrDatabaseUnavailable, cfg.Addr, err)
	}

	slog.Debug("database connected", "addr", cfg.Addr, "db", cfg.DBName)
	return db, nil
}

// isDuplicateEntryError reports whether err is MySQL error 1062 (ER_DUP_ENTRY).
func isDuplicateEntryError(err error) bool {
	var myErr *mysql.MySQLError
	return err != nil && errors.As(err, &myErr) && myErr.Number == 1062
}
