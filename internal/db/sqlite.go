// Package db provides SQLite connectivity and migration support for the
// group directory.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"
)

// Mode selects the safety profile of an opened pool.
type Mode string

const (
	// ModeWrite is the single-writer pool: MaxOpenConns=1 and an
	// immediate transaction lock so writers queue instead of failing.
	ModeWrite Mode = "write"
	// ModeRead is the read pool; safe to point at a WAL replica.
	ModeRead Mode = "read"
)

// Pragmas applied to every connection.
const (
	busyTimeoutMillis = "5000"
	synchronousLevel  = "NORMAL"
	journalMode       = "WAL"
)

// Open opens a *sql.DB for the directory database at path.
//
// maxOpen sizes the read pool (0 means 4) and is ignored for ModeWrite,
// which is always a single connection.
func Open(path string, mode Mode, maxOpen int) (*sql.DB, error) {
	if mode != ModeRead && mode != ModeWrite {
		return nil, fmt.Errorf("invalid sqlite mode %q", mode)
	}

	conn, err := sql.Open("sqlite3", dsn(path, mode))
	if err != nil {
		return nil, fmt.Errorf("open sqlite (%s): %w", mode, err)
	}

	switch mode {
	case ModeWrite:
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	case ModeRead:
		if maxOpen <= 0 {
			maxOpen = 4
		}
		conn.SetMaxOpenConns(maxOpen)
		conn.SetMaxIdleConns(maxOpen)
	}
	conn.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite (%s): %w", mode, err)
	}

	return conn, nil
}

// OpenPair opens the write pool and the read pool for the same database
// file. Callers hand the write pool to mutating stores and the read pool
// to lookups and the relationship resolver.
func OpenPair(path string, readMaxOpen int) (writeDB, readDB *sql.DB, err error) {
	writeDB, err = Open(path, ModeWrite, 0)
	if err != nil {
		return nil, nil, err
	}

	readDB, err = Open(path, ModeRead, readMaxOpen)
	if err != nil {
		_ = writeDB.Close()
		return nil, nil, err
	}

	return writeDB, readDB, nil
}

func dsn(path string, mode Mode) string {
	params := url.Values{}
	params.Set("_journal_mode", journalMode)
	params.Set("_busy_timeout", busyTimeoutMillis)
	params.Set("_synchronous", synchronousLevel)
	params.Set("_foreign_keys", "on")
	if mode == ModeWrite {
		params.Set("_txlock", "immediate")
	}
	return path + "?" + params.Encode()
}
