package db

import (
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN_Write(t *testing.T) {
	got := dsn("/tmp/dir.sqlite", ModeWrite)

	assert.Contains(t, got, "_journal_mode=WAL")
	assert.Contains(t, got, "_busy_timeout=5000")
	assert.Contains(t, got, "_synchronous=NORMAL")
	assert.Contains(t, got, "_foreign_keys=on")
	assert.Contains(t, got, "_txlock=immediate")
	assert.True(t, strings.HasPrefix(got, "/tmp/dir.sqlite?"))
}

func TestDSN_Read(t *testing.T) {
	got := dsn("/tmp/dir.sqlite", ModeRead)

	assert.Contains(t, got, "_journal_mode=WAL")
	assert.Contains(t, got, "_foreign_keys=on")
	assert.NotContains(t, got, "_txlock")
}

func TestOpen_InvalidMode(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "dir.sqlite"), Mode("both"), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sqlite mode")
}

func TestOpenPair_AndMigrate(t *testing.T) {
	writeDB, readDB := OpenTestSQLite(t)

	// Write pool is single-connection.
	assert.Equal(t, 1, writeDB.Stats().MaxOpenConnections)
	assert.Equal(t, 4, readDB.Stats().MaxOpenConnections)

	// The schema is visible from the read pool.
	var n int
	err := readDB.QueryRow(`SELECT COUNT(*) FROM groups`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var journalMode string
	require.NoError(t, writeDB.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", strings.ToLower(journalMode))
}

func TestRunMigrations_Idempotent(t *testing.T) {
	writeDB, _ := OpenTestSQLite(t)
	require.NoError(t, RunMigrations(writeDB))
}
