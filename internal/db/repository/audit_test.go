package repository

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "groupvault/internal/db"
	"groupvault/internal/domain"
)

func TestAuditRepo_AppendAndList(t *testing.T) {
	writeDB, _ := internaldb.OpenTestSQLite(t)
	audit := NewAuditRepo(writeDB)
	ctx := context.Background()

	for i, action := range []string{
		domain.AuditActionCreateGroup,
		domain.AuditActionGrantAccess,
		domain.AuditActionDeleteGroup,
	} {
		require.NoError(t, audit.Append(ctx, &domain.AuditEntry{
			ID:        domain.NewID(),
			Actor:     "alice",
			Action:    action,
			Target:    "security-team",
			CreatedAt: int64(1700000000 + i),
		}))
	}

	entries, err := audit.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, domain.AuditActionDeleteGroup, entries[0].Action)
	assert.Equal(t, domain.AuditActionCreateGroup, entries[2].Action)
}

func TestAuditRepo_ListLimit(t *testing.T) {
	writeDB, _ := internaldb.OpenTestSQLite(t)
	audit := NewAuditRepo(writeDB)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, audit.Append(ctx, &domain.AuditEntry{
			ID:        domain.NewID(),
			Actor:     "alice",
			Action:    domain.AuditActionEnroll,
			Target:    "team",
			CreatedAt: int64(1700000000 + i),
		}))
	}

	entries, err := audit.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
