package repository

import (
	"context"
	"database/sql"
	"fmt"

	"groupvault/internal/domain"
)

var _ domain.ACLStore = (*ACLRepo)(nil)

// ACLRepo persists the raw association rows between groups, secrets, and
// principals. Grants and enrollments are idempotent; the pair either
// exists afterwards or the statement failed.
type ACLRepo struct {
	db DBTX
}

// NewACLRepo returns an ACLRepo over the write pool.
func NewACLRepo(db *sql.DB) *ACLRepo {
	return &ACLRepo{db: db}
}

// NewACLRepoWithTx returns an ACLRepo whose statements run inside tx.
func NewACLRepoWithTx(tx *sql.Tx) *ACLRepo {
	return &ACLRepo{db: tx}
}

func (r *ACLRepo) GrantAccess(ctx context.Context, g domain.AccessGrant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO accessgrants (groupid, secretid) VALUES (?, ?)`,
		g.GroupID, g.SecretID)
	if err != nil {
		return fmt.Errorf("grant group %d access to secret %d: %w", g.GroupID, g.SecretID, err)
	}
	return nil
}

func (r *ACLRepo) RevokeAccess(ctx context.Context, g domain.AccessGrant) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM accessgrants WHERE groupid = ? AND secretid = ?`,
		g.GroupID, g.SecretID)
	if err != nil {
		return fmt.Errorf("revoke group %d access to secret %d: %w", g.GroupID, g.SecretID, err)
	}
	return nil
}

func (r *ACLRepo) Enroll(ctx context.Context, m domain.Membership) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO memberships (groupid, principalid) VALUES (?, ?)`,
		m.GroupID, m.PrincipalID)
	if err != nil {
		return fmt.Errorf("enroll principal %d in group %d: %w", m.PrincipalID, m.GroupID, err)
	}
	return nil
}

func (r *ACLRepo) Evict(ctx context.Context, m domain.Membership) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM memberships WHERE groupid = ? AND principalid = ?`,
		m.GroupID, m.PrincipalID)
	if err != nil {
		return fmt.Errorf("evict principal %d from group %d: %w", m.PrincipalID, m.GroupID, err)
	}
	return nil
}

func (r *ACLRepo) GrantsForGroup(ctx context.Context, groupID int64) ([]domain.AccessGrant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT groupid, secretid FROM accessgrants WHERE groupid = ?`, groupID)
	if err != nil {
		return nil, fmt.Errorf("grants for group %d: %w", groupID, err)
	}
	defer rows.Close()

	var grants []domain.AccessGrant
	for rows.Next() {
		var g domain.AccessGrant
		if err := rows.Scan(&g.GroupID, &g.SecretID); err != nil {
			return nil, fmt.Errorf("scan accessgrant: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

func (r *ACLRepo) MembershipsForGroup(ctx context.Context, groupID int64) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT groupid, principalid FROM memberships WHERE groupid = ?`, groupID)
	if err != nil {
		return nil, fmt.Errorf("memberships for group %d: %w", groupID, err)
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.GroupID, &m.PrincipalID); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
