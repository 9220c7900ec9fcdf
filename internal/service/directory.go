// Package service wires the directory stores together behind one
// administrative surface, adding validation, audit, and logging.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"groupvault/internal/domain"
)

// Directory is the administrative surface over the group stores. The
// repos stay the contract for callers that only need persistence; the
// Directory adds input validation and an audit trail.
type Directory struct {
	groups domain.GroupStore
	acl    domain.ACLStore
	audit  domain.AuditStore
	log    *slog.Logger
}

func NewDirectory(groups domain.GroupStore, acl domain.ACLStore, audit domain.AuditStore, log *slog.Logger) *Directory {
	if log == nil {
		log = slog.Default()
	}
	return &Directory{groups: groups, acl: acl, audit: audit, log: log}
}

// CreateGroup creates a group and returns the stored row.
func (d *Directory) CreateGroup(ctx context.Context, name, creator, description string, metadata map[string]string) (*domain.Group, error) {
	if name == "" {
		return nil, domain.ErrValidation("group name is required")
	}

	id, err := d.groups.Create(ctx, name, creator, description, metadata)
	if err != nil {
		return nil, err
	}

	if err := d.record(ctx, creator, domain.AuditActionCreateGroup, name); err != nil {
		return nil, err
	}
	d.log.InfoContext(ctx, "group created", "group", name, "id", id, "actor", creator)

	return d.groups.GetByID(ctx, id)
}

// GetGroup returns the named group, or (nil, nil) when absent.
func (d *Directory) GetGroup(ctx context.Context, name string) (*domain.Group, error) {
	return d.groups.GetByName(ctx, name)
}

// ListGroups returns every group.
func (d *Directory) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return d.groups.ListAll(ctx)
}

// DeleteGroup retires a group and all rows referencing it. Deleting an
// absent group is a no-op, matching the store's idempotent delete.
func (d *Directory) DeleteGroup(ctx context.Context, name, actor string) error {
	g, err := d.groups.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}

	if err := d.groups.Delete(ctx, g); err != nil {
		return err
	}

	if err := d.record(ctx, actor, domain.AuditActionDeleteGroup, name); err != nil {
		return err
	}
	d.log.InfoContext(ctx, "group deleted", "group", name, "id", g.ID, "actor", actor)
	return nil
}

// GrantAccess authorizes a group to access a secret.
func (d *Directory) GrantAccess(ctx context.Context, g domain.AccessGrant, actor string) error {
	if err := d.acl.GrantAccess(ctx, g); err != nil {
		return err
	}
	return d.record(ctx, actor, domain.AuditActionGrantAccess, grantTarget(g))
}

// RevokeAccess removes a group's access to a secret.
func (d *Directory) RevokeAccess(ctx context.Context, g domain.AccessGrant, actor string) error {
	if err := d.acl.RevokeAccess(ctx, g); err != nil {
		return err
	}
	return d.record(ctx, actor, domain.AuditActionRevokeAccess, grantTarget(g))
}

// Enroll adds a principal to a group.
func (d *Directory) Enroll(ctx context.Context, m domain.Membership, actor string) error {
	if err := d.acl.Enroll(ctx, m); err != nil {
		return err
	}
	return d.record(ctx, actor, domain.AuditActionEnroll, membershipTarget(m))
}

// Evict removes a principal from a group.
func (d *Directory) Evict(ctx context.Context, m domain.Membership, actor string) error {
	if err := d.acl.Evict(ctx, m); err != nil {
		return err
	}
	return d.record(ctx, actor, domain.AuditActionEvict, membershipTarget(m))
}

// GroupsForSecrets resolves the groups authorized for each secret.
func (d *Directory) GroupsForSecrets(ctx context.Context, secretIDs []int64) (map[int64][]domain.Group, error) {
	return d.groups.GroupsForSecrets(ctx, secretIDs)
}

// Audit returns the most recent directory mutations.
func (d *Directory) Audit(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return d.audit.List(ctx, limit)
}

func (d *Directory) record(ctx context.Context, actor, action, target string) error {
	return d.audit.Append(ctx, &domain.AuditEntry{
		ID:        domain.NewID(),
		Actor:     actor,
		Action:    action,
		Target:    target,
		CreatedAt: time.Now().Unix(),
	})
}

func grantTarget(g domain.AccessGrant) string {
	return fmt.Sprintf("group/%d secret/%d", g.GroupID, g.SecretID)
}

func membershipTarget(m domain.Membership) string {
	return fmt.Sprintf("group/%d principal/%d", m.GroupID, m.PrincipalID)
}
