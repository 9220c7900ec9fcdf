package domain

import "context"

// GroupStore provides persistence for groups. Lookups return (nil, nil)
// when no row matches; absence is never an error.
type GroupStore interface {
	Create(ctx context.Context, name, creator, description string, metadata map[string]string) (int64, error)
	GetByName(ctx context.Context, name string) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	ListAll(ctx context.Context) ([]Group, error)
	Delete(ctx context.Context, g *Group) error
	GroupsForSecrets(ctx context.Context, secretIDs []int64) (map[int64][]Group, error)
}

// ACLStore persists the raw association rows between groups, secrets, and
// principals. Policy around who may mutate them lives with the caller.
type ACLStore interface {
	GrantAccess(ctx context.Context, g AccessGrant) error
	RevokeAccess(ctx context.Context, g AccessGrant) error
	Enroll(ctx context.Context, m Membership) error
	Evict(ctx context.Context, m Membership) error
	GrantsForGroup(ctx context.Context, groupID int64) ([]AccessGrant, error)
	MembershipsForGroup(ctx context.Context, groupID int64) ([]Membership, error)
}

// AuditStore appends and lists directory mutation records.
type AuditStore interface {
	Append(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, limit int) ([]AuditEntry, error)
}
