package domain

// Audit actions recorded by the directory service.
const (
	AuditActionCreateGroup  = "group.create"
	AuditActionDeleteGroup  = "group.delete"
	AuditActionGrantAccess  = "access.grant"
	AuditActionRevokeAccess = "access.revoke"
	AuditActionEnroll       = "membership.enroll"
	AuditActionEvict        = "membership.evict"
)

// AuditEntry records one directory mutation.
type AuditEntry struct {
	ID        string // UUIDv7, see NewID
	Actor     string
	Action    string
	Target    string
	CreatedAt int64
}
