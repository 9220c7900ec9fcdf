package domain

// Group is a named access-control collection of secrets and principals.
// Timestamps are epoch seconds; UpdatedAt never precedes CreatedAt.
type Group struct {
	ID          int64
	Name        string
	Description string
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   int64
	UpdatedAt   int64
	Metadata    map[string]string
}

// AccessGrant authorizes a group to access a secret. Pure association row,
// no payload beyond the pair.
type AccessGrant struct {
	GroupID  int64
	SecretID int64
}

// Membership enrolls a principal in a group.
type Membership struct {
	GroupID     int64
	PrincipalID int64
}

// Secret is an externally managed protected value. The directory stores
// only its identity; content and encryption live elsewhere.
type Secret struct {
	ID        int64
	Name      string
	CreatedAt int64
}

// Principal is an external identity (user or service).
type Principal struct {
	ID        int64
	Name      string
	Type      string // "user" or "service"
	CreatedAt int64
}
