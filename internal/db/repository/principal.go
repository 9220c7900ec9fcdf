package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"groupvault/internal/domain"
)

// PrincipalRepo stores principal identities referenced by memberships.
type PrincipalRepo struct {
	db DBTX
}

func NewPrincipalRepo(db *sql.DB) *PrincipalRepo {
	return &PrincipalRepo{db: db}
}

func (r *PrincipalRepo) Create(ctx context.Context, name, ptype string) (int64, error) {
	if ptype == "" {
		ptype = "user"
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO principals (name, type, createdat) VALUES (?, ?, ?)`,
		name, ptype, time.Now().Unix())
	if err != nil {
		if isUniqueViolation(err, "principals.name") {
			return 0, domain.ErrDuplicateName("principal %q already exists", name)
		}
		return 0, fmt.Errorf("insert principal: %w", err)
	}
	return res.LastInsertId()
}

// GetByName returns the principal named name, or (nil, nil) when absent.
func (r *PrincipalRepo) GetByName(ctx context.Context, name string) (*domain.Principal, error) {
	var p domain.Principal
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, createdat FROM principals WHERE name = ?`, name).
		Scan(&p.ID, &p.Name, &p.Type, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get principal %q: %w", name, err)
	}
	return &p, nil
}
