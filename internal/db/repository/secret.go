package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"groupvault/internal/domain"
)

// SecretRepo stores secret identities. Secret content never passes
// through the directory; this exists so accessgrants have a real target.
type SecretRepo struct {
	db DBTX
}

func NewSecretRepo(db *sql.DB) *SecretRepo {
	return &SecretRepo{db: db}
}

func (r *SecretRepo) Create(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO secrets (name, createdat) VALUES (?, ?)`,
		name, time.Now().Unix())
	if err != nil {
		if isUniqueViolation(err, "secrets.name") {
			return 0, domain.ErrDuplicateName("secret %q already exists", name)
		}
		return 0, fmt.Errorf("insert secret: %w", err)
	}
	return res.LastInsertId()
}

// GetByName returns the secret named name, or (nil, nil) when absent.
func (r *SecretRepo) GetByName(ctx context.Context, name string) (*domain.Secret, error) {
	var s domain.Secret
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, createdat FROM secrets WHERE name = ?`, name).
		Scan(&s.ID, &s.Name, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get secret %q: %w", name, err)
	}
	return &s, nil
}
