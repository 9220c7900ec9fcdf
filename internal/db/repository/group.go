package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"groupvault/internal/domain"
)

var _ domain.GroupStore = (*GroupRepo)(nil)

// GroupRepo persists groups and resolves their secret relationships.
//
// One type, three construction modes: NewGroupRepo for the write pool,
// NewReadonlyGroupRepo for the read pool (or a replica), and
// NewGroupRepoWithTx to participate in a caller-managed transaction.
type GroupRepo struct {
	db   DBTX
	pool *sql.DB // non-nil only when the repo may open its own transactions
}

// NewGroupRepo returns a read-write repo over the write pool.
func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db, pool: db}
}

// NewReadonlyGroupRepo returns a repo restricted to the read pool.
// Mutations through it fail; all lookups and resolution work.
func NewReadonlyGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// NewGroupRepoWithTx returns a repo whose statements run inside tx.
// The caller owns commit and rollback.
func NewGroupRepoWithTx(tx *sql.Tx) *GroupRepo {
	return &GroupRepo{db: tx}
}

const groupColumns = "id, name, description, createdby, updatedby, createdat, updatedat, metadata"

// Create inserts a new group owned by creator. Both timestamps are set to
// now, so updatedat == createdat on a fresh row.
func (r *GroupRepo) Create(ctx context.Context, name, creator, description string, metadata map[string]string) (int64, error) {
	encoded, err := domain.EncodeMetadata(metadata)
	if err != nil {
		return 0, err
	}

	now := time.Now().Unix()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO groups (name, description, createdby, updatedby, createdat, updatedat, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, description, creator, creator, now, now, encoded)
	if err != nil {
		if isUniqueViolation(err, "groups.name") {
			return 0, domain.ErrDuplicateName("group %q already exists", name)
		}
		return 0, fmt.Errorf("insert group: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("group insert id: %w", err)
	}
	return id, nil
}

// GetByName returns the group named name, or (nil, nil) when absent.
func (r *GroupRepo) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE name = ?`, name)
	return scanOptionalGroup(row)
}

// GetByID returns the group with the given id, or (nil, nil) when absent.
func (r *GroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = ?`, id)
	return scanOptionalGroup(row)
}

// ListAll returns every group. The unique id and name constraints make the
// result duplicate-free; order is not part of the contract.
func (r *GroupRepo) ListAll(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+groupColumns+` FROM groups`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	return collectGroups(rows)
}

// Delete removes the group row and every accessgrants and memberships row
// referencing it, atomically. Zero matching rows is success, so deleting
// twice is not an error.
//
// A repo built with NewGroupRepoWithTx runs the statements inside the
// supplied transaction and leaves commit to the caller; a read-write repo
// opens and commits its own transaction.
func (r *GroupRepo) Delete(ctx context.Context, g *domain.Group) error {
	if tx, ok := r.db.(*sql.Tx); ok {
		return deleteGroupIn(ctx, tx, g.ID)
	}
	if r.pool == nil {
		return fmt.Errorf("delete group: repo is read-only")
	}

	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete-group tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := deleteGroupIn(ctx, tx, g.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteGroupIn removes the association rows before the group row so the
// foreign keys hold at every point inside the transaction.
func deleteGroupIn(ctx context.Context, tx *sql.Tx, groupID int64) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM memberships WHERE groupid = ?`, groupID); err != nil {
		return fmt.Errorf("delete memberships for group %d: %w", groupID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM accessgrants WHERE groupid = ?`, groupID); err != nil {
		return fmt.Errorf("delete accessgrants for group %d: %w", groupID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM groups WHERE id = ?`, groupID); err != nil {
		return fmt.Errorf("delete group %d: %w", groupID, err)
	}
	return nil
}

// GroupsForSecrets resolves which groups may access each of the given
// secrets, in two store round trips: the distinct groups reachable from
// the filter, then the flat (secret, group) pair set. The join happens in
// memory against an id index, so cost is O(groups + pairs) no matter how
// many secrets share a group. Secrets with no grants are omitted from the
// result, they never appear with an empty list.
func (r *GroupRepo) GroupsForSecrets(ctx context.Context, secretIDs []int64) (map[int64][]domain.Group, error) {
	if len(secretIDs) == 0 {
		return map[int64][]domain.Group{}, nil
	}

	var (
		groups []domain.Group
		pairs  []grantPair
	)
	if _, inTx := r.db.(*sql.Tx); inTx {
		// A transaction is bound to one connection, run the reads back to back.
		var err error
		if groups, err = r.reachableGroups(ctx, secretIDs); err != nil {
			return nil, err
		}
		if pairs, err = r.grantPairs(ctx, secretIDs); err != nil {
			return nil, err
		}
	} else {
		eg, gctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			groups, err = r.reachableGroups(gctx, secretIDs)
			return err
		})
		eg.Go(func() error {
			var err error
			pairs, err = r.grantPairs(gctx, secretIDs)
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	index := make(map[int64]domain.Group, len(groups))
	for _, g := range groups {
		index[g.ID] = g
	}

	result := make(map[int64][]domain.Group, len(pairs))
	for _, p := range pairs {
		g, ok := index[p.groupID]
		if !ok {
			continue
		}
		result[p.secretID] = append(result[p.secretID], g)
	}
	return result, nil
}

type grantPair struct {
	secretID int64
	groupID  int64
}

func (r *GroupRepo) reachableGroups(ctx context.Context, secretIDs []int64) ([]domain.Group, error) {
	query := `SELECT DISTINCT g.id, g.name, g.description, g.createdby, g.updatedby, g.createdat, g.updatedat, g.metadata
		 FROM groups g
		 JOIN accessgrants ag ON ag.groupid = g.id
		 JOIN secrets s ON s.id = ag.secretid
		 WHERE s.id IN (` + placeholders(len(secretIDs)) + `)`

	rows, err := r.db.QueryContext(ctx, query, int64Args(secretIDs)...)
	if err != nil {
		return nil, fmt.Errorf("groups for secrets: %w", err)
	}
	defer rows.Close()
	return collectGroups(rows)
}

func (r *GroupRepo) grantPairs(ctx context.Context, secretIDs []int64) ([]grantPair, error) {
	query := `SELECT ag.secretid, ag.groupid
		 FROM accessgrants ag
		 JOIN secrets s ON s.id = ag.secretid
		 WHERE s.id IN (` + placeholders(len(secretIDs)) + `)`

	rows, err := r.db.QueryContext(ctx, query, int64Args(secretIDs)...)
	if err != nil {
		return nil, fmt.Errorf("grant pairs for secrets: %w", err)
	}
	defer rows.Close()

	var pairs []grantPair
	for rows.Next() {
		var p grantPair
		if err := rows.Scan(&p.secretID, &p.groupID); err != nil {
			return nil, fmt.Errorf("scan grant pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func scanOptionalGroup(row *sql.Row) (*domain.Group, error) {
	g, err := scanGroup(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func collectGroups(rows *sql.Rows) ([]domain.Group, error) {
	var groups []domain.Group
	for rows.Next() {
		g, err := scanGroup(rows.Scan)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

func scanGroup(scan func(dest ...interface{}) error) (*domain.Group, error) {
	var (
		g    domain.Group
		blob string
	)
	if err := scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.UpdatedBy, &g.CreatedAt, &g.UpdatedAt, &blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan group: %w", err)
	}

	metadata, err := domain.DecodeMetadata(blob)
	if err != nil {
		return nil, err
	}
	g.Metadata = metadata
	return &g, nil
}
