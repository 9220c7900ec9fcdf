package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"groupvault/internal/config"
	"groupvault/internal/db"
	"groupvault/internal/db/repository"
	"groupvault/internal/service"
)

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) *config.Config {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		cfg = &config.Config{DBPath: "groupvault.sqlite", ReadPoolSize: 4, LogLevel: "info"}
	}
	return cfg
}

// env bundles the open database pools and the stores a command needs.
type env struct {
	dir        *service.Directory
	groups     *repository.GroupRepo
	readGroups *repository.GroupRepo
	secrets    *repository.SecretRepo
	principals *repository.PrincipalRepo

	writeDB *sql.DB
	readDB  *sql.DB
}

// openEnv opens the migrated pool pair for the configured database and
// wires the directory service over it.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg := configFrom(cmd.Context())

	writeDB, readDB, err := db.OpenPair(cfg.DBPath, cfg.ReadPoolSize)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(writeDB); err != nil {
		_ = readDB.Close()
		_ = writeDB.Close()
		return nil, err
	}

	groups := repository.NewGroupRepo(writeDB)
	dir := service.NewDirectory(
		groups,
		repository.NewACLRepo(writeDB),
		repository.NewAuditRepo(writeDB),
		slog.Default(),
	)

	return &env{
		dir:        dir,
		groups:     groups,
		readGroups: repository.NewReadonlyGroupRepo(readDB),
		secrets:    repository.NewSecretRepo(writeDB),
		principals: repository.NewPrincipalRepo(writeDB),
		writeDB:    writeDB,
		readDB:     readDB,
	}, nil
}

func (e *env) close() {
	_ = e.readDB.Close()
	_ = e.writeDB.Close()
}

// lookupGroupID resolves a group name, erroring on absence so commands
// give a clear message instead of a silent no-op.
func (e *env) lookupGroupID(ctx context.Context, name string) (int64, error) {
	g, err := e.readGroups.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if g == nil {
		return 0, fmt.Errorf("unknown group %q", name)
	}
	return g.ID, nil
}

func (e *env) lookupSecretID(ctx context.Context, name string) (int64, error) {
	s, err := e.secrets.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if s == nil {
		return 0, fmt.Errorf("unknown secret %q", name)
	}
	return s.ID, nil
}

func (e *env) lookupPrincipalID(ctx context.Context, name string) (int64, error) {
	p, err := e.principals.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, fmt.Errorf("unknown principal %q", name)
	}
	return p.ID, nil
}
