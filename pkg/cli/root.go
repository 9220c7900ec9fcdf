// Package cli implements the groupvault administrative command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"groupvault/internal/config"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:           "groupvault",
		Short:         "Group directory administration",
		Long:          "Administer the group directory of a secrets-management backend: groups, access grants, memberships, and relationship resolution.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}

			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			}))
			for _, w := range cfg.Warnings {
				log.Warn(w)
			}
			slog.SetDefault(log)

			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the directory database (default $GROUPVAULT_DB_PATH or groupvault.sqlite)")

	rootCmd.AddCommand(
		newGroupCmd(),
		newSecretCmd(),
		newPrincipalCmd(),
		newGrantCmd(),
		newRevokeCmd(),
		newEnrollCmd(),
		newEvictCmd(),
		newResolveCmd(),
		newAuditCmd(),
		newMigrateCmd(),
	)

	return rootCmd
}
