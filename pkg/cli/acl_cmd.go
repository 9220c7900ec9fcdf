package cli

import (
	"github.com/spf13/cobra"

	"groupvault/internal/domain"
)

func newSecretCmd() *cobra.Command {
	secretCmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage secret identities referenced by grants",
	}
	secretCmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Register a secret identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			id, err := e.secrets.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"id": id, "name": args[0]})
		},
	})
	return secretCmd
}

func newPrincipalCmd() *cobra.Command {
	var ptype string

	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a principal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			id, err := e.principals.Create(cmd.Context(), args[0], ptype)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"id": id, "name": args[0], "type": ptype})
		},
	}
	addCmd.Flags().StringVar(&ptype, "type", "user", `principal type: "user" or "service"`)

	principalCmd := &cobra.Command{
		Use:   "principal",
		Short: "Manage principals referenced by memberships",
	}
	principalCmd.AddCommand(addCmd)
	return principalCmd
}

func newGrantCmd() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "grant GROUP SECRET",
		Short: "Authorize a group to access a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGrant(cmd, args, func(e *env, g domain.AccessGrant) error {
				return e.dir.GrantAccess(cmd.Context(), g, actor)
			})
		},
	}
	cmd.Flags().StringVar(&actor, "by", "", "acting principal recorded in the audit log")
	return cmd
}

func newRevokeCmd() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "revoke GROUP SECRET",
		Short: "Remove a group's access to a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGrant(cmd, args, func(e *env, g domain.AccessGrant) error {
				return e.dir.RevokeAccess(cmd.Context(), g, actor)
			})
		},
	}
	cmd.Flags().StringVar(&actor, "by", "", "acting principal recorded in the audit log")
	return cmd
}

func withGrant(cmd *cobra.Command, args []string, fn func(*env, domain.AccessGrant) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	groupID, err := e.lookupGroupID(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	secretID, err := e.lookupSecretID(cmd.Context(), args[1])
	if err != nil {
		return err
	}
	return fn(e, domain.AccessGrant{GroupID: groupID, SecretID: secretID})
}

func newEnrollCmd() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "enroll GROUP PRINCIPAL",
		Short: "Add a principal to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMembership(cmd, args, func(e *env, m domain.Membership) error {
				return e.dir.Enroll(cmd.Context(), m, actor)
			})
		},
	}
	cmd.Flags().StringVar(&actor, "by", "", "acting principal recorded in the audit log")
	return cmd
}

func newEvictCmd() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "evict GROUP PRINCIPAL",
		Short: "Remove a principal from a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMembership(cmd, args, func(e *env, m domain.Membership) error {
				return e.dir.Evict(cmd.Context(), m, actor)
			})
		},
	}
	cmd.Flags().StringVar(&actor, "by", "", "acting principal recorded in the audit log")
	return cmd
}

func withMembership(cmd *cobra.Command, args []string, fn func(*env, domain.Membership) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	groupID, err := e.lookupGroupID(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	principalID, err := e.lookupPrincipalID(cmd.Context(), args[1])
	if err != nil {
		return err
	}
	return fn(e, domain.Membership{GroupID: groupID, PrincipalID: principalID})
}
