package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGroupCmd() *cobra.Command {
	groupCmd := &cobra.Command{
		Use:   "group",
		Short: "Manage directory groups",
	}
	groupCmd.AddCommand(
		newGroupCreateCmd(),
		newGroupGetCmd(),
		newGroupListCmd(),
		newGroupDeleteCmd(),
	)
	return groupCmd
}

func newGroupCreateCmd() *cobra.Command {
	var (
		description string
		actor       string
		meta        []string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metadata, err := parseMetadata(meta)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			g, err := e.dir.CreateGroup(cmd.Context(), args[0], actor, description, metadata)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), g)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "group description")
	cmd.Flags().StringVar(&actor, "by", "", "acting principal recorded as creator")
	cmd.Flags().StringArrayVar(&meta, "meta", nil, "metadata entry key=value (repeatable)")
	return cmd
}

func newGroupGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			g, err := e.readGroups.GetByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if g == nil {
				return fmt.Errorf("unknown group %q", args[0])
			}
			return printJSON(cmd.OutOrStdout(), g)
		},
	}
}

func newGroupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			groups, err := e.readGroups.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), groups)
		},
	}
}

func newGroupDeleteCmd() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a group and every grant and membership referencing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			return e.dir.DeleteGroup(cmd.Context(), args[0], actor)
		},
	}

	cmd.Flags().StringVar(&actor, "by", "", "acting principal recorded in the audit log")
	return cmd
}
