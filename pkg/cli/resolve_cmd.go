package cli

import (
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve SECRET [SECRET...]",
		Short: "Resolve which groups may access each secret",
		Long:  "Resolve which groups may access each of the named secrets. Secrets with no access grants are omitted from the output.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			ids := make([]int64, 0, len(args))
			names := make(map[int64]string, len(args))
			for _, name := range args {
				id, err := e.lookupSecretID(cmd.Context(), name)
				if err != nil {
					return err
				}
				ids = append(ids, id)
				names[id] = name
			}

			resolved, err := e.readGroups.GroupsForSecrets(cmd.Context(), ids)
			if err != nil {
				return err
			}

			out := make(map[string][]string, len(resolved))
			for secretID, groups := range resolved {
				groupNames := make([]string, len(groups))
				for i, g := range groups {
					groupNames[i] = g.Name
				}
				out[names[secretID]] = groupNames
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
