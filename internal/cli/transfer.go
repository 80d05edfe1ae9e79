package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write categories.jsonl and items.jsonl to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := backend.Export(args[0]); err != nil {
				return systemError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Merge categories.jsonl and items.jsonl from a directory",
		Long: `Import upserts the records of categories.jsonl and items.jsonl by ID in
one transaction. Malformed or invalid records are skipped and counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			res, err := backend.Import(args[0])
			if err != nil {
				return systemError(err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d category(ies), %d item(s); skipped %d record(s)\n",
				res.Categories, res.Items, res.Skipped)
			return nil
		},
	}
}
