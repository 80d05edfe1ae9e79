package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories", "cat"},
		Short:   "Manage categories",
	}
	cmd.AddCommand(
		newCategoryListCmd(a),
		newCategoryAddCmd(a),
		newCategoryRenameCmd(a),
		newCategoryDeleteCmd(a),
	)
	return cmd
}

func newCategoryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			cats, err := store.ListCategories()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), cats)
			}
			printCategories(cmd.OutOrStdout(), cats)
			return nil
		},
	}
}

func newCategoryAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Example: `  wishlist category add Books
  wishlist category add "Gifts for Mum" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			cat, err := store.AddCategory(args[0])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), cat)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category: %s\n", cat.CategoryID)
			return nil
		},
	}
}

func newCategoryRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			cat, err := store.RenameCategory(args[0], args[1])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), cat)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %s to %q\n", cat.CategoryID, cat.Name)
			return nil
		},
	}
}

func newCategoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := store.DeleteCategory(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
			return nil
		},
	}
}
