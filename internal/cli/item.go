package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wishlist/pkg/types"
)

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"items"},
		Short:   "Manage the items of a category",
	}
	cmd.AddCommand(
		newItemListCmd(a),
		newItemAddCmd(a),
		newItemUpdateCmd(a),
		newItemDeleteCmd(a),
		newItemOpenCmd(a),
	)
	return cmd
}

func newItemListCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list <category-id>",
		Short: "List the items of a category sorted by title",
		Long: `List prints the items of a category sorted by title, ignoring case.

Use --filter to keep only items whose title contains the text, ignoring
case and accents.`,
		Example: `  wishlist item list 0190a3c4-...
  wishlist item list 0190a3c4-... --filter dune`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			items, err := store.ListItems(args[0], filter)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only titles containing this text")
	return cmd
}

func newItemAddCmd(a *app) *cobra.Command {
	var title, link string
	cmd := &cobra.Command{
		Use:     "add <category-id>",
		Short:   "Add an item to a category",
		Example: `  wishlist item add 0190a3c4-... --title Dune --link https://example.com/dune`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			item, err := store.AddItem(args[0], title, link)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created item: %s\n", item.ItemID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "item title (required)")
	cmd.Flags().StringVar(&link, "link", "", "http, https or ftp URL (required)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("link")
	return cmd
}

func newItemUpdateCmd(a *app) *cobra.Command {
	var title, link string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the title or link of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("link") {
				return fmt.Errorf("nothing to update: set --title or --link")
			}

			store, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			item, err := store.GetItem(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				item.Title = title
			}
			if cmd.Flags().Changed("link") {
				item.Link = link
			}
			if err := store.UpdateItem(item); err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated item %s\n", item.ItemID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&link, "link", "", "new link")
	return cmd
}

func newItemDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an item from its category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := store.DeleteItem(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %s\n", args[0])
			return nil
		},
	}
}

func newItemOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open the link of an item in the default browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer backend.Detach()

			item, err := store.GetItem(args[0])
			if err != nil {
				return err
			}
			// Rows written by older imports may predate link validation.
			if err := types.ValidateLink(item.Link); err != nil {
				return fmt.Errorf("item %s: %w", item.ItemID, err)
			}
			if err := a.openLink(item.Link); err != nil {
				return systemError(fmt.Errorf("open %s: %w", item.Link, err))
			}
			a.log.WithField("item_id", item.ItemID).Debug("link opened")
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", item.Link)
			return nil
		},
	}
}
