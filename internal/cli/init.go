package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize wishlist storage",
		Long:  "Create the configuration and data directories, write a default config.yaml\nif none exists, then create the database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := a.storeConfig()
			if err != nil {
				return systemError(err)
			}

			// Only an explicit --data-dir is pinned in the new config.
			var pinned string
			if a.flags.dataDir != "" {
				pinned = config.DataDir
			}
			configPath := filepath.Join(a.configDir, configFileExt)
			created, err := writeConfigIfMissing(configPath, pinned)
			if err != nil {
				return systemError(fmt.Errorf("write config: %w", err))
			}
			if created {
				a.log.WithField("path", configPath).Info("default config written")
			}

			_, backend, err := a.openStore()
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return systemError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Wishlist initialized successfully")
			fmt.Fprintln(out, "  config:", a.configDir)
			fmt.Fprintln(out, "  data:  ", config.DataDir)
			return nil
		},
	}
}
