// Package cli implements the wishlist command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/wishlist/internal/logger"
	"github.com/mesh-intelligence/wishlist/internal/paths"
	"github.com/mesh-intelligence/wishlist/internal/sqlite"
	"github.com/mesh-intelligence/wishlist/pkg/types"
	"github.com/mesh-intelligence/wishlist/pkg/wishlist"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by one command tree.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	log       *logrus.Logger

	// logOut redirects log output; nil means stderr.
	logOut io.Writer

	// openLink hands a validated link to the platform opener.
	openLink func(link string) error
}

// NewRootCmd creates the top-level "wishlist" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{openLink: openInBrowser})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "wishlist",
		Short: "Keep wishlists of links grouped into categories",
		Long: "Wishlist stores categories of wished-for items, each with a title and a link,\n" +
			"in a local SQLite database.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCategoryCmd(a))
	root.AddCommand(newItemCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wishlist:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// setup loads .env, config.yaml and the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return systemError(err)
	}
	a.cfg = cfg

	level := a.flags.logLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	if a.logOut != nil {
		a.log = logger.NewWithOutput(level, a.logOut)
	} else {
		a.log = logger.New(level)
	}
	a.log.WithField("config_dir", configDir).Debug("configuration loaded")
	return nil
}

// storeConfig builds the backend configuration from flags and config.yaml.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
		Locale:  a.cfg.GetString(cfgKeyLocale),
	}, nil
}

// openStore attaches the backend. The caller must defer backend.Detach().
func (a *app) openStore() (*wishlist.Store, *sqlite.Backend, error) {
	config, err := a.storeConfig()
	if err != nil {
		return nil, nil, systemError(err)
	}
	store, backend, err := wishlist.Open(config, a.log)
	if err != nil {
		return nil, nil, systemError(err)
	}
	return store, backend, nil
}

// sysError marks failures outside the user's control.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemError(err error) error {
	if err == nil {
		return nil
	}
	return &sysError{err: err}
}

// exitCode maps an error to a process exit code. Validation and lookup
// failures are the user's; storage and setup failures are the system's.
func exitCode(err error) int {
	var se *sysError
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrValidation), errors.Is(err, types.ErrNotFound):
		return exitUserError
	case errors.As(err, &se), errors.Is(err, types.ErrStorage):
		return exitSysError
	default:
		return exitUserError
	}
}
