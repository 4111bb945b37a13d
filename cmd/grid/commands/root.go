// Package commands wires the grid CLI: configuration, the encrypted
// session store, and the API client behind each subcommand.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridapp/grid-go/internal/audit"
	"github.com/gridapp/grid-go/internal/config"
	"github.com/gridapp/grid-go/internal/storage"
	"github.com/gridapp/grid-go/internal/validation"
	"github.com/gridapp/grid-go/pkg/rest"
)

const logMaxSize = 10 * 1024 * 1024

var (
	version     = "dev"
	configFile  string
	sessionName string
	assumeYes   bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "grid",
	Short: "Grid CLI",
	Long: `Command-line client for the Grid item API.

Items live in apps and carry dynamically typed fields; this tool fetches
them, edits field values locally, and pushes the changes back.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ~/.grid/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&sessionName, "session", "default", "named session to use")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to all prompts")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")
}

// SetVersion sets the version for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// verboseLog prints a message only if verbose mode is enabled.
func verboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrCreate(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*audit.Logger, error) {
	logger, err := audit.NewLogger(audit.Config{FilePath: cfg.Logging.File, MaxSize: logMaxSize})
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	return logger, nil
}

// storePassphrase resolves the session store passphrase from the
// environment. Tokens never sit on disk unencrypted, so there is no
// unprotected fallback.
func storePassphrase() (string, error) {
	passphrase := os.Getenv("GRID_STORE_PASSPHRASE")
	if passphrase == "" {
		return "", fmt.Errorf("GRID_STORE_PASSPHRASE is not set")
	}
	return passphrase, nil
}

func openSessionStore(cfg *config.Config) (*storage.SessionStore, error) {
	passphrase, err := storePassphrase()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSessionStore(cfg.Session.Store, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return store, nil
}

// newClient assembles an authenticated API client from the stored session.
// The returned cleanup flushes the event log.
func newClient() (*rest.Client, func(), error) {
	if err := validation.NewValidator().ValidateSessionName(sessionName); err != nil {
		return nil, nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := openSessionStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	session, err := store.Load(sessionName)
	if err != nil {
		return nil, nil, fmt.Errorf("no usable session '%s', run 'grid login' first: %w", sessionName, err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	tokens := &rest.SessionTokens{
		Session: session,
		Authenticator: rest.NewAuthenticator(cfg.API.ClientID, cfg.API.ClientSecret,
			rest.WithAuthBaseURL(cfg.API.BaseURL)),
	}
	client := rest.NewClient(tokens,
		rest.WithBaseURL(cfg.API.BaseURL),
		rest.WithUserAgent(cfg.API.UserAgent),
		rest.WithLogger(logger),
	)

	cleanup := func() {
		// Refreshes happen in place; keep the store current.
		if err := store.Save(sessionName, session); err != nil {
			verboseLog("failed to persist session: %v", err)
		}
		_ = logger.Close()
	}
	return client, cleanup, nil
}
