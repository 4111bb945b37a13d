package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gridapp/grid-go/internal/validation"
	"github.com/gridapp/grid-go/pkg/rest"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store a session",
	Long: `Authenticate with username and password, then store the resulting
session encrypted under the name given by --session.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account email address")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	validator := validation.NewValidator()
	if err := validator.ValidateSessionName(sessionName); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.API.ClientID == "" || cfg.API.ClientSecret == "" {
		return fmt.Errorf("api.client_id and api.client_secret must be set in %s", configFileHint())
	}
	store, err := openSessionStore(cfg)
	if err != nil {
		return err
	}

	username := loginUsername
	if username == "" {
		username, err = promptLine("Username: ")
		if err != nil {
			return err
		}
	}
	if err := validator.ValidateUsername(username); err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	auth := rest.NewAuthenticator(cfg.API.ClientID, cfg.API.ClientSecret,
		rest.WithAuthBaseURL(cfg.API.BaseURL))
	session, err := auth.AuthenticateWithPassword(cmd.Context(), username, password)
	if err != nil {
		logger.LogAuth(false, username)
		return fmt.Errorf("login failed: %w", err)
	}
	logger.LogAuth(true, username)

	if err := store.Save(sessionName, session); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Logged in, session stored as '%s'.\n", sessionName)
	return nil
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a secret without echoing it. Piped input (tests,
// scripts) is not a terminal and falls back to a plain line read.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	return readSecret(os.Stdin)
}

func readSecret(in *os.File) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(secret), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func configFileHint() string {
	if configFile != "" {
		return configFile
	}
	return "~/.grid/config.yaml"
}
