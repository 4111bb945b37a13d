package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridapp/grid-go/internal/ui"
	"github.com/gridapp/grid-go/internal/validation"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored session names",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openSessionStore(cfg)
		if err != nil {
			return err
		}
		names := store.List()
		if len(names) == 0 {
			fmt.Fprintln(os.Stderr, "No stored sessions.")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(os.Stdout, name)
		}
		return nil
	},
}

var sessionRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a stored session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validation.NewValidator().ValidateSessionName(name); err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openSessionStore(cfg)
		if err != nil {
			return err
		}

		approved, err := ui.NewConfirmer(assumeYes).Confirm(cmd.Context(),
			fmt.Sprintf("Remove stored session '%s'?", name))
		if err != nil {
			return err
		}
		if !approved {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
		if err := store.Delete(name); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Removed session '%s'.\n", name)
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionListCmd, sessionRemoveCmd)
	rootCmd.AddCommand(sessionCmd)
}
