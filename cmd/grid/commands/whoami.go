package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		user, err := client.GetStatus(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "User ID: %d\n", user.UserID)
		if user.Mail != "" {
			fmt.Fprintf(os.Stdout, "Mail:    %s\n", user.Mail)
		}
		if user.Status != "" {
			fmt.Fprintf(os.Stdout, "Status:  %s\n", user.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
