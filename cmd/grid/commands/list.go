package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridapp/grid-go/pkg/rest"
)

var (
	listLimit  int
	listOffset int
	listSort   string
	listDesc   bool
)

var itemListCmd = &cobra.Command{
	Use:   "list <app-id>",
	Short: "List items in an app",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemList,
}

func init() {
	itemListCmd.Flags().IntVar(&listLimit, "limit", 30, "maximum number of items")
	itemListCmd.Flags().IntVar(&listOffset, "offset", 0, "number of items to skip")
	itemListCmd.Flags().StringVar(&listSort, "sort", "", "sort key (external id, created_on, last_edit_on)")
	itemListCmd.Flags().BoolVar(&listDesc, "desc", false, "sort descending")
	itemCmd.AddCommand(itemListCmd)
}

func runItemList(cmd *cobra.Command, args []string) error {
	appID, err := parseID(args[0])
	if err != nil {
		return err
	}

	filter := rest.NewItemFilter().Limit(listLimit).Offset(listOffset)
	if listSort != "" {
		filter.SortBy(listSort, listDesc)
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	batch, err := client.FilterItems(cmd.Context(), appID, filter)
	if err != nil {
		return err
	}

	for _, it := range batch.Items {
		fmt.Fprintf(os.Stdout, "%-12d %s\n", it.ItemID(), it.Title())
	}
	fmt.Fprintf(os.Stdout, "%d of %d item(s)\n", len(batch.Items), batch.Total)
	return nil
}
