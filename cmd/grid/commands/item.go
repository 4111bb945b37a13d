package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/gridapp/grid-go/internal/ui"
	"github.com/gridapp/grid-go/internal/validation"
	"github.com/gridapp/grid-go/pkg/item"
)

var (
	createExternalID string
	createValues     []string
	createTags       []string
	setValues        []string
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Fetch, edit, and push items",
}

var itemGetCmd = &cobra.Command{
	Use:   "get <item-id>",
	Short: "Fetch an item and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemGet,
}

var itemCreateCmd = &cobra.Command{
	Use:   "create <app-id>",
	Short: "Create an item in an app",
	Long: `Create an item in an app. Values are given as external-id=text pairs;
unknown external ids are sent along unverified and judged by the server.`,
	Args: cobra.ExactArgs(1),
	RunE: runItemCreate,
}

var itemSetCmd = &cobra.Command{
	Use:   "set <item-id>",
	Short: "Set field values on an item and push the change",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemSet,
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemDelete,
}

func init() {
	itemCreateCmd.Flags().StringVar(&createExternalID, "external-id", "", "client-side id for the new item (generated when empty)")
	itemCreateCmd.Flags().StringArrayVar(&createValues, "set", nil, "field value as external-id=text (repeatable)")
	itemCreateCmd.Flags().StringArrayVar(&createTags, "tag", nil, "tag for the new item (repeatable)")
	itemSetCmd.Flags().StringArrayVar(&setValues, "set", nil, "field value as external-id=text (repeatable)")

	itemCmd.AddCommand(itemGetCmd, itemCreateCmd, itemSetCmd, itemDeleteCmd)
	rootCmd.AddCommand(itemCmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	if err := validation.NewValidator().ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// applyPairs splits external-id=text flag values and applies them to the
// item. Texts go through the type registry on the server side; locally
// they are plain text values.
func applyPairs(it *item.Item, pairs []string) error {
	validator := validation.NewValidator()
	for _, pair := range pairs {
		externalID, text, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("invalid value %q: expected external-id=text", pair)
		}
		if err := validator.ValidateExternalID(externalID); err != nil {
			return err
		}
		if err := validator.SanitizeFieldInput(text); err != nil {
			return fmt.Errorf("invalid value for %s: %w", externalID, err)
		}
		it.AddValue(externalID, item.TextValue{Text: text})
	}
	return nil
}

func printItem(it *item.Item) {
	fmt.Fprintf(os.Stdout, "Item %d", it.ItemID())
	if it.Title() != "" {
		fmt.Fprintf(os.Stdout, ": %s", it.Title())
	}
	fmt.Fprintln(os.Stdout)
	if app := it.App(); app != nil {
		fmt.Fprintf(os.Stdout, "App:  %s (%d)\n", app.Name, app.AppID)
	}
	if tags := it.Tags(); len(tags) > 0 {
		fmt.Fprintf(os.Stdout, "Tags: %s\n", strings.Join(tags, ", "))
	}
	for _, f := range it.Fields() {
		fmt.Fprintf(os.Stdout, "  %-24s %-12s %d value(s)\n", f.ExternalID(), f.Type(), f.ValueCount())
	}
	if verbose {
		spew.Fdump(os.Stderr, it)
	}
}

func runItemGet(cmd *cobra.Command, args []string) error {
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	it, err := client.GetItem(cmd.Context(), itemID)
	if err != nil {
		return err
	}
	printItem(it)
	return nil
}

func runItemCreate(cmd *cobra.Command, args []string) error {
	appID, err := parseID(args[0])
	if err != nil {
		return err
	}

	it := item.NewItem()
	if createExternalID != "" {
		if err := validation.NewValidator().ValidateExternalID(createExternalID); err != nil {
			return err
		}
		it.SetExternalID(createExternalID)
	} else {
		it.SetExternalID(item.NewExternalID())
	}
	if len(createTags) > 0 {
		it.SetTags(createTags...)
	}
	if err := applyPairs(it, createValues); err != nil {
		return err
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	verboseLog("creating item in app %d as %s", appID, it.ExternalID())
	resp, err := client.CreateItem(cmd.Context(), appID, it.CreateData())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Created item %d\n", resp.ItemID)
	if resp.Link != "" {
		fmt.Fprintf(os.Stdout, "%s\n", resp.Link)
	}
	return nil
}

func runItemSet(cmd *cobra.Command, args []string) error {
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	if len(setValues) == 0 {
		return fmt.Errorf("nothing to set, pass at least one --set external-id=text")
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	it, err := client.GetItem(cmd.Context(), itemID)
	if err != nil {
		return err
	}
	if err := applyPairs(it, setValues); err != nil {
		return err
	}

	resp, err := client.UpdateItem(cmd.Context(), itemID, it.CreateData())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Updated item %d (revision %d)\n", itemID, resp.Revision)
	return nil
}

func runItemDelete(cmd *cobra.Command, args []string) error {
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}

	approved, err := ui.NewConfirmer(assumeYes).ConfirmDelete(cmd.Context(), "item", itemID)
	if err != nil {
		return err
	}
	if !approved {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return nil
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := client.DeleteItem(cmd.Context(), itemID); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted item %d\n", itemID)
	return nil
}
