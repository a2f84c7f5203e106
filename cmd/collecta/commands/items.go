// cmd/collecta/commands/items.go
package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Annany2002/collecta-backend/client"
	"github.com/Annany2002/collecta-backend/cmd/collecta/output"
)

var (
	itemList          listFlags
	itemHigh          bool
	itemMinImportance int

	itemName        string
	itemImportance  int
	itemWeight      float64
	itemPrice       float64
	itemAcquired    string
	itemDescription string
	itemRating      int
	itemMoveTo      int64
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage the items of a collection",
}

var itemsListCmd = &cobra.Command{
	Use:   "list <collection-id>",
	Short: "List the items of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		filter, err := itemList.filter()
		if err != nil {
			return err
		}
		filter.MinImportance = itemMinImportance
		if itemHigh && filter.MinImportance < client.HighImportance {
			filter.MinImportance = client.HighImportance
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		page, err := newClient().ListItems(ctx, collectionID, itemList.query())
		if err != nil {
			return err
		}
		printItems(filter.Items(page))
		return nil
	},
}

func itemInput(cmd *cobra.Command) client.ItemInput {
	return client.ItemInput{
		Name:            changed(cmd, "name", itemName),
		Importance:      changed(cmd, "importance", itemImportance),
		Weight:          changed(cmd, "weight", itemWeight),
		Price:           changed(cmd, "price", itemPrice),
		AcquisitionDate: changed(cmd, "acquired", itemAcquired),
		Description:     changed(cmd, "description", itemDescription),
		Rating:          changed(cmd, "rating", itemRating),
		CollectionID:    changed(cmd, "move-to", itemMoveTo),
	}
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <collection-id>",
	Short: "Add an item to a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		it, err := newClient().CreateItem(ctx, collectionID, itemInput(cmd))
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(it)
		}
		output.Success("Added item %q (id %d)", it.Name, it.ID)
		return nil
	},
}

var itemsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an item; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		it, err := newClient().UpdateItem(ctx, id, itemInput(cmd))
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(it)
		}
		output.Success("Updated item %d", it.ID)
		return nil
	},
}

var itemsRateCmd = &cobra.Command{
	Use:   "rate <id> <0-5|none>",
	Short: "Rate an item or clear its rating",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		rating, err := parseRating(args[1])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		it, err := newClient().RateItem(ctx, id, rating)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(it)
		}
		output.Success("Item %d rating: %s", it.ID, ratingText(it.Rating))
		return nil
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := newClient().DeleteItem(ctx, id); err != nil {
			return err
		}
		output.Success("Deleted item %d", id)
		return nil
	},
}

func floatText(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func printItems(rows []client.Item) {
	if jsonOutput {
		_ = output.JSON(rows)
		return
	}
	table := make([][]string, 0, len(rows))
	for _, it := range rows {
		table = append(table, []string{
			fmt.Sprint(it.ID), it.Name, strconv.Itoa(it.Importance), ratingText(it.Rating),
			floatText(it.Price), floatText(it.Weight), orDash(it.AcquisitionDate),
		})
	}
	output.Table([]string{"ID", "NAME", "IMPORTANCE", "RATING", "PRICE", "WEIGHT", "ACQUIRED"}, table)
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	itemsCmd.AddCommand(itemsListCmd, itemsAddCmd, itemsUpdateCmd, itemsRateCmd, itemsDeleteCmd)

	itemList.register(itemsListCmd)
	itemsListCmd.Flags().BoolVar(&itemHigh, "high", false, "Keep only high importance items")
	itemsListCmd.Flags().IntVar(&itemMinImportance, "min-importance", 0, "Keep items with at least this importance")

	for _, cmd := range []*cobra.Command{itemsAddCmd, itemsUpdateCmd} {
		cmd.Flags().StringVar(&itemName, "name", "", "Item name")
		cmd.Flags().IntVar(&itemImportance, "importance", 0, "Importance from 0 to 10")
		cmd.Flags().Float64Var(&itemWeight, "weight", 0, "Weight")
		cmd.Flags().Float64Var(&itemPrice, "price", 0, "Price")
		cmd.Flags().StringVar(&itemAcquired, "acquired", "", "Acquisition date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&itemDescription, "description", "", "Description")
		cmd.Flags().IntVar(&itemRating, "rating", 0, "Rating from 0 to 5")
	}
	itemsUpdateCmd.Flags().Int64Var(&itemMoveTo, "move-to", 0, "Move the item to this collection")
	_ = itemsAddCmd.MarkFlagRequired("name")
	_ = itemsAddCmd.MarkFlagRequired("importance")
}
