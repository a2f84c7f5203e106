// cmd/collecta/commands/collections.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Annany2002/collecta-backend/client"
	"github.com/Annany2002/collecta-backend/cmd/collecta/output"
	"github.com/Annany2002/collecta-backend/internal/domain"
)

// listFlags are the paging and display filter flags shared by list commands.
type listFlags struct {
	limit  int
	offset int
	sort   string
	order  string
	search string
	since  string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Page size (server default when 0)")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Rows to skip")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort key")
	cmd.Flags().StringVar(&f.order, "order", "", "asc or desc")
	cmd.Flags().StringVar(&f.search, "search", "", "Case-insensitive text filter on the fetched page")
	cmd.Flags().StringVar(&f.since, "since", "", "Keep rows dated on or after YYYY-MM-DD")
}

func (f *listFlags) query() client.ListQuery {
	return client.ListQuery{Limit: f.limit, Offset: f.offset, Sort: f.sort, Order: f.order}
}

func (f *listFlags) filter() (client.Filter, error) {
	since, err := parseSince(f.since)
	if err != nil {
		return client.Filter{}, err
	}
	return client.Filter{Search: f.search, Since: since}, nil
}

var (
	collectionList listFlags
	collectionType string
	colName        string
	colDescription string
)

var collectionsCmd = &cobra.Command{
	Use:     "collections",
	Aliases: []string{"col"},
	Short:   "Manage collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := collectionList.filter()
		if err != nil {
			return err
		}
		filter.Type = collectionType

		ctx, cancel := requestContext(cmd)
		defer cancel()
		page, err := newClient().ListCollections(ctx, collectionList.query())
		if err != nil {
			return err
		}
		printCollections(filter.Collections(page))
		return nil
	},
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		col, err := newClient().CreateCollection(ctx, client.CollectionInput{
			Name:        changed(cmd, "name", colName),
			Type:        changed(cmd, "type", collectionType),
			Description: changed(cmd, "description", colDescription),
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(col)
		}
		output.Success("Created collection %q (id %d)", col.Name, col.ID)
		return nil
	},
}

var collectionsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a collection; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		col, err := newClient().UpdateCollection(ctx, id, client.CollectionInput{
			Name:        changed(cmd, "name", colName),
			Type:        changed(cmd, "type", collectionType),
			Description: changed(cmd, "description", colDescription),
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(col)
		}
		output.Success("Updated collection %d", col.ID)
		return nil
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a collection with its items and events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := newClient().DeleteCollection(ctx, id); err != nil {
			return err
		}
		output.Success("Deleted collection %d", id)
		return nil
	},
}

func printCollections(rows []client.Collection) {
	if jsonOutput {
		_ = output.JSON(rows)
		return
	}
	table := make([][]string, 0, len(rows))
	for _, col := range rows {
		table = append(table, []string{
			fmt.Sprint(col.ID), col.Name, orDash(col.Type), col.CreatedAt.Format(domain.DateLayout), orDash(col.Description),
		})
	}
	output.Table([]string{"ID", "NAME", "TYPE", "CREATED", "DESCRIPTION"}, table)
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
	collectionsCmd.AddCommand(collectionsListCmd, collectionsCreateCmd, collectionsUpdateCmd, collectionsDeleteCmd)

	collectionList.register(collectionsListCmd)
	collectionsListCmd.Flags().StringVar(&collectionType, "type", "", "Keep collections of this type")

	for _, cmd := range []*cobra.Command{collectionsCreateCmd, collectionsUpdateCmd} {
		cmd.Flags().StringVar(&colName, "name", "", "Collection name")
		cmd.Flags().StringVar(&collectionType, "type", "", "Collection type")
		cmd.Flags().StringVar(&colDescription, "description", "", "Description")
	}
	_ = collectionsCreateCmd.MarkFlagRequired("name")
}
