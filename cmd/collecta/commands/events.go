// cmd/collecta/commands/events.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Annany2002/collecta-backend/client"
	"github.com/Annany2002/collecta-backend/cmd/collecta/output"
)

var (
	eventList listFlags

	eventName        string
	eventLocation    string
	eventDate        string
	eventDescription string
	eventRating      int
	eventMoveTo      int64
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage the events of a collection",
}

var eventsListCmd = &cobra.Command{
	Use:   "list <collection-id>",
	Short: "List the events of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		filter, err := eventList.filter()
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		page, err := newClient().ListEvents(ctx, collectionID, eventList.query())
		if err != nil {
			return err
		}
		printEvents(filter.Events(page))
		return nil
	},
}

func eventInput(cmd *cobra.Command) client.EventInput {
	return client.EventInput{
		Name:         changed(cmd, "name", eventName),
		Location:     changed(cmd, "location", eventLocation),
		Date:         changed(cmd, "date", eventDate),
		Description:  changed(cmd, "description", eventDescription),
		Rating:       changed(cmd, "rating", eventRating),
		CollectionID: changed(cmd, "move-to", eventMoveTo),
	}
}

var eventsAddCmd = &cobra.Command{
	Use:   "add <collection-id>",
	Short: "Add an event to a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionID, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		ev, err := newClient().CreateEvent(ctx, collectionID, eventInput(cmd))
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(ev)
		}
		output.Success("Added event %q on %s (id %d)", ev.Name, ev.Date, ev.ID)
		return nil
	},
}

var eventsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an event; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		ev, err := newClient().UpdateEvent(ctx, id, eventInput(cmd))
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(ev)
		}
		output.Success("Updated event %d", ev.ID)
		return nil
	},
}

var eventsRateCmd = &cobra.Command{
	Use:   "rate <id> <0-5|none>",
	Short: "Rate a past event or clear its rating",
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
		ev, err := newClient().RateEvent(ctx, id, rating)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(ev)
		}
		output.Success("Event %d rating: %s", ev.ID, ratingText(ev.Rating))
		return nil
	},
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := newClient().DeleteEvent(ctx, id); err != nil {
			return err
		}
		output.Success("Deleted event %d", id)
		return nil
	},
}

func printEvents(rows []client.Event) {
	if jsonOutput {
		_ = output.JSON(rows)
		return
	}
	table := make([][]string, 0, len(rows))
	for _, ev := range rows {
		table = append(table, []string{fmt.Sprint(ev.ID), ev.Name, ev.Date, orDash(ev.Location), ratingText(ev.Rating)})
	}
	output.Table([]string{"ID", "NAME", "DATE", "LOCATION", "RATING"}, table)
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsAddCmd, eventsUpdateCmd, eventsRateCmd, eventsDeleteCmd)

	eventList.register(eventsListCmd)

	for _, cmd := range []*cobra.Command{eventsAddCmd, eventsUpdateCmd} {
		cmd.Flags().StringVar(&eventName, "name", "", "Event name")
		cmd.Flags().StringVar(&eventLocation, "location", "", "Location")
		cmd.Flags().StringVar(&eventDate, "date", "", "Date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&eventDescription, "description", "", "Description")
		cmd.Flags().IntVar(&eventRating, "rating", 0, "Rating from 0 to 5, past events only")
	}
	eventsUpdateCmd.Flags().Int64Var(&eventMoveTo, "move-to", 0, "Move the event to this collection")
	_ = eventsAddCmd.MarkFlagRequired("name")
	_ = eventsAddCmd.MarkFlagRequired("date")
}
