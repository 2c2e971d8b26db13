package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	configx "github.com/angelonuoha/openclaw/pkg/config"
	reservationx "github.com/angelonuoha/openclaw/skill/reservation"
)

var (
	reserveRestaurant string
	reserveLocation   string
	reserveWhen       string
	reserveTime       string
	reserveParty      int
	reserveName       string
	reserveNotes      string
	reservePhone      string
	reserveWait       bool
)

var reserveCmd = &cobra.Command{
	Use:   "reserve [request]",
	Short: "Book a restaurant table over the phone",
	Long: `Finds the restaurant's number and calls it to book a table.

Pass structured flags, or describe the whole reservation in one sentence
and let the configured model fill in the details.`,
	Example: `  openclaw reserve --restaurant "Luigi's" --location "New York" \
      --when "next friday" --party-size 4 --reservation-name "Dana Smith"
  openclaw reserve "table for two at nobu malibu tomorrow at 8pm under alex chen"`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dialer, err := buildDialer()
		if err != nil {
			return err
		}
		directory, err := buildDirectory()
		if err != nil {
			return err
		}
		records := buildRecords(ctx)

		cfg, err := configx.New[reservationx.Config]("SKILL")
		if err != nil {
			return err
		}
		orch, err := reservationx.New(directory, dialer, buildInterpreter(), records, *cfg)
		if err != nil {
			return err
		}

		outcome, err := orch.Reserve(ctx, reservationx.Request{
			RawText:         strings.Join(args, " "),
			Restaurant:      reserveRestaurant,
			Location:        reserveLocation,
			When:            reserveWhen,
			TimeOfDay:       reserveTime,
			PartySize:       reserveParty,
			ReservationName: reserveName,
			Notes:           reserveNotes,
			PhoneOverride:   reservePhone,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Calling %s at %s about %s.\n", outcome.Restaurant, outcome.DialedNumber, outcome.RequestedDate)
		fmt.Printf("Call %s is %s.\n", outcome.CallID, outcome.Status)

		if !reserveWait {
			return nil
		}
		fmt.Println("Waiting for the call to end...")
		call, err := orch.Await(ctx, outcome.CallID)
		if err != nil {
			return err
		}
		printEndedCall(call)
		return nil
	},
}

func init() {
	reserveCmd.Flags().StringVar(&reserveRestaurant, "restaurant", "", "Restaurant name")
	reserveCmd.Flags().StringVar(&reserveLocation, "location", "", "City or neighborhood to search in")
	reserveCmd.Flags().StringVar(&reserveWhen, "when", "", `Date phrase, e.g. "tomorrow" or "next friday"`)
	reserveCmd.Flags().StringVar(&reserveTime, "time", "", `Preferred time, e.g. "7pm"`)
	reserveCmd.Flags().IntVar(&reserveParty, "party-size", 0, "Number of people")
	reserveCmd.Flags().StringVar(&reserveName, "reservation-name", "", "Name to book under")
	reserveCmd.Flags().StringVar(&reserveNotes, "notes", "", "Special requests to mention")
	reserveCmd.Flags().StringVar(&reservePhone, "phone", "", "Call this number instead of looking the restaurant up")
	reserveCmd.Flags().BoolVar(&reserveWait, "wait", false, "Poll until the call ends and print the summary")
	rootCmd.AddCommand(reserveCmd)
}
