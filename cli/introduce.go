package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configx "github.com/angelonuoha/openclaw/pkg/config"
	introductionx "github.com/angelonuoha/openclaw/skill/introduction"
)

var (
	introducePhone   string
	introduceName    string
	introduceContext string
	introduceWait    bool
)

var introduceCmd = &cobra.Command{
	Use:   "introduce",
	Short: "Call a number and introduce the assistant",
	Example: `  openclaw introduce --phone "+12125550142" --name "Dana"
  openclaw introduce --phone "(212) 555-0142" --context "following up on your inquiry" --wait`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dialer, err := buildDialer()
		if err != nil {
			return err
		}
		records := buildRecords(ctx)

		cfg, err := configx.New[introductionx.Config]("SKILL")
		if err != nil {
			return err
		}
		intro, err := introductionx.New(dialer, records, *cfg)
		if err != nil {
			return err
		}

		outcome, err := intro.Place(ctx, introductionx.Request{
			PhoneNumber:   introducePhone,
			RecipientName: introduceName,
			Context:       introduceContext,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Call %s to %s is %s.\n", outcome.CallID, outcome.DialedNumber, outcome.Status)

		if !introduceWait {
			return nil
		}
		fmt.Println("Waiting for the call to end...")
		call, err := intro.Await(ctx, outcome.CallID, defaultPollInterval)
		if err != nil {
			return err
		}
		printEndedCall(call)
		return nil
	},
}

func init() {
	introduceCmd.Flags().StringVar(&introducePhone, "phone", "", "Number to call, E.164 or national format")
	introduceCmd.Flags().StringVar(&introduceName, "name", "", "Recipient's name")
	introduceCmd.Flags().StringVar(&introduceContext, "context", "", "Why the assistant is calling")
	introduceCmd.Flags().BoolVar(&introduceWait, "wait", false, "Poll until the call ends and print the summary")
	_ = introduceCmd.MarkFlagRequired("phone")
	rootCmd.AddCommand(introduceCmd)
}
