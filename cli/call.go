package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	vapix "github.com/angelonuoha/openclaw/pkg/vapi"
)

var callWait bool

var callCmd = &cobra.Command{
	Use:   "call <call-id>",
	Short: "Show a call's status on the platform",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dialer, err := buildDialer()
		if err != nil {
			return err
		}

		if callWait {
			call, err := dialer.PollCall(cmd.Context(), args[0], defaultPollInterval)
			if err != nil {
				return err
			}
			printEndedCall(call)
			return nil
		}

		call, err := dialer.GetCall(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Call %s is %s.\n", call.ID, call.Status)
		if call.Ended() {
			printEndedCall(call)
		}
		return nil
	},
}

func printEndedCall(call *vapix.Call) {
	fmt.Printf("Call %s ended", call.ID)
	if call.EndedReason != "" {
		fmt.Printf(" (%s)", call.EndedReason)
	}
	fmt.Println(".")
	if call.Summary != "" {
		fmt.Printf("Summary: %s\n", call.Summary)
	}
}

func init() {
	callCmd.Flags().BoolVar(&callWait, "wait", false, "Poll until the call ends")
	rootCmd.AddCommand(callCmd)
}
