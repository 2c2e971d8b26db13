package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent calls from the record store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store := buildRecords(ctx)
		recs, err := store.List(ctx, historyLimit)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("No recorded calls. Set RECORDS_DSN to keep call history.")
			return nil
		}

		for _, rec := range recs {
			line := fmt.Sprintf("%s  %-12s  %-11s  %s",
				rec.CreatedAt.Format("2006-01-02 15:04"), rec.Skill, rec.Status, rec.PhoneNumber)
			if rec.Restaurant != "" {
				line += fmt.Sprintf("  %s, %s", rec.Restaurant, rec.RequestedDate)
			}
			fmt.Println(line)
			if rec.Summary != "" {
				fmt.Printf("      %s\n", rec.Summary)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Most recent calls to show")
	rootCmd.AddCommand(historyCmd)
}
