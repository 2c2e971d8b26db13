package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	datesx "github.com/angelonuoha/openclaw/skill/dates"
)

var dateCmd = &cobra.Command{
	Use:   "date <expression>",
	Short: "Resolve a natural-language date phrase",
	Long: `Resolves phrases like "tomorrow", "next friday", "march 15th" or "3/15"
to a calendar date, the same way the reservation skill does before a call.`,
	Example: `  openclaw date tomorrow
  openclaw date next friday
  openclaw date "june 3rd"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved := datesx.Resolve(strings.Join(args, " "), time.Now())
		if !resolved.Valid {
			fmt.Printf("%q is not a date phrase I recognize; on a call it would be spoken verbatim.\n", resolved.Original)
			return nil
		}

		fmt.Println(resolved.Formatted)
		fmt.Printf("  date: %s\n", resolved.Date.Format("2006-01-02"))
		fmt.Printf("  day:  %s\n", resolved.DayOfWeek)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dateCmd)
}
