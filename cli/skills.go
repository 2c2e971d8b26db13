package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	skillx "github.com/angelonuoha/openclaw/skill"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List what the assistant can do",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, desc := range skillx.Catalog() {
			fmt.Printf("%s (%s)\n", desc.Name, desc.Type)
			fmt.Printf("  %s\n", desc.Summary)
			fmt.Printf("  e.g. %s\n\n", desc.Example)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)
}
