// Package cli implements the command-line interface.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	configx "github.com/angelonuoha/openclaw/pkg/config"
	logx "github.com/angelonuoha/openclaw/pkg/logger"
)

const defaultPollInterval = 5 * time.Second

var envFile string

var rootCmd = &cobra.Command{
	Use:   "openclaw",
	Short: "An assistant that makes phone calls for you",
	Long: `openclaw places outbound phone calls through an AI voice platform.

It can introduce your assistant to someone, or find a restaurant and book
a table on your behalf. Run "openclaw skills" to see what it can do.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			configx.SetEnvFile(envFile)
		}
		logCfg, err := configx.New[logx.Config]("LOG")
		if err != nil {
			return err
		}
		logx.Init(*logCfg)
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to a .env file with credentials")
}
