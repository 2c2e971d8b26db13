package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	gatewayx "github.com/angelonuoha/openclaw/gateway"
	configx "github.com/angelonuoha/openclaw/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the call webhook gateway",
	Long: `Runs the HTTP server that receives call status webhooks from the
platform and keeps the call record store current.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := configx.New[gatewayx.Config]("GATEWAY")
		if err != nil {
			return err
		}
		srv, err := gatewayx.New(buildRecords(ctx), *cfg)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
