package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tmrpc/tmrpc/client"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print node status, including sync and validator info",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			return c.Status(ctx)
		})
	},
}

var NetInfoCmd = &cobra.Command{
	Use:   "net-info",
	Short: "Print network info, including the node's current peers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			return c.NetInfo(ctx)
		})
	},
}

var HealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the node's RPC endpoint is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			return c.Health(ctx)
		})
	},
}

var GenesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Print the genesis document of the node's chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			return c.Genesis(ctx)
		})
	},
}
