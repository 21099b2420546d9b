package commands

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmrpc/tmrpc/client"
)

var broadcastMode string

var BroadcastTxCmd = &cobra.Command{
	Use:   "broadcast-tx [tx]",
	Short: "Broadcast a hex-encoded transaction to the chain",
	Long: `Broadcast a hex-encoded transaction to the chain.

The mode decides how long to wait: async returns right away, sync waits for
the mempool check, and commit waits until the transaction is in a block.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tx, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("transaction %q is not valid hex: %w", args[0], err)
		}

		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			logger.Info("broadcasting transaction", "mode", broadcastMode, "size", len(tx))
			switch broadcastMode {
			case "commit":
				return c.BroadcastTxCommit(ctx, tx)
			case "sync":
				return c.BroadcastTxSync(ctx, tx)
			case "async":
				return c.BroadcastTxAsync(ctx, tx)
			default:
				return nil, fmt.Errorf("unknown broadcast mode %q (want commit, sync or async)", broadcastMode)
			}
		})
	},
}

func init() {
	BroadcastTxCmd.Flags().StringVar(&broadcastMode, "mode", "commit",
		"how long to wait for the transaction: commit, sync or async")
}
