package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tmrpc/tmrpc/client"
)

var (
	blockHeight     int64
	validatorHeight int64
	page            int
	perPage         int
	mempoolLimit    int
)

var BlockCmd = &cobra.Command{
	Use:   "block",
	Short: "Fetch a block, by default the latest one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			// a non-positive height means the latest block
			var height *int64
			if blockHeight > 0 {
				height = &blockHeight
			}
			return c.Block(ctx, height)
		})
	},
}

var ValidatorsCmd = &cobra.Command{
	Use:   "validators",
	Short: "Fetch the validator set, by default at the latest height",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			var height *int64
			var pagePtr, perPagePtr *int
			if validatorHeight > 0 {
				height = &validatorHeight
			}
			if page > 0 {
				pagePtr = &page
			}
			if perPage > 0 {
				perPagePtr = &perPage
			}
			return c.Validators(ctx, height, pagePtr, perPagePtr)
		})
	},
}

var UnconfirmedTxsCmd = &cobra.Command{
	Use:   "unconfirmed-txs",
	Short: "List transactions waiting in the node's mempool",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			var limit *int
			if mempoolLimit > 0 {
				limit = &mempoolLimit
			}
			return c.UnconfirmedTxs(ctx, limit)
		})
	},
}

var NumUnconfirmedTxsCmd = &cobra.Command{
	Use:   "num-unconfirmed-txs",
	Short: "Count transactions waiting in the node's mempool",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			return c.NumUnconfirmedTxs(ctx)
		})
	},
}

func init() {
	BlockCmd.Flags().Int64Var(&blockHeight, "height", 0, "block height (default: latest)")
	ValidatorsCmd.Flags().Int64Var(&validatorHeight, "height", 0, "height (default: latest)")
	ValidatorsCmd.Flags().IntVar(&page, "page", 0, "page number (1-based)")
	ValidatorsCmd.Flags().IntVar(&perPage, "per-page", 0, "validators per page (max 100)")
	UnconfirmedTxsCmd.Flags().IntVar(&mempoolLimit, "limit", 0, "maximum number of transactions to return")
}
