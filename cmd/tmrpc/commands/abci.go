package commands

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmrpc/tmrpc/client"
)

var (
	abciPath   string
	abciHeight int64
	abciProve  bool
)

var ABCIInfoCmd = &cobra.Command{
	Use:   "abci-info",
	Short: "Print info about the application running on the node",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			return c.ABCIInfo(ctx)
		})
	},
}

var ABCIQueryCmd = &cobra.Command{
	Use:   "abci-query [data]",
	Short: "Query the application for some information",
	Long: `Query the application for some information.

The data argument is hex-encoded and passed to the application as raw bytes.
Interpretation of --path is up to the application.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("data %q is not valid hex: %w", args[0], err)
		}
		return runQuery(func(ctx context.Context, c *client.HTTP) (interface{}, error) {
			opts := client.ABCIQueryOptions{Height: abciHeight, Prove: abciProve}
			return c.ABCIQueryWithOptions(ctx, abciPath, data, opts)
		})
	},
}

func init() {
	ABCIQueryCmd.Flags().StringVar(&abciPath, "path", "", "query path understood by the application")
	ABCIQueryCmd.Flags().Int64Var(&abciHeight, "height", 0, "height to query at (default: latest)")
	ABCIQueryCmd.Flags().BoolVar(&abciProve, "prove", false, "include proofs of the transaction's inclusion in the block")
}
