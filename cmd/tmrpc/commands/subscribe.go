package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	rpcclient "github.com/tmrpc/tmrpc/jsonrpc/client"
	"github.com/tmrpc/tmrpc/jsonrpc/types"
)

var SubscribeCmd = &cobra.Command{
	Use:   "subscribe [query]",
	Short: "Stream events matching a query over websocket",
	Long: `Stream events matching a query over websocket.

Events are printed as they arrive until interrupted. The query uses the
node's event query language, for example:

	tmrpc subscribe "tm.event = 'NewBlock'"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		ws, err := rpcclient.NewWS(viper.GetString(flagRemote), "/websocket")
		if err != nil {
			return err
		}
		ws.Logger = logger.With("subscriber", uuid.NewString())

		if err := ws.Start(); err != nil {
			return err
		}
		defer func() {
			if err := ws.Stop(); err != nil {
				logger.Error("failed to stop websocket client", "err", err)
			}
		}()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if err := ws.Subscribe(ctx, query); err != nil {
			return fmt.Errorf("subscribe %q: %w", query, err)
		}

		for {
			select {
			case <-ctx.Done():
				return nil
			case resp, ok := <-ws.ResponsesCh:
				if !ok {
					return nil
				}
				if resp.Error != nil {
					return resp.Error
				}
				if err := printResponse(resp); err != nil {
					return err
				}
			}
		}
	},
}

func printResponse(resp types.RPCResponse) error {
	var result interface{}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return fmt.Errorf("malformed event: %w", err)
	}
	return printJSON(result)
}
