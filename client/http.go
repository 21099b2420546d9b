package client

import (
	"context"
	"net/http"

	"github.com/tmrpc/tmrpc/coretypes"
	rpcclient "github.com/tmrpc/tmrpc/jsonrpc/client"
	"github.com/tmrpc/tmrpc/libs/bytes"
)

/*
HTTP is a Client implementation that communicates with a Tendermint node over
JSON-RPC.

This is the main implementation you probably want to use in production code.
In test code, a mocked node (an httptest server speaking JSON-RPC) works just
as well.

Example:

	c, err := client.New("tcp://192.168.1.10:26657")
	if err != nil {
		// handle error
	}

	res, err := c.Status(context.Background())
	if err != nil {
		// handle error
	}

The remote may use the tcp, http, https or unix schemes. If the remote carries
userinfo (user:pass@host), it is sent as HTTP basic auth. Each method performs
exactly one round trip; a failed call reports either a transport error or the
decoded JSON-RPC error returned by the node.

HTTP is safe for concurrent use by multiple goroutines.
*/
type HTTP struct {
	remote string
	rpc    *rpcclient.Client
}

var _ Client = (*HTTP)(nil)

// New takes a remote endpoint in the form <protocol>://<host>:<port>. An error
// is returned on invalid remote.
func New(remote string) (*HTTP, error) {
	httpClient, err := rpcclient.DefaultHTTPClient(remote)
	if err != nil {
		return nil, err
	}
	return NewWithClient(remote, httpClient)
}

// NewWithConfig constructs a client from connection parameters instead of a
// remote address string, applying the config's defaults (a local node on the
// standard RPC port).
func NewWithConfig(cfg Config) (*HTTP, error) {
	return New(cfg.Remote())
}

// NewDefault targets a node on the local machine with the standard RPC port.
func NewDefault() (*HTTP, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithClient allows you to set a custom http client. An error is returned
// on invalid remote. The function panics when client is nil.
func NewWithClient(remote string, client *http.Client) (*HTTP, error) {
	if client == nil {
		panic("nil http.Client provided")
	}

	rc, err := rpcclient.NewWithHTTPClient(remote, client)
	if err != nil {
		return nil, err
	}

	return &HTTP{
		rpc:    rc,
		remote: remote,
	}, nil
}

// Remote returns the remote network address in a string form.
func (c *HTTP) Remote() string {
	return c.remote
}

func (c *HTTP) Status(ctx context.Context) (*coretypes.ResultStatus, error) {
	result := new(coretypes.ResultStatus)
	if _, err := c.rpc.Call(ctx, "status", noArgs{}, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTP) NetInfo(ctx context.Context) (*coretypes.ResultNetInfo, error) {
	result := new(coretypes.ResultNetInfo)
	if _, err := c.rpc.Call(ctx, "net_info", noArgs{}, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTP) Health(ctx context.Context) (*coretypes.ResultHealth, error) {
	result := new(coretypes.ResultHealth)
	if _, err := c.rpc.Call(ctx, "health", noArgs{}, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTP) Genesis(ctx context.Context) (*coretypes.ResultGenesis, error) {
	result := new(coretypes.ResultGenesis)
	if _, err := c.rpc.Call(ctx, "genesis", noArgs{}, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Block returns the block at the given height. A nil height means the latest
// block.
func (c *HTTP) Block(ctx context.Context, height *int64) (*coretypes.ResultBlock, error) {
	result := new(coretypes.ResultBlock)
	if _, err := c.rpc.Call(ctx, "block", heightArgs{Height: height}, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Validators returns the validator set at the given height. Validators are
// sorted first by voting power (descending), then by address (ascending). A
// nil height means the latest height; nil page and perPage leave paging to the
// node's defaults.
func (c *HTTP) Validators(ctx context.Context, height *int64, page, perPage *int) (*coretypes.ResultValidators, error) {
	result := new(coretypes.ResultValidators)
	args := validatorArgs{Height: height, Page: page, PerPage: perPage}
	if _, err := c.rpc.Call(ctx, "validators", args, result); err != nil {
		return nil, err
	}
	return result, nil
}

// UnconfirmedTxs returns mempool transactions. A nil limit leaves the count to
// the node's default (30).
func (c *HTTP) UnconfirmedTxs(ctx context.Context, limit *int) (*coretypes.ResultUnconfirmedTxs, error) {
	result := new(coretypes.ResultUnconfirmedTxs)
	if _, err := c.rpc.Call(ctx, "unconfirmed_txs", unconfirmedArgs{Limit: limit}, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTP) NumUnconfirmedTxs(ctx context.Context) (*coretypes.ResultUnconfirmedTxs, error) {
	result := new(coretypes.ResultUnconfirmedTxs)
	if _, err := c.rpc.Call(ctx, "num_unconfirmed_txs", noArgs{}, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTP) ABCIInfo(ctx context.Context) (*coretypes.ResultABCIInfo, error) {
	result := new(coretypes.ResultABCIInfo)
	if _, err := c.rpc.Call(ctx, "abci_info", noArgs{}, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTP) ABCIQuery(ctx context.Context, path string, data bytes.HexBytes) (*coretypes.ResultABCIQuery, error) {
	return c.ABCIQueryWithOptions(ctx, path, data, DefaultABCIQueryOptions)
}

func (c *HTTP) ABCIQueryWithOptions(
	ctx context.Context,
	path string,
	data bytes.HexBytes,
	opts ABCIQueryOptions,
) (*coretypes.ResultABCIQuery, error) {
	result := new(coretypes.ResultABCIQuery)
	args := abciQueryArgs{Path: path, Data: data, Height: opts.Height, Prove: opts.Prove}
	if _, err := c.rpc.Call(ctx, "abci_query", args, result); err != nil {
		return nil, err
	}
	return result, nil
}

// BroadcastTxCommit submits the transaction and waits until it is committed to
// a block (or rejected by CheckTx). Use with care: it blocks for the full
// commit latency of the chain.
func (c *HTTP) BroadcastTxCommit(ctx context.Context, tx coretypes.Tx) (*coretypes.ResultBroadcastTxCommit, error) {
	result := new(coretypes.ResultBroadcastTxCommit)
	if _, err := c.rpc.Call(ctx, "broadcast_tx_commit", txArgs{Tx: tx}, result); err != nil {
		return nil, err
	}
	return result, nil
}

// BroadcastTxAsync submits the transaction and returns immediately, without
// waiting for CheckTx.
func (c *HTTP) BroadcastTxAsync(ctx context.Context, tx coretypes.Tx) (*coretypes.ResultBroadcastTx, error) {
	return c.broadcastTX(ctx, "broadcast_tx_async", tx)
}

// BroadcastTxSync submits the transaction and waits for the CheckTx response.
func (c *HTTP) BroadcastTxSync(ctx context.Context, tx coretypes.Tx) (*coretypes.ResultBroadcastTx, error) {
	return c.broadcastTX(ctx, "broadcast_tx_sync", tx)
}

func (c *HTTP) broadcastTX(ctx context.Context, route string, tx coretypes.Tx) (*coretypes.ResultBroadcastTx, error) {
	result := new(coretypes.ResultBroadcastTx)
	if _, err := c.rpc.Call(ctx, route, txArgs{Tx: tx}, result); err != nil {
		return nil, err
	}
	return result, nil
}
