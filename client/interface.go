package client

/*
The client package provides a general purpose interface (Client) for connecting
to a Tendermint node, as well as the HTTP implementation that talks to the
node's RPC surface over JSON-RPC.

General usage is given in the package comment of the HTTP client. The
interfaces are split so that callers which only need a slice of the
functionality (say, only broadcasting transactions) can accept the smallest
interface that serves them and mock it out in tests.
*/

import (
	"context"

	"github.com/tmrpc/tmrpc/coretypes"
	"github.com/tmrpc/tmrpc/libs/bytes"
)

// Client describes the full RPC surface this library supports. Every method
// performs one synchronous round trip to the node; there are no retries and no
// hidden state besides the configured remote address.
type Client interface {
	ABCIClient
	HistoryClient
	MempoolClient
	NetworkClient
	StatusClient
}

// ABCIClient groups together the functionality that principally affects the
// ABCI app, raw queries and transaction broadcast.
type ABCIClient interface {
	// Reading from abci app
	ABCIInfo(ctx context.Context) (*coretypes.ResultABCIInfo, error)
	ABCIQuery(ctx context.Context, path string, data bytes.HexBytes) (*coretypes.ResultABCIQuery, error)
	ABCIQueryWithOptions(ctx context.Context, path string, data bytes.HexBytes,
		opts ABCIQueryOptions) (*coretypes.ResultABCIQuery, error)

	// Writing to abci app
	BroadcastTxCommit(ctx context.Context, tx coretypes.Tx) (*coretypes.ResultBroadcastTxCommit, error)
	BroadcastTxAsync(ctx context.Context, tx coretypes.Tx) (*coretypes.ResultBroadcastTx, error)
	BroadcastTxSync(ctx context.Context, tx coretypes.Tx) (*coretypes.ResultBroadcastTx, error)
}

// HistoryClient provides access to data from genesis to now in large chunks.
type HistoryClient interface {
	Genesis(ctx context.Context) (*coretypes.ResultGenesis, error)
	Block(ctx context.Context, height *int64) (*coretypes.ResultBlock, error)
	Validators(ctx context.Context, height *int64, page, perPage *int) (*coretypes.ResultValidators, error)
}

// MempoolClient shows us data about current mempool state.
type MempoolClient interface {
	UnconfirmedTxs(ctx context.Context, limit *int) (*coretypes.ResultUnconfirmedTxs, error)
	NumUnconfirmedTxs(ctx context.Context) (*coretypes.ResultUnconfirmedTxs, error)
}

// NetworkClient shows us data about the networking of the node.
type NetworkClient interface {
	NetInfo(ctx context.Context) (*coretypes.ResultNetInfo, error)
	Health(ctx context.Context) (*coretypes.ResultHealth, error)
}

// StatusClient shows us the current status of the node.
type StatusClient interface {
	Status(ctx context.Context) (*coretypes.ResultStatus, error)
}

// ABCIQueryOptions can be used to provide options for ABCIQuery call other
// than the DefaultABCIQueryOptions.
type ABCIQueryOptions struct {
	Height int64
	Prove  bool
}

// DefaultABCIQueryOptions are latest height (0) and prove false.
var DefaultABCIQueryOptions = ABCIQueryOptions{Height: 0, Prove: false}
