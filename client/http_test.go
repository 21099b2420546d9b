package client_test

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmrpc/tmrpc/client"
	"github.com/tmrpc/tmrpc/coretypes"
	rpctypes "github.com/tmrpc/tmrpc/jsonrpc/types"
)

// mockNode is an httptest server that speaks just enough JSON-RPC to stand in
// for a Tendermint node. Responses are canned per method; params of the last
// request per method are recorded for inspection.
type mockNode struct {
	*httptest.Server

	results    map[string]string // method -> result JSON
	lastParams map[string]json.RawMessage
	calls      int64
}

func newMockNode(t *testing.T) *mockNode {
	n := &mockNode{
		results:    make(map[string]string),
		lastParams: make(map[string]json.RawMessage),
	}
	n.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&n.calls, 1)

		body, err := ioutil.ReadAll(r.Body)
		require.NoError(t, err)

		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		n.lastParams[req.Method] = req.Params

		w.Header().Set("Content-Type", "application/json")
		result, ok := n.results[req.Method]
		if !ok {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) +
				`,"error":{"code":-32601,"message":"Method not found"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":` + result + `}`))
	}))
	t.Cleanup(n.Server.Close)
	return n
}

func (n *mockNode) client(t *testing.T) *client.HTTP {
	t.Helper()
	c, err := client.New(n.URL)
	require.NoError(t, err)
	return c
}

func TestStatus(t *testing.T) {
	n := newMockNode(t)
	n.results["status"] = `{
	  "node_info": {"id": "deadbeef", "network": "test-chain", "moniker": "localhost"},
	  "sync_info": {"latest_block_height": "42", "catching_up": false},
	  "validator_info": {"voting_power": "10"}
	}`

	c := n.client(t)
	res, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-chain", res.NodeInfo.Network)
	assert.Equal(t, int64(42), res.SyncInfo.LatestBlockHeight)

	// back-to-back calls are independent round trips, no hidden caching
	before := atomic.LoadInt64(&n.calls)
	_, err = c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before+1, atomic.LoadInt64(&n.calls))
}

func TestNetInfo(t *testing.T) {
	n := newMockNode(t)
	n.results["net_info"] = `{"listening": true, "listeners": ["Listener(@)"], "n_peers": "1",
	  "peers": [{"node_info": {"id": "5576458aef205977e18fd50b274e9b5d9014525a"}, "is_outbound": true, "remote_ip": "95.216.22.36"}]}`

	res, err := n.client(t).NetInfo(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Listening)
	assert.Equal(t, 1, res.NPeers)
	require.Len(t, res.Peers, 1)
	assert.Equal(t, "95.216.22.36", res.Peers[0].RemoteIP)
}

func TestHealth(t *testing.T) {
	n := newMockNode(t)
	n.results["health"] = `{}`

	_, err := n.client(t).Health(context.Background())
	require.NoError(t, err)
}

func TestGenesis(t *testing.T) {
	n := newMockNode(t)
	n.results["genesis"] = `{"genesis": {"chain_id": "test-chain", "app_state": {"whatever": 1}}}`

	res, err := n.client(t).Genesis(context.Background())
	require.NoError(t, err)

	var doc struct {
		ChainID string `json:"chain_id"`
	}
	require.NoError(t, json.Unmarshal(res.Genesis, &doc))
	assert.Equal(t, "test-chain", doc.ChainID)
}

func TestBlock(t *testing.T) {
	n := newMockNode(t)
	n.results["block"] = `{"block_id": {"hash": "AA"}, "block": {"header": {"height": "7"}, "data": {"txs": []}}}`

	c := n.client(t)

	// latest block: no height in params
	res, err := c.Block(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Block.Header.Height)
	assert.JSONEq(t, `{}`, string(n.lastParams["block"]))

	// explicit height is sent as a string, per the node's JSON conventions
	height := int64(7)
	_, err = c.Block(context.Background(), &height)
	require.NoError(t, err)
	assert.JSONEq(t, `{"height": "7"}`, string(n.lastParams["block"]))
}

func TestValidators(t *testing.T) {
	n := newMockNode(t)
	n.results["validators"] = `{"block_height": "5", "validators": [
	  {"address": "5D6A51A8E9899C44079C6AF90618BA0369070E6E", "voting_power": "10", "proposer_priority": "0"}
	], "count": "1", "total": "1"}`

	height := int64(5)
	page, perPage := 1, 30
	res, err := n.client(t).Validators(context.Background(), &height, &page, &perPage)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.BlockHeight)
	require.Len(t, res.Validators, 1)
	assert.Equal(t, int64(10), res.Validators[0].VotingPower)
	assert.JSONEq(t, `{"height": "5", "page": "1", "per_page": "30"}`, string(n.lastParams["validators"]))
}

func TestUnconfirmedTxs(t *testing.T) {
	n := newMockNode(t)
	n.results["unconfirmed_txs"] = `{"n_txs": "1", "total": "1", "total_bytes": "4", "txs": ["YWJjZA=="]}`
	n.results["num_unconfirmed_txs"] = `{"n_txs": "1", "total": "1", "total_bytes": "4"}`

	c := n.client(t)

	res, err := c.UnconfirmedTxs(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Txs, 1)
	assert.Equal(t, coretypes.Tx("abcd"), res.Txs[0])

	res, err = c.NumUnconfirmedTxs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.TotalBytes)
	assert.Empty(t, res.Txs)
}

func TestABCIInfo(t *testing.T) {
	n := newMockNode(t)
	n.results["abci_info"] = `{"response": {"data": "kvstore", "app_version": "1", "last_block_height": "3"}}`

	res, err := n.client(t).ABCIInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kvstore", res.Response.Data)
	assert.Equal(t, int64(3), res.Response.LastBlockHeight)
}

func TestABCIQuery(t *testing.T) {
	n := newMockNode(t)
	n.results["abci_query"] = `{"response": {"code": 0, "key": "YWJjZA==", "value": "YmNkZQ==", "height": "1"}}`

	res, err := n.client(t).ABCIQuery(context.Background(), "/key", []byte("abcd"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Response.Code)
	assert.Equal(t, []byte("abcd"), res.Response.Key)
	assert.Equal(t, []byte("bcde"), res.Response.Value)

	// data travels hex-encoded
	assert.JSONEq(t, `{"path": "/key", "data": "61626364", "height": "0", "prove": false}`,
		string(n.lastParams["abci_query"]))
}

func TestBroadcastTx(t *testing.T) {
	n := newMockNode(t)
	n.results["broadcast_tx_sync"] = `{"code": 0, "data": "", "log": "", "hash": "75CA0F856A4DA078FC4911580360E70CEFB2EBEE"}`
	n.results["broadcast_tx_async"] = `{"code": 0, "data": "", "log": "", "hash": "75CA0F856A4DA078FC4911580360E70CEFB2EBEE"}`
	n.results["broadcast_tx_commit"] = `{
	  "check_tx": {"code": 0}, "deliver_tx": {"code": 0},
	  "hash": "75CA0F856A4DA078FC4911580360E70CEFB2EBEE", "height": "26682"
	}`

	c := n.client(t)
	tx := coretypes.Tx("tx-payload")

	res, err := c.BroadcastTxSync(context.Background(), tx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Code)

	// the transaction travels base64-encoded inside the params
	assert.JSONEq(t, `{"tx": "dHgtcGF5bG9hZA=="}`, string(n.lastParams["broadcast_tx_sync"]))

	_, err = c.BroadcastTxAsync(context.Background(), tx)
	require.NoError(t, err)

	commit, err := c.BroadcastTxCommit(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, int64(26682), commit.Height)
	assert.EqualValues(t, 0, commit.CheckTx.Code)
}

func TestErrorsSurface(t *testing.T) {
	n := newMockNode(t)
	// no canned results: every method yields a JSON-RPC error

	c := n.client(t)
	_, err := c.Status(context.Background())
	require.Error(t, err)

	rpcErr, ok := err.(*rpctypes.RPCError)
	require.True(t, ok, "expected *rpctypes.RPCError, got %T", err)
	assert.Equal(t, -32601, rpcErr.Code)
}

func TestTransportFailuresSurface(t *testing.T) {
	// HTTP 500 with a non-JSON body
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("node is on fire"))
	}))
	defer ts.Close()

	c, err := client.New(ts.URL)
	require.NoError(t, err)
	_, err = c.Status(context.Background())
	require.Error(t, err)

	// connection refused
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	remote := dead.URL
	dead.Close()

	c, err = client.New(remote)
	require.NoError(t, err)
	_, err = c.Status(context.Background())
	require.Error(t, err)
}

func TestDefaultConfigTargetsLocalNode(t *testing.T) {
	cfg := client.DefaultConfig()
	assert.Equal(t, "http://127.0.0.1:26657", cfg.Remote())

	// zero values fall back to the same defaults
	assert.Equal(t, "http://127.0.0.1:26657", client.Config{}.Remote())

	c, err := client.NewDefault()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:26657", c.Remote())
}
