package coretypes

import (
	"encoding/json"
	"time"

	"github.com/tmrpc/tmrpc/libs/bytes"
)

// Tx is an arbitrary byte array. The node treats transactions as opaque blobs;
// any encoding or signing scheme is the application's concern, not ours.
type Tx []byte

// BlockID identifies a block by its hash and the hash of its part set.
type BlockID struct {
	Hash          bytes.HexBytes `json:"hash"`
	PartSetHeader PartSetHeader  `json:"parts"`
}

type PartSetHeader struct {
	Total uint32         `json:"total,string"`
	Hash  bytes.HexBytes `json:"hash"`
}

// Header contains the subset of block header fields the RPC surface reports.
type Header struct {
	Version json.RawMessage `json:"version"`
	ChainID string          `json:"chain_id"`
	Height  int64           `json:"height,string"`
	Time    time.Time       `json:"time"`

	LastBlockID BlockID `json:"last_block_id"`

	LastCommitHash bytes.HexBytes `json:"last_commit_hash"`
	DataHash       bytes.HexBytes `json:"data_hash"`

	ValidatorsHash     bytes.HexBytes `json:"validators_hash"`
	NextValidatorsHash bytes.HexBytes `json:"next_validators_hash"`
	ConsensusHash      bytes.HexBytes `json:"consensus_hash"`
	AppHash            bytes.HexBytes `json:"app_hash"`
	LastResultsHash    bytes.HexBytes `json:"last_results_hash"`

	EvidenceHash    bytes.HexBytes `json:"evidence_hash"`
	ProposerAddress bytes.HexBytes `json:"proposer_address"`
}

// BlockData holds the transactions contained in a block.
type BlockData struct {
	Txs []Tx `json:"txs"`
}

// Block is the decoded block body. Commit and evidence are kept raw: verifying
// them is the node's job, not the client's.
type Block struct {
	Header     Header          `json:"header"`
	Data       BlockData       `json:"data"`
	Evidence   json.RawMessage `json:"evidence"`
	LastCommit json.RawMessage `json:"last_commit"`
}

//-----------------------------------------------------------------------------

// Node status-related info.
type ProtocolVersion struct {
	P2P   uint64 `json:"p2p,string"`
	Block uint64 `json:"block,string"`
	App   uint64 `json:"app,string"`
}

type NodeInfoOther struct {
	TxIndex    string `json:"tx_index"`
	RPCAddress string `json:"rpc_address"`
}

// NodeInfo is the basic node information exchanged during the p2p handshake
// and reported by `status`.
type NodeInfo struct {
	ProtocolVersion ProtocolVersion `json:"protocol_version"`
	NodeID          string          `json:"id"`
	ListenAddr      string          `json:"listen_addr"`
	Network         string          `json:"network"`
	Version         string          `json:"version"`
	Channels        bytes.HexBytes  `json:"channels"`
	Moniker         string          `json:"moniker"`
	Other           NodeInfoOther   `json:"other"`
}

// Info about the node's syncing state
type SyncInfo struct {
	LatestBlockHash   bytes.HexBytes `json:"latest_block_hash"`
	LatestAppHash     bytes.HexBytes `json:"latest_app_hash"`
	LatestBlockHeight int64          `json:"latest_block_height,string"`
	LatestBlockTime   time.Time      `json:"latest_block_time"`

	EarliestBlockHash   bytes.HexBytes `json:"earliest_block_hash"`
	EarliestAppHash     bytes.HexBytes `json:"earliest_app_hash"`
	EarliestBlockHeight int64          `json:"earliest_block_height,string"`
	EarliestBlockTime   time.Time      `json:"earliest_block_time"`

	CatchingUp bool `json:"catching_up"`
}

// Info about the node's validator
type ValidatorInfo struct {
	Address     bytes.HexBytes  `json:"address"`
	PubKey      json.RawMessage `json:"pub_key"`
	VotingPower int64           `json:"voting_power,string"`
}

// Node Status
type ResultStatus struct {
	NodeInfo      NodeInfo      `json:"node_info"`
	SyncInfo      SyncInfo      `json:"sync_info"`
	ValidatorInfo ValidatorInfo `json:"validator_info"`
}

//-----------------------------------------------------------------------------

// A peer, as reported by `net_info`.
type Peer struct {
	NodeInfo   NodeInfo        `json:"node_info"`
	IsOutbound bool            `json:"is_outbound"`
	RemoteIP   string          `json:"remote_ip"`
	Connection json.RawMessage `json:"connection_status"`
}

// Info about peer connections
type ResultNetInfo struct {
	Listening bool     `json:"listening"`
	Listeners []string `json:"listeners"`
	NPeers    int      `json:"n_peers,string"`
	Peers     []Peer   `json:"peers"`
}

//-----------------------------------------------------------------------------

// Genesis file. The genesis document is kept raw: its app_state is
// application-defined and has no fixed schema.
type ResultGenesis struct {
	Genesis json.RawMessage `json:"genesis"`
}

// Single block (with meta)
type ResultBlock struct {
	BlockID BlockID `json:"block_id"`
	Block   *Block  `json:"block"`
}

//-----------------------------------------------------------------------------

// List of mempool txs
type ResultUnconfirmedTxs struct {
	Count      int   `json:"n_txs,string"`
	Total      int   `json:"total,string"`
	TotalBytes int64 `json:"total_bytes,string"`
	Txs        []Tx  `json:"txs"`
}

//-----------------------------------------------------------------------------

// Validator, as reported by `validators`. Validators are sorted first by
// voting power (descending), then by address (ascending).
type Validator struct {
	Address          bytes.HexBytes  `json:"address"`
	PubKey           json.RawMessage `json:"pub_key"`
	VotingPower      int64           `json:"voting_power,string"`
	ProposerPriority int64           `json:"proposer_priority,string"`
}

// Validators for a height.
type ResultValidators struct {
	BlockHeight int64       `json:"block_height,string"`
	Validators  []Validator `json:"validators"`

	Count int `json:"count,string"`
	Total int `json:"total,string"`
}

//-----------------------------------------------------------------------------

// ResponseInfo is the ABCI application's self-description, as relayed through
// `abci_info`.
type ResponseInfo struct {
	Data    string `json:"data"`
	Version string `json:"version"`

	AppVersion uint64 `json:"app_version,string"`

	LastBlockHeight  int64          `json:"last_block_height,string"`
	LastBlockAppHash bytes.HexBytes `json:"last_block_app_hash"`
}

// Info abci msg
type ResultABCIInfo struct {
	Response ResponseInfo `json:"response"`
}

// ResponseQuery is the ABCI application's answer to an `abci_query`. The
// meaning of key and value depends entirely on how the application implements
// queries.
type ResponseQuery struct {
	Code uint32 `json:"code"`
	Log  string `json:"log"`
	Info string `json:"info"`

	Index int64  `json:"index,string"`
	Key   []byte `json:"key"`
	Value []byte `json:"value"`

	ProofOps json.RawMessage `json:"proofOps"`

	Height    int64  `json:"height,string"`
	Codespace string `json:"codespace"`
}

// Query abci msg
type ResultABCIQuery struct {
	Response ResponseQuery `json:"response"`
}

//-----------------------------------------------------------------------------

// CheckTx result
type ResultBroadcastTx struct {
	Code      uint32         `json:"code"`
	Data      bytes.HexBytes `json:"data"`
	Log       string         `json:"log"`
	Codespace string         `json:"codespace"`

	Hash bytes.HexBytes `json:"hash"`
}

// TxResult is the execution outcome of a transaction, either from CheckTx or
// from DeliverTx.
type TxResult struct {
	Code      uint32          `json:"code"`
	Data      []byte          `json:"data"`
	Log       string          `json:"log"`
	Info      string          `json:"info"`
	GasWanted int64           `json:"gas_wanted,string"`
	GasUsed   int64           `json:"gas_used,string"`
	Events    json.RawMessage `json:"events"`
	Codespace string          `json:"codespace"`
}

// CheckTx and DeliverTx results
type ResultBroadcastTxCommit struct {
	CheckTx   TxResult       `json:"check_tx"`
	DeliverTx TxResult       `json:"deliver_tx"`
	Hash      bytes.HexBytes `json:"hash"`
	Height    int64          `json:"height,string"`
}

//-----------------------------------------------------------------------------

// empty results
type ResultHealth struct{}

//-----------------------------------------------------------------------------

// Event data from a subscription, as delivered over a websocket.
type ResultEvent struct {
	Query  string          `json:"query"`
	Data   json.RawMessage `json:"data"`
	Events json.RawMessage `json:"events"`
}
