package client

// The types in this file define the JSON encoding for RPC method parameters
// from the client to the server.

import (
	"github.com/tmrpc/tmrpc/libs/bytes"
)

type noArgs struct{}

type abciQueryArgs struct {
	Path   string         `json:"path"`
	Data   bytes.HexBytes `json:"data"`
	Height int64          `json:"height,string"`
	Prove  bool           `json:"prove"`
}

type txArgs struct {
	Tx []byte `json:"tx"`
}

type unconfirmedArgs struct {
	Limit *int `json:"limit,string,omitempty"`
}

type heightArgs struct {
	Height *int64 `json:"height,string,omitempty"`
}

type validatorArgs struct {
	Height  *int64 `json:"height,string,omitempty"`
	Page    *int   `json:"page,string,omitempty"`
	PerPage *int   `json:"per_page,string,omitempty"`
}
