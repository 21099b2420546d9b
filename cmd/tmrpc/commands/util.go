package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tmrpc/tmrpc/client"
)

// printJSON writes an RPC result to stdout as indented JSON. Logs go to
// stderr, so the output stays pipeable.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runQuery is the shared body of the read-only subcommands: build a client,
// run one call, print the result.
func runQuery(call func(ctx context.Context, c *client.HTTP) (interface{}, error)) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout())
	defer cancel()

	result, err := call(ctx, c)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Remote(), err)
	}
	return printJSON(result)
}
