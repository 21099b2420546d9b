package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tmrpc/tmrpc/client"
	rpcclient "github.com/tmrpc/tmrpc/jsonrpc/client"
	"github.com/tmrpc/tmrpc/libs/log"
)

const (
	flagRemote    = "remote"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagTimeout   = "timeout"
)

var logger = log.MustNewDefaultLogger(log.LogFormatPlain, log.LogLevelInfo, os.Stderr)

// RootCmd is the entry point for the tmrpc binary. Every subcommand talks to
// the node named by --remote, which can also come from the TMRPC_REMOTE
// environment variable or a config file.
var RootCmd = &cobra.Command{
	Use:   "tmrpc",
	Short: "Query and transact with a Tendermint node over RPC",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = log.NewDefaultLogger(
			viper.GetString(flagLogFormat),
			viper.GetString(flagLogLevel),
			os.Stderr,
		)
		if err != nil {
			return err
		}
		logger = logger.With("module", "main")
		return nil
	},
}

func init() {
	registerRootFlags(RootCmd)
}

func registerRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(flagRemote, client.DefaultConfig().Remote(),
		"RPC address of the node to connect to")
	cmd.PersistentFlags().String(flagLogLevel, log.LogLevelInfo, "log level")
	cmd.PersistentFlags().String(flagLogFormat, log.LogFormatPlain,
		"log format (plain or json)")
	cmd.PersistentFlags().Duration(flagTimeout, rpcclient.DefaultTimeout,
		"timeout for each RPC call")
}

// newClient builds an HTTP client for the remote named on the command line,
// with the configured per-call timeout.
func newClient() (*client.HTTP, error) {
	remote := viper.GetString(flagRemote)
	httpClient, err := rpcclient.DefaultHTTPClient(remote)
	if err != nil {
		return nil, fmt.Errorf("remote %q: %w", remote, err)
	}
	if t := viper.GetDuration(flagTimeout); t > 0 {
		httpClient.Timeout = t
	}
	return client.NewWithClient(remote, httpClient)
}

func callTimeout() time.Duration {
	if t := viper.GetDuration(flagTimeout); t > 0 {
		return t
	}
	return rpcclient.DefaultTimeout
}
