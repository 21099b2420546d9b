package main

import (
	cmd "github.com/tmrpc/tmrpc/cmd/tmrpc/commands"
	"github.com/tmrpc/tmrpc/libs/cli"
)

func main() {
	rootCmd := cmd.RootCmd
	rootCmd.AddCommand(
		cmd.StatusCmd,
		cmd.NetInfoCmd,
		cmd.HealthCmd,
		cmd.GenesisCmd,
		cmd.BlockCmd,
		cmd.ValidatorsCmd,
		cmd.UnconfirmedTxsCmd,
		cmd.NumUnconfirmedTxsCmd,
		cmd.ABCIInfoCmd,
		cmd.ABCIQueryCmd,
		cmd.BroadcastTxCmd,
		cmd.SubscribeCmd,
		cmd.VersionCmd,
	)

	// Execute reports any error and exits non-zero itself.
	_ = cli.PrepareBaseCmd(rootCmd, "TMRPC").Execute()
}
