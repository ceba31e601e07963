package app

import (
	"github.com/spf13/cobra"

	"github.com/evm-faucet/drip/cmd/drip-cli/app/publish"
	"github.com/evm-faucet/drip/cmd/drip-cli/app/reconcile"
	"github.com/evm-faucet/drip/cmd/drip-cli/app/requests"
)

var RootCmd = &cobra.Command{
	Use:   "drip-cli",
	Short: "Operator tool for the drip worker",
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "directory to look for config.yaml")

	RootCmd.AddCommand(reconcile.Cmd)
	RootCmd.AddCommand(requests.Cmd)
	RootCmd.AddCommand(publish.Cmd)
}

func Execute() error {
	return RootCmd.Execute()
}
