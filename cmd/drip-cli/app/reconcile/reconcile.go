package reconcile

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/evm-faucet/drip/cmd/drip-cli/app/helper"
	services "github.com/evm-faucet/drip/cmd/drip/services"
)

var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run one reconciliation cycle over broadcast requests",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dripConfig, err := helper.LoadConfig(cmd)
		if err != nil {
			return err
		}

		logger := helper.NewLogger(dripConfig)

		clients, err := services.NewClients(cmd.Context(), logger, dripConfig)
		if err != nil {
			return err
		}
		defer clients.Close()

		reconciler, err := services.NewReconciler(logger, dripConfig, clients, nil)
		if err != nil {
			return err
		}

		result, err := reconciler.Reconcile(cmd.Context())
		if err != nil {
			return fmt.Errorf("reconciliation failed: %w", err)
		}

		if result.Skipped {
			fmt.Println("reconciliation skipped, another instance holds the lock")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Batches", "Sent", "Failed", "Pending", "Unknown", "Errored", "Truncated"})
		t.AppendRow(table.Row{result.Batches, result.Sent, result.Failed, result.Pending, result.Unknown, result.Errored, result.Truncated})
		t.Render()

		return nil
	},
}
