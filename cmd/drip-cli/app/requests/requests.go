package requests

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/evm-faucet/drip/cmd/drip-cli/app/helper"
	services "github.com/evm-faucet/drip/cmd/drip/services"
	"github.com/evm-faucet/drip/internal/drip/store"
)

var Cmd = &cobra.Command{
	Use:   "requests",
	Short: "Inspect drip requests",
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid request id %q: %w", args[0], err)
		}

		dripConfig, err := helper.LoadConfig(cmd)
		if err != nil {
			return err
		}

		s, err := services.NewStore(dripConfig.Db)
		if err != nil {
			return err
		}
		defer s.Close()

		request, err := s.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendRows([]table.Row{
			{"ID", request.ID},
			{"Address", request.Address},
			{"IP", request.IP},
			{"Status", request.Status},
			{"Tx hash", request.TxHash},
			{"Failure reason", request.FailureReason},
			{"Created", request.CreatedAt.Format(time.RFC3339)},
			{"Updated", request.UpdatedAt.Format(time.RFC3339)},
		})
		t.Render()

		return nil
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List requests waiting for reconciliation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		dripConfig, err := helper.LoadConfig(cmd)
		if err != nil {
			return err
		}

		s, err := services.NewStore(dripConfig.Db)
		if err != nil {
			return err
		}
		defer s.Close()

		requests, err := s.GetBroadcast(cmd.Context(), store.Cursor{}, limit)
		if err != nil {
			return err
		}

		counts, err := s.CountByStatus(cmd.Context())
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"ID", "Address", "Tx hash", "Age"})
		for _, r := range requests {
			t.AppendRow(table.Row{r.ID, r.Address, r.TxHash, time.Since(r.CreatedAt).Round(time.Second).String()})
		}
		t.AppendFooter(table.Row{"", "", "broadcast total", counts[store.StatusBroadcast]})
		t.Render()

		return nil
	},
}

func init() {
	pendingCmd.Flags().Int("limit", 50, "maximum number of requests to list")

	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(pendingCmd)
}
