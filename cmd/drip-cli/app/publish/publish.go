package publish

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evm-faucet/drip/cmd/drip-cli/app/helper"
	services "github.com/evm-faucet/drip/cmd/drip/services"
	"github.com/evm-faucet/drip/internal/drip"
)

var Cmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a work item for an existing request",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetInt64("id")
		if err != nil {
			return err
		}

		address, err := cmd.Flags().GetString("address")
		if err != nil {
			return err
		}

		ip, err := cmd.Flags().GetString("ip")
		if err != nil {
			return err
		}

		data, err := drip.WorkItem{RequestID: id, Address: address, IP: ip}.Encode()
		if err != nil {
			return err
		}

		if _, err = drip.DecodeWorkItem(data); err != nil {
			return err
		}

		dripConfig, err := helper.LoadConfig(cmd)
		if err != nil {
			return err
		}

		client, err := services.NewMqClient(helper.NewLogger(dripConfig), dripConfig)
		if err != nil {
			return err
		}
		defer client.Shutdown()

		err = client.Publish(cmd.Context(), data)
		if err != nil {
			return err
		}

		fmt.Printf("published work item for request %d\n", id)
		return nil
	},
}

func init() {
	Cmd.Flags().Int64("id", 0, "id of the persisted request")
	Cmd.Flags().String("address", "", "recipient address")
	Cmd.Flags().String("ip", "", "requester ip")

	_ = Cmd.MarkFlagRequired("id")
	_ = Cmd.MarkFlagRequired("address")
}
