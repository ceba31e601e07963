package main

import (
	"log"
	"os"

	"github.com/evm-faucet/drip/cmd/drip-cli/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		log.Fatalf("failed to run drip-cli: %v", err)
	}

	os.Exit(0)
}
