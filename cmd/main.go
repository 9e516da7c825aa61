package main

import (
	"os"

	"tradeledger/internal/app"

	"github.com/sirupsen/logrus"
)

//	@title			Trade Ledger API
//	@version		1.0
//	@description	Wallet trade ledger and exchange quotes.
//	@BasePath		/api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped")
		os.Exit(1)
	}
}
