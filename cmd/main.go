package main

import (
	"go-ledger-api/app"
)

// @title           Ledger API
// @version         1.0
// @description     A minimal banking ledger: owners, accounts and atomic money transfers with an auditable transaction history.

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
