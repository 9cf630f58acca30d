// Package main is the entry point for the landedcost CLI and API server.
//
// @title                       Landed Cost API
// @version                     1.0
// @description                 Computes the full landed cost of importing goods.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"

	"github.com/99minutos/landed-cost/cmd/landedcost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
