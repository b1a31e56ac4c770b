// Package main is the entry point for the datacat catalog server.
package main

import (
	"os"

	"github.com/datacat-dev/datacat/cmd/datacat/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
