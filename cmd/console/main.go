// Package main is the entry point for the console CLI.
package main

import (
	"os"

	"github.com/jrsteele09/go-auth-console/cmd/console/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
