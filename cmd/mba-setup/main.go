// Package main provides the entry point for the mba-setup CLI.
package main

import (
	"os"

	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/cmd/mba-setup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
