// Package main is the entry point for the hotel booking TUI.
package main

import (
	"fmt"
	"os"

	"github.com/j-veylop/hotel-booking-tui/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
