// Package main is the entry point for the closer CLI.
package main

import (
	"os"

	"github.com/f3rmion/closer/cmd/closer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
