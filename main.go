// Package main is the entry point for the openclaw CLI.
package main

import (
	"os"

	"github.com/angelonuoha/openclaw/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
