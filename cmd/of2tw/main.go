// This is the entry point for the of2tw CLI, which converts an
// OmniFocus CSV export into TaskWarrior's JSON import format.
// Build with: go build -o bin/of2tw ./cmd/of2tw
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
