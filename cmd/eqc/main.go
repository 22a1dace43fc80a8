// Package main provides the eqc command-line calculator.
package main

import (
	"os"

	"github.com/eqcalc/eqcalc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
