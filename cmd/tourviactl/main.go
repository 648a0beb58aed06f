// Package main provides the entry point for the tourviactl CLI.
package main

import (
	"fmt"
	"os"

	"tourvia/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
