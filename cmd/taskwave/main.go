// Package main provides the CLI entry point for the taskwave application.
package main

import (
	"fmt"
	"os"

	"github.com/harrison/taskwave/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
