// Package main runs circprog, a circular progress indicator for the
// terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"circprog/internal/cli"
	"circprog/internal/signal"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	err := signal.RunWithContext(func(ctx context.Context) error {
		return cli.Execute(ctx, version, os.Args[1:], os.Stdout, os.Stderr)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
