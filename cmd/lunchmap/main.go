// Package main is the Lunchmap command-line client. It talks to the shop API
// over HTTP and runs the same workflows the map front end uses: one-shot
// subcommands for scripting and an interactive session for map-style use.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
