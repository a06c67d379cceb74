// Package signal provides utilities for handling OS signals in a graceful manner.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// RunWithContext runs action with a context that is cancelled when SIGINT
// or SIGTERM is received, and returns the action's error. The action is
// expected to return promptly once the context is done, so that running
// animations can play their exit transition and restore the terminal.
func RunWithContext(action func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return action(ctx)
}
