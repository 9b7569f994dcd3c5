// Command promptctl is the operator CLI for the prompt marketplace: it lists
// stored prompts and exports snapshots of the backing list.
//
// It reads the same configuration as the server: defaults, the -c JSON file
// and PROMPTS_* environment variables.
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

	if err := newRootCmd(defaultDeps()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
