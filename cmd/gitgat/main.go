// Package main provides the entry point for the gitgat CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sumatoshi-tech/gitgat/cmd/gitgat/commands"
	"github.com/Sumatoshi-tech/gitgat/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.NewStatsCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
