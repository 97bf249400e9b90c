package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cafe/pkg/app"
)

// main exposes a root-level entry point so operators can simply run `go run cafe.go`.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "cafe stopped with error: %v\n", err)
		os.Exit(1)
	}
}
