package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := LoadConfig()
	app := NewApp(cfg, os.Stdout, os.Stderr)
	rootCmd := SetupCommands(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// rejected punches were already shown to the user
		if !errors.Is(err, ErrPrecondition) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
