package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/constraints/internal/command"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := command.New(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args)
	if err == nil {
		return 0
	}
	if code, ok := command.IsExit(err); ok {
		return code
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
