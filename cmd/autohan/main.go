package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"autohan/internal/app"
	"autohan/internal/cli"
)

func main() {
	_ = godotenv.Load()

	opts, err := cli.Parse(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "autohan: %v\n", err)
		os.Exit(1)
	}
	if opts.ShowHelp {
		fmt.Println(cli.Usage())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = app.NewRuntime(opts, os.Stdout).Run(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "autohan: %v\n", err)
		os.Exit(1)
	}
}
