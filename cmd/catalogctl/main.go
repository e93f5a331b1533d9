// Command catalogctl generates sample catalog data and drives load tests
// against a running catalog API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bookstore-catalog/pkg/logger"

	"github.com/urfave/cli/v3"
)

func main() {
	os.Exit(realMain(os.Args))
}

func realMain(args []string) int {
	logger.Init("development", os.Getenv("LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "catalogctl",
		Usage: "bookstore catalog tooling",
		Commands: []*cli.Command{
			generateCommand(),
			loadtestCommand(),
		},
	}
}
