// Command numstr validates numeric strings in documents, from the command
// line or over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/numstr/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
