package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fisty/mcsfix/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
