package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/simbuah/go-api-http-client/cmd/simbuah/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCMD := commands.NewRootCMD()
	if err := rootCMD.ExecuteContext(ctx); err != nil {
		rootCMD.PrintErrln("Error:", err)
		stop()
		os.Exit(1)
	}
}
