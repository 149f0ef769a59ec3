/*
Package main is the entry point for the chat server: it loads the single
positional <port> argument, initializes the log sink, constructs the
server, and runs it until an interrupt signal triggers a graceful
shutdown.

Grounded on hzchat/cmd/main.go's load-config, init-logger,
signal.NotifyContext, construct-and-run, graceful-shutdown structure.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hzchat/internal/configs"
	"hzchat/internal/pkg/logx"
	"hzchat/internal/server"
)

func main() {
	cfg, err := configs.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	sink, err := logx.NewSink(configs.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to initialize log sink: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()

	logx.Info(fmt.Sprintf("log file opened at %s", sink.Path()))

	srv, err := server.New(cfg.Port, *logx.Logger())
	if err != nil {
		logx.Error(err, "failed to start server")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go srv.Run()

	<-ctx.Done()
	logx.Info("received shutdown signal, draining connections")

	srv.Stop()
	logx.Info("server stopped cleanly")
}
