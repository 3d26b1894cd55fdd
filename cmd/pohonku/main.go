package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pohonku/pohonku/internal/buildinfo"
	"github.com/pohonku/pohonku/internal/client/cli"
	"github.com/pohonku/pohonku/internal/client/config"
	"github.com/pohonku/pohonku/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	cfg := config.Load(os.Args[1:])
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Run(ctx)
	}()

	// the REPL is blocked on stdin; a signal ends the program without
	// waiting for the next line
	select {
	case <-done:
	case <-ctx.Done():
		logger.Info(context.Background(), "shutting down")
	}
}
