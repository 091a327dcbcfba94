package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/di"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "path to the YAML config file")
	flag.BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug logging")
	flag.BoolVar(&flags.NoPush, "no-push", false, "collect and persist without committing or pushing")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "unable to load .env: %s\n", err)
		os.Exit(1)
	}

	app, cleanup, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to start: %s\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = app.Run(ctx)
	stop()
	app.Close()
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}
