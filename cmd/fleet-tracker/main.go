package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	lib "github.com/theoremus-urban-solutions/fleet-tracker"
	"github.com/theoremus-urban-solutions/fleet-tracker/config"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default: config.yml, ./config/config.yml)")
	mode := flag.String("mode", "serve", "serve|oneshot")
	call := flag.String("call", "devices", "oneshot output: devices|summary|vm|gtfsrt")
	format := flag.String("format", "json", "json for devices and summary, json|xml for vm, json|pb for gtfsrt")
	ticks := flag.Int("ticks", 0, "oneshot: ticks to simulate before printing")
	flag.Parse()

	lib.InitLogging()
	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	if err := config.LoadAppConfig(paths...); err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := lib.NewApp(ctx, config.Config, nil)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer app.Close()

	switch *mode {
	case "serve":
		if err := serve(ctx, app); err != nil {
			log.Fatalf("server error: %v", err)
		}
	case "oneshot":
		out, err := app.Oneshot(ctx, *call, *format, *ticks)
		if err != nil {
			log.Fatalf("oneshot: %v", err)
		}
		_, _ = os.Stdout.Write(out)
		fmt.Println()
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func serve(ctx context.Context, app *lib.App) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.Run(ctx) })
	g.Go(func() error { return lib.NewServer(app).Start(ctx) })
	return g.Wait()
}
