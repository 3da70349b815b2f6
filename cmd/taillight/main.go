package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	taillight "taillight-go"
)

var (
	config   = "taillight.toml"
	renderer = ""
	verbose  = false
)

func init() {
	pflag.StringVarP(&config, "config", "c", config, "configuration file")
	pflag.StringVarP(&renderer, "renderer", "r", renderer, "override the configured renderer (term, window, none)")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose output")
}

func main() {
	pflag.Parse()

	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := readConfig()
	if err != nil {
		return err
	}
	if renderer != "" {
		cfg.Renderer = renderer
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	d, err := taillight.NewDaemon(cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	if cfg.Renderer == taillight.RendererWindow {
		err = d.RunWindow(ctx)
	} else {
		// Without a window there is no keyboard, so press the button on
		// every line of stdin.
		go pressOnStdin(d)
		err = d.Run(ctx)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("daemon failed: %w", err)
	}
	return nil
}

func pressOnStdin(d *taillight.Daemon) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		d.PressButton()
	}
}

func readConfig() (*taillight.Config, error) {
	f, err := os.Open(config)
	if err != nil {
		if os.IsNotExist(err) {
			return taillight.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return taillight.ParseConfig(f)
}
