package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/AlexisOlson/lc0/internal/config"
	"github.com/AlexisOlson/lc0/internal/engine"
	"github.com/AlexisOlson/lc0/internal/logging"
	"github.com/AlexisOlson/lc0/internal/options"
	"github.com/AlexisOlson/lc0/internal/storage"
	"github.com/AlexisOlson/lc0/internal/uci"
	"github.com/AlexisOlson/lc0/internal/webserver"
)

func main() {
	// "lc0 db ..." is a separate admin mini-app for the game log.
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := runDB(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	configPath := flag.String("config", "", "Config file path (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var store *storage.Store
	if cfg.DatabasePath != "" {
		store, err = storage.NewStore(cfg.DatabasePath, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open game log: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.InitDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize game log: %v\n", err)
			os.Exit(1)
		}
	}

	opts := options.NewRegistry()
	engine.RegisterOptions(opts)

	responder := uci.NewResponder(os.Stdout, opts, log)
	ctrl := engine.New(responder, opts, store, log)
	loop := uci.NewLoop(responder, opts, ctrl, log)

	if cfg.WebEnabled {
		go func() {
			if err := webserver.Start(cfg.WebHost, cfg.WebPort, opts, ctrl); err != nil {
				log.Errorw("status server failed", "error", err)
			}
		}()
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		if err := runConsole(loop); err != nil {
			fmt.Fprintf(os.Stderr, "Console error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := loop.Run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Input error: %v\n", err)
		os.Exit(1)
	}
}
