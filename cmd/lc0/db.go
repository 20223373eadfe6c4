package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/AlexisOlson/lc0/internal/logging"
	"github.com/AlexisOlson/lc0/internal/storage"
)

// runDB is the entry point for the game log admin mini-app.
func runDB(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query")
	}

	switch args[0] {
	case "init":
		return runDBInit(args[1:])
	case "delete":
		return runDBDelete(args[1:])
	case "query":
		return runDBQuery(args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func openStore(path string) (*storage.Store, error) {
	log, err := logging.New("")
	if err != nil {
		return nil, err
	}
	return storage.NewStore(path, log)
}

func runDBInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := openStore(*path)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	fmt.Printf("Database initialized at: %s\n", *path)
	return nil
}

func runDBDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := openStore(*path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}
	fmt.Printf("Database deleted: %s\n", *path)
	return nil
}

func runDBQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	gameID := fs.String("gameId", "", "Game ID to filter (optional, * for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := openStore(*path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if len(games) == 0 {
		fmt.Println("No games found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tInitial FEN\tStart Time")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, g := range games {
		fen := g.InitialFEN
		if len(fen) > 40 {
			fen = fen[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.GameID, fen, g.StartTimeUTC.Format("2006-01-02 15:04:05"))

		moves, err := store.QueryBestMoves(g.GameID)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		for _, m := range moves {
			fmt.Fprintf(w, "  %s\tdepth %d nodes %d\t%d ms\n", m.BestMove, m.Depth, m.Nodes, m.ElapsedMS)
		}
	}
	return w.Flush()
}
