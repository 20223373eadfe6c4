package main

import (
	"io"

	"github.com/chzyer/readline"

	"github.com/AlexisOlson/lc0/internal/uci"
)

// runConsole drives the protocol loop interactively when stdin is a
// terminal, with history and line editing. Wire behavior is identical
// to pipe mode; only the input path differs.
func runConsole(loop *uci.Loop) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".lc0_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !loop.HandleLine(line) {
			return nil
		}
	}
}
