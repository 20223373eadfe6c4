package uci

// knownCommands maps each protocol command to the set of keyword tokens
// recognized inside its argument list. A command the dispatcher accepts
// must have an entry here, even if the set is empty. The table is fixed
// at init time and never mutated.
var knownCommands = map[string]map[string]bool{
	"uci":        {},
	"isready":    {},
	"setoption":  {"name": true, "value": true, "context": true},
	"ucinewgame": {},
	"position":   {"fen": true, "startpos": true, "moves": true},
	"go": {
		"infinite":    true,
		"wtime":       true,
		"btime":       true,
		"winc":        true,
		"binc":        true,
		"movestogo":   true,
		"depth":       true,
		"mate":        true,
		"nodes":       true,
		"movetime":    true,
		"searchmoves": true,
		"ponder":      true,
	},
	"stop":      {},
	"ponderhit": {},
	"quit":      {},
	"xyzzy":     {},
	"fen":       {},
}

// setoptionArgsKey is the params slot holding the raw, untokenized
// remainder of a setoption line. The setoption value payload is free
// text that may contain schema keywords, so it bypasses the generic
// keyword scanner and is handed to ParseSetOption whole.
const setoptionArgsKey = "args"
