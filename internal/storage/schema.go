package storage

import "time"

// Schema creates the game log tables.
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id        TEXT PRIMARY KEY,
	initial_fen    TEXT NOT NULL,
	start_time_utc TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS bestmoves (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id          TEXT NOT NULL,
	position_fen     TEXT NOT NULL,
	bestmove         TEXT NOT NULL,
	ponder           TEXT,
	depth            INTEGER,
	nodes            INTEGER,
	elapsed_ms       INTEGER,
	created_time_utc TIMESTAMP NOT NULL,
	FOREIGN KEY (game_id) REFERENCES games(game_id)
);

CREATE INDEX IF NOT EXISTS idx_bestmoves_game ON bestmoves(game_id);
`

// GameRecord is one row of the games table.
type GameRecord struct {
	GameID       string
	InitialFEN   string
	StartTimeUTC time.Time
}

// BestMoveRecord is one row of the bestmoves table.
type BestMoveRecord struct {
	GameID         string
	PositionFEN    string
	BestMove       string
	Ponder         string
	Depth          int
	Nodes          int64
	ElapsedMS      int64
	CreatedTimeUTC time.Time
}
