package uci

// StartposFen is the board encoding of the standard initial position,
// substituted when a position command uses startpos.
const StartposFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// GoRequest is the structured form of the go command. Optional integer
// limits are nil when the corresponding keyword was absent from the
// line; they never carry sentinel values.
type GoRequest struct {
	Infinite    bool
	Ponder      bool
	SearchMoves []string

	WTime     *int
	BTime     *int
	WInc      *int
	BInc      *int
	MovesToGo *int
	Depth     *int
	Mate      *int
	Nodes     *int
	MoveTime  *int
}

// BestMove is the final result event produced by the engine controller.
// Integer fields use -1 for absent; the formatter only reads it.
type BestMove struct {
	Move      string
	Ponder    string
	Player    int
	GameID    int
	SideBlack *bool
}

// NewBestMove returns a BestMove for the given move with every optional
// field marked absent.
func NewBestMove(move string) BestMove {
	return BestMove{Move: move, Player: -1, GameID: -1}
}

// WDL is a win/draw/loss probability triple in permille.
type WDL struct {
	Win  int
	Draw int
	Loss int
}

// ThinkingInfo is a periodic search progress event. Integer fields use
// -1 for absent; pointer fields are nil when absent.
type ThinkingInfo struct {
	Player    int
	GameID    int
	SideBlack *bool
	Depth     int
	SelDepth  int
	Time      int64
	Nodes     int64
	Mate      *int
	Score     *int
	WDL       *WDL
	MovesLeft *int
	Hashfull  int
	NPS       int64
	TBHits    int64
	MultiPV   int
	PV        []string
	Comment   string
}

// NewThinkingInfo returns a ThinkingInfo with every field marked absent.
func NewThinkingInfo() ThinkingInfo {
	return ThinkingInfo{
		Player:   -1,
		GameID:   -1,
		Depth:    -1,
		SelDepth: -1,
		Time:     -1,
		Nodes:    -1,
		Hashfull: -1,
		NPS:      -1,
		TBHits:   -1,
		MultiPV:  -1,
	}
}
