package uci

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexisOlson/lc0/internal/version"
)

// Names of the registered options the responder reads at render time.
const (
	OptChess960      = "UCI_Chess960"
	OptShowWDL       = "UCI_ShowWDL"
	OptShowMovesLeft = "UCI_ShowMovesLeft"
)

// Toggles exposes the live configuration the responder consults while
// rendering. Values are re-read on every render, never cached.
type Toggles interface {
	Bool(name string) bool
}

// Responder renders structured events into protocol lines and writes
// them to the output sink. The mutex is the single serialization
// boundary of the engine: a batch of lines is rendered and emitted
// atomically, so lines from the command path and from background search
// progress never interleave.
type Responder struct {
	mu      sync.Mutex
	out     io.Writer
	toggles Toggles
	log     *zap.SugaredLogger
}

func NewResponder(out io.Writer, toggles Toggles, log *zap.SugaredLogger) *Responder {
	return &Responder{out: out, toggles: toggles, log: log}
}

// SendRaw writes the given lines as one atomic batch.
func (r *Responder) SendRaw(lines ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range lines {
		r.log.Debugf("<< %s", line)
		fmt.Fprintln(r.out, line)
	}
}

// SendID emits the engine identity lines.
func (r *Responder) SendID() {
	r.SendRaw(
		"id name Lc0 v"+version.String(),
		"id author The LCZero Authors.",
	)
}

// OutputBestMove renders a best-move event as a single line. Optional
// clauses appear in fixed order: ponder, player, gameid, side.
func (r *Responder) OutputBestMove(bm BestMove) {
	c960 := r.toggles.Bool(OptChess960)

	var b strings.Builder
	b.WriteString("bestmove ")
	b.WriteString(formatMove(bm.Move, c960))
	if bm.Ponder != "" {
		b.WriteString(" ponder ")
		b.WriteString(formatMove(bm.Ponder, c960))
	}
	if bm.Player != -1 {
		b.WriteString(" player ")
		b.WriteString(strconv.Itoa(bm.Player))
	}
	if bm.GameID != -1 {
		b.WriteString(" gameid ")
		b.WriteString(strconv.Itoa(bm.GameID))
	}
	if bm.SideBlack != nil {
		b.WriteString(" side ")
		b.WriteString(sideName(*bm.SideBlack))
	}
	r.SendRaw(b.String())
}

// OutputThinkingInfo renders a sequence of progress events, one line
// each, emitted as a single atomic batch in event order.
func (r *Responder) OutputThinkingInfo(infos []ThinkingInfo) {
	c960 := r.toggles.Bool(OptChess960)
	showWDL := r.toggles.Bool(OptShowWDL)
	showMovesLeft := r.toggles.Bool(OptShowMovesLeft)

	lines := make([]string, 0, len(infos))
	for _, info := range infos {
		var b strings.Builder
		b.WriteString("info")
		appendInt(&b, "player", info.Player)
		appendInt(&b, "gameid", info.GameID)
		if info.SideBlack != nil {
			b.WriteString(" side ")
			b.WriteString(sideName(*info.SideBlack))
		}
		if info.Depth >= 0 {
			b.WriteString(" depth ")
			b.WriteString(strconv.Itoa(max(info.Depth, 1)))
		}
		appendInt(&b, "seldepth", info.SelDepth)
		appendInt64(&b, "time", info.Time)
		appendInt64(&b, "nodes", info.Nodes)
		if info.Mate != nil {
			b.WriteString(" score mate ")
			b.WriteString(strconv.Itoa(*info.Mate))
		}
		if info.Score != nil {
			b.WriteString(" score cp ")
			b.WriteString(strconv.Itoa(*info.Score))
		}
		if info.WDL != nil && showWDL {
			fmt.Fprintf(&b, " wdl %d %d %d", info.WDL.Win, info.WDL.Draw, info.WDL.Loss)
		}
		if info.MovesLeft != nil && showMovesLeft {
			b.WriteString(" movesleft ")
			b.WriteString(strconv.Itoa(*info.MovesLeft))
		}
		appendInt(&b, "hashfull", info.Hashfull)
		appendInt64(&b, "nps", info.NPS)
		appendInt64(&b, "tbhits", info.TBHits)
		appendInt(&b, "multipv", info.MultiPV)
		if len(info.PV) > 0 {
			b.WriteString(" pv")
			for _, move := range info.PV {
				b.WriteString(" ")
				b.WriteString(formatMove(move, c960))
			}
		}
		if info.Comment != "" {
			b.WriteString(" string ")
			b.WriteString(info.Comment)
		}
		lines = append(lines, b.String())
	}
	r.SendRaw(lines...)
}

func appendInt(b *strings.Builder, clause string, v int) {
	if v >= 0 {
		b.WriteString(" ")
		b.WriteString(clause)
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(v))
	}
}

func appendInt64(b *strings.Builder, clause string, v int64) {
	if v >= 0 {
		b.WriteString(" ")
		b.WriteString(clause)
		b.WriteString(" ")
		b.WriteString(strconv.FormatInt(v, 10))
	}
}

func sideName(black bool) string {
	if black {
		return "black"
	}
	return "white"
}
