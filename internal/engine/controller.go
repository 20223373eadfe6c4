// Package engine implements the decision-making controller behind the
// protocol loop: it tracks the current position, runs searches in the
// background and reports progress and results through a publisher.
// Move quality is not the point here; the controller exists to give the
// protocol core a complete counterpart with real concurrency.
package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexisOlson/lc0/internal/options"
	"github.com/AlexisOlson/lc0/internal/storage"
	"github.com/AlexisOlson/lc0/internal/uci"
)

// Names of the engine-owned options.
const (
	OptTemperature    = "Temperature"
	OptTempDecayMoves = "TempDecayMoves"
	OptTempDecayDelay = "TempDecayDelayMoves"
	OptTempCutoffMove = "TempCutoffMove"
	OptTempEndgame    = "TempEndgame"
	OptMoveOverheadMS = "MoveOverheadMs"
)

const defaultSearchDepth = 6

// Publisher receives asynchronous search events. The search goroutine
// calls it concurrently with the command path; serialization is the
// publisher's concern.
type Publisher interface {
	OutputBestMove(uci.BestMove)
	OutputThinkingInfo([]uci.ThinkingInfo)
}

// RegisterOptions registers the responder toggles and the engine's own
// options with the store, with their defaults.
func RegisterOptions(r *options.Registry) {
	r.AddCheck(uci.OptChess960, false)
	r.AddCheck(uci.OptShowWDL, true)
	r.AddCheck(uci.OptShowMovesLeft, false)

	r.AddString(OptTemperature, "0.0")
	r.AddSpin(OptTempDecayMoves, 0, 0, 100)
	r.AddSpin(OptTempDecayDelay, 0, 0, 100)
	r.AddSpin(OptTempCutoffMove, 0, 0, 1000)
	r.AddString(OptTempEndgame, "0.0")
	r.AddSpin(OptMoveOverheadMS, 100, 0, 10000)
}

// Controller implements the uci.Engine interface.
type Controller struct {
	mu        sync.Mutex
	publisher Publisher
	opts      *options.Registry
	store     *storage.Store // nil when game logging is disabled
	log       *zap.SugaredLogger
	rng       *rand.Rand

	ready  chan struct{}
	gameID string
	fen    string
	moves  []string
	search *searchState
}

type searchState struct {
	req       uci.GoRequest
	stop      chan struct{}
	ponderhit chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	hitOnce   sync.Once
}

func New(publisher Publisher, opts *options.Registry, store *storage.Store, log *zap.SugaredLogger) *Controller {
	c := &Controller{
		publisher: publisher,
		opts:      opts,
		store:     store,
		log:       log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		ready:     make(chan struct{}),
		fen:       uci.StartposFen,
	}
	// Backend warmup happens off the construction path; EnsureReady
	// blocks until it completes.
	go func() {
		close(c.ready)
	}()
	return c
}

// EnsureReady blocks until the backend is initialized and any state
// from a previous command has settled.
func (c *Controller) EnsureReady() error {
	<-c.ready
	return nil
}

// NewGame aborts any running search and resets to the standard start
// position under a fresh game ID.
func (c *Controller) NewGame() error {
	if err := c.Stop(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameID = uuid.New().String()
	c.fen = uci.StartposFen
	c.moves = nil
	c.log.Infow("new game", "game_id", c.gameID)

	if c.store != nil {
		c.store.RecordNewGame(storage.GameRecord{
			GameID:       c.gameID,
			InitialFEN:   c.fen,
			StartTimeUTC: time.Now().UTC(),
		})
	}
	return nil
}

// SetPosition stores the position verbatim. Move legality is not
// checked here.
func (c *Controller) SetPosition(fen string, moves []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.search != nil {
		return fmt.Errorf("cannot set position while searching")
	}
	c.fen = fen
	c.moves = append([]string(nil), moves...)
	return nil
}

// Go starts a search for the current position.
func (c *Controller) Go(req uci.GoRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.search != nil {
		return fmt.Errorf("search is already active")
	}

	st := &searchState{
		req:       req,
		stop:      make(chan struct{}),
		ponderhit: make(chan struct{}),
		done:      make(chan struct{}),
	}
	c.search = st
	go c.runSearch(st, c.fen, append([]string(nil), c.moves...), c.gameID)
	return nil
}

// Stop aborts the current search, if any, and waits for its best-move
// event to be published.
func (c *Controller) Stop() error {
	c.mu.Lock()
	st := c.search
	c.mu.Unlock()
	if st == nil {
		return nil
	}
	st.stopOnce.Do(func() { close(st.stop) })
	<-st.done
	return nil
}

// PonderHit converts a ponder search into a normal one; the search
// reports its best move once its limits are reached.
func (c *Controller) PonderHit() error {
	c.mu.Lock()
	st := c.search
	c.mu.Unlock()
	if st == nil {
		return fmt.Errorf("no search to ponderhit")
	}
	st.hitOnce.Do(func() { close(st.ponderhit) })
	return nil
}

// Position reports the current position for diagnostics.
func (c *Controller) Position() (string, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fen, append([]string(nil), c.moves...)
}

// Searching reports whether a search is in flight.
func (c *Controller) Searching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search != nil
}

// runSearch is the background search loop. It deepens until its limits
// are reached, publishing one progress event per iteration, then
// publishes the best move. Infinite and ponder searches hold the best
// move until stop (or ponderhit, for ponder).
func (c *Controller) runSearch(st *searchState, fen string, moves []string, gameID string) {
	start := time.Now()
	best, ponder := c.pickMove(st.req.SearchMoves, fen, len(moves))

	maxDepth := defaultSearchDepth
	if st.req.Depth != nil && *st.req.Depth > 0 {
		maxDepth = *st.req.Depth
	}
	var budget time.Duration
	if st.req.MoveTime != nil {
		budget = time.Duration(*st.req.MoveTime) * time.Millisecond
		overhead := time.Duration(c.opts.Int(OptMoveOverheadMS)) * time.Millisecond
		if budget > overhead {
			budget -= overhead
		}
	}

	pondering := st.req.Ponder
	stopped := false
	var nodes int64

	for depth := 1; depth <= maxDepth && !stopped; depth++ {
		nodes += int64(depth*depth) * 128
		elapsed := time.Since(start)
		c.publishProgress(depth, elapsed, nodes, best, len(moves))

		if st.req.Nodes != nil && nodes >= int64(*st.req.Nodes) {
			break
		}
		if budget > 0 && elapsed >= budget {
			break
		}

		select {
		case <-st.stop:
			stopped = true
		case <-st.ponderhit:
			pondering = false
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Infinite and ponder searches must not volunteer a best move.
	if !stopped && (st.req.Infinite || pondering) {
		select {
		case <-st.stop:
		case <-st.ponderhit:
			if st.req.Infinite {
				<-st.stop
			}
		}
	}

	// The search slot must be free before the best move goes out, so a
	// driver that reacts to bestmove with another go never races us.
	c.mu.Lock()
	c.search = nil
	c.mu.Unlock()

	bm := uci.NewBestMove(best)
	bm.Ponder = ponder
	c.publisher.OutputBestMove(bm)

	if c.store != nil && gameID != "" {
		c.store.RecordBestMove(storage.BestMoveRecord{
			GameID:         gameID,
			PositionFEN:    fen,
			BestMove:       best,
			Ponder:         ponder,
			Depth:          maxDepth,
			Nodes:          nodes,
			ElapsedMS:      time.Since(start).Milliseconds(),
			CreatedTimeUTC: time.Now().UTC(),
		})
	}
	close(st.done)
}

func (c *Controller) publishProgress(depth int, elapsed time.Duration, nodes int64, best string, ply int) {
	info := uci.NewThinkingInfo()
	info.Depth = depth
	info.SelDepth = depth
	info.Time = elapsed.Milliseconds()
	info.Nodes = nodes
	score := scoreEstimate(depth)
	info.Score = &score
	info.WDL = wdlEstimate(score)
	movesLeft := movesLeftEstimate(ply)
	info.MovesLeft = &movesLeft
	if ms := elapsed.Milliseconds(); ms > 0 {
		info.NPS = nodes * 1000 / ms
	}
	info.PV = []string{best}
	c.publisher.OutputThinkingInfo([]uci.ThinkingInfo{info})
}
