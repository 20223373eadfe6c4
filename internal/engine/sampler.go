package engine

import (
	"github.com/AlexisOlson/lc0/internal/fastmath"
	"github.com/AlexisOlson/lc0/internal/uci"
)

// startposBook is the candidate set used when a search is started from
// the standard initial position with no searchmoves restriction. Real
// move generation is out of scope; anywhere else the controller falls
// back to the null move.
var startposBook = []string{"e2e4", "d2d4", "g1f3", "c2c4"}

const nullMove = "0000"

// pickMove selects the move to report for this search, sampling among
// the candidates with the temperature in effect at the given ply.
// Candidate order encodes preference: earlier candidates carry higher
// prior weight.
func (c *Controller) pickMove(searchMoves []string, fen string, ply int) (best, ponder string) {
	candidates := searchMoves
	if len(candidates) == 0 {
		if fen == uci.StartposFen && ply == 0 {
			candidates = startposBook
		} else {
			return nullMove, ""
		}
	}
	if len(candidates) == 1 {
		return candidates[0], ""
	}

	tau := EffectiveTau(ply,
		float32(c.opts.Float(OptTemperature)),
		c.opts.Int(OptTempCutoffMove),
		c.opts.Int(OptTempDecayDelay),
		c.opts.Int(OptTempDecayMoves),
		float32(c.opts.Float(OptTempEndgame)))

	idx := 0
	if tau > 0 {
		idx = c.sample(len(candidates), tau)
	}
	if idx+1 < len(candidates) {
		ponder = candidates[idx+1]
	}
	return candidates[idx], ponder
}

// sample draws an index in [0, n) with prior weight exp(-i) sharpened
// by 1/tau, so tau near zero approaches argmax and large tau
// approaches uniform.
func (c *Controller) sample(n int, tau float32) int {
	weights := make([]float32, n)
	var total float32
	for i := range weights {
		prior := fastmath.Exp(-float32(i))
		weights[i] = fastmath.PrecisePow(prior, 1/tau)
		total += weights[i]
	}
	target := c.rng.Float32() * total
	for i, w := range weights {
		target -= w
		if target <= 0 {
			return i
		}
	}
	return n - 1
}

// scoreEstimate produces a placeholder centipawn score that grows
// slowly with depth, staying in a plausible range.
func scoreEstimate(depth int) int {
	return int(25 * fastmath.Log(float32(depth)+1))
}

// wdlEstimate converts a centipawn score into a permille win/draw/loss
// triple through the logistic curve.
func wdlEstimate(scoreCP int) *uci.WDL {
	win := fastmath.Logistic(float32(scoreCP) / 90)
	loss := fastmath.Logistic(-float32(scoreCP) / 90)
	w := int(win * 500)
	l := int(loss * 500)
	return &uci.WDL{Win: w, Draw: 1000 - w - l, Loss: l}
}

// movesLeftEstimate guesses how many full moves remain from the ply
// count alone.
func movesLeftEstimate(ply int) int {
	remaining := 40 - ply/2
	if remaining < 10 {
		remaining = 10
	}
	return remaining
}
