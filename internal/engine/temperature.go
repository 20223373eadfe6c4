package engine

// EffectiveTau computes the sampling temperature in effect at the given
// ply. The ply is converted to a move number as move = ply/2 + 1. Past
// the cutoff move the endgame temperature applies unconditionally;
// otherwise the temperature decays linearly to zero across decayMoves
// moves after decayDelayMoves, never dropping below the endgame
// temperature.
func EffectiveTau(ply int, initialTemperature float32, cutoffMove, decayDelayMoves, decayMoves int, endgameTemperature float32) float32 {
	temperature := initialTemperature
	moves := ply/2 + 1

	if cutoffMove != 0 && moves >= cutoffMove {
		return endgameTemperature
	}
	if temperature != 0 && decayMoves != 0 {
		if moves >= decayDelayMoves+decayMoves {
			temperature = 0
		} else if moves >= decayDelayMoves {
			temperature *= float32(decayDelayMoves+decayMoves-moves) / float32(decayMoves)
		}
		if temperature < endgameTemperature {
			temperature = endgameTemperature
		}
	}
	return temperature
}
