package uci

// castling960 maps the classical encodings of the four castling moves
// to their king-takes-rook form. Moves are carried as plain text with
// no board context, so only the standard-start rook squares can be
// derived here.
var castling960 = map[string]string{
	"e1g1": "e1h1",
	"e1c1": "e1a1",
	"e8g8": "e8h8",
	"e8c8": "e8a8",
}

// formatMove renders a move token under the active castling notation
// convention. The same convention must be applied to every move in a
// rendered line.
func formatMove(move string, chess960 bool) string {
	if chess960 {
		if m, ok := castling960[move]; ok {
			return m
		}
	}
	return move
}
