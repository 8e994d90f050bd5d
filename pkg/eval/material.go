package eval

import "github.com/corvidchess/corvid/pkg/board"

// pieceValue holds the opening/endgame value of each piece type, in centipawns.
var pieceValue = [board.NumPieces]Score{
	board.Pawn:   S(126, 208),
	board.Bishop: S(825, 915),
	board.Knight: S(781, 854),
	board.Rook:   S(1276, 1380),
	board.Queen:  S(2538, 2682),
}

// material returns the packed material balance (White − Black) for the position.
func material(pos *board.Position) Score {
	var total Score
	for piece := board.ZeroPiece; piece < board.King; piece++ {
		n := pos.Pieces(board.White, piece).PopCount() - pos.Pieces(board.Black, piece).PopCount()
		total = total.Add(pieceValue[piece].Scale(n))
	}
	return total
}

// phase returns the game-phase indicator: total non-pawn material of both sides, valued at
// opening piece values. High near the start of the game, low in the endgame.
func phase(pos *board.Position) int {
	total := 0
	for piece := board.Bishop; piece < board.King; piece++ {
		n := pos.Pieces(board.White, piece).PopCount() + pos.Pieces(board.Black, piece).PopCount()
		total += int(pieceValue[piece].MG()) * n
	}
	return total
}

// imbalance implements the per-side material-imbalance penalty (§4.2.7): a small per-pawn
// penalty proportional to the side's own pawn count and its material lead over the opponent,
// returned as a negative score from that side's point of view.
func imbalance(pos *board.Position, us board.Color) Score {
	delta := int(material(pos).MG())
	if us == board.Black {
		delta = -delta
	}
	if delta < 0 {
		delta = -delta
	}

	pawns := pos.Pieces(us, board.Pawn).PopCount()
	penalty := (delta / 100) * pawns
	return S(int16(-5*penalty), int16(-3*penalty))
}
