package eval

import "github.com/corvidchess/corvid/pkg/board"

// NominalValue is the coarse per-piece rank used by move ordering (MVV-LVA), not by the
// static evaluator. The king is given an arbitrary high rank so it never sorts as the
// least valuable attacker.
func NominalValue(p board.Piece) int {
	switch p {
	case board.Pawn:
		return 1
	case board.Knight, board.Bishop:
		return 3
	case board.Rook:
		return 5
	case board.Queen:
		return 9
	case board.King:
		return 100
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of a move, used to seed capture ordering
// before a full MVV-LVA rank is computed.
func NominalValueGain(m board.Move) int {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}
