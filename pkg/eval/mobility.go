package eval

import "github.com/corvidchess/corvid/pkg/board"

// mobilityBonus tables index the number of attacked squares inside the mobility area, bounded
// by the piece's maximum possible attack count on an empty board (knight 8, bishop 13,
// rook 14, queen 27).
var (
	knightMobility = [9]Score{
		S(-62, -81), S(-53, -56), S(-12, -30), S(-4, -14), S(3, 8),
		S(13, 15), S(22, 23), S(28, 27), S(33, 33),
	}
	bishopMobility = [14]Score{
		S(-48, -59), S(-20, -23), S(16, -3), S(26, 13), S(38, 24),
		S(51, 42), S(55, 54), S(63, 57), S(63, 65), S(68, 73),
		S(81, 78), S(81, 86), S(91, 88), S(98, 97),
	}
	rookMobility = [15]Score{
		S(-60, -78), S(-20, -17), S(2, 23), S(3, 39), S(3, 70),
		S(11, 99), S(22, 103), S(31, 121), S(40, 134), S(40, 139),
		S(41, 158), S(48, 164), S(57, 168), S(57, 169), S(62, 172),
	}
	queenMobility = [28]Score{
		S(-30, -48), S(-12, -30), S(-8, -7), S(-9, 19), S(20, 40),
		S(23, 55), S(23, 59), S(35, 75), S(38, 78), S(53, 96),
		S(64, 96), S(65, 100), S(65, 121), S(66, 127), S(67, 131),
		S(67, 133), S(72, 136), S(72, 141), S(77, 147), S(79, 150),
		S(93, 151), S(108, 168), S(108, 168), S(108, 171), S(110, 182),
		S(114, 182), S(114, 192), S(116, 219),
	}
)

// mobilityArea is the complement of: own blocked/low-rank pawns, own king and queen, and
// squares attacked by enemy pawns (§4.2.9).
func mobilityArea(pos *board.Position, us board.Color) board.Bitboard {
	them := us.Opponent()
	occ := pos.Occupied()

	lowRank := board.BitRank(board.Rank2)
	ahead := occ >> 8 // square in front of each White pawn
	if us == board.Black {
		lowRank = board.BitRank(board.Rank7)
		ahead = occ << 8
	}
	blockedOrLow := pos.Pieces(us, board.Pawn) & (lowRank | ahead)

	excluded := blockedOrLow | pos.Pieces(us, board.King) | pos.Pieces(us, board.Queen)
	excluded |= board.PawnCaptureboard(them, pos.Pieces(them, board.Pawn))

	return ^excluded
}

// mobility returns the packed mobility balance (White − Black).
func mobility(pos *board.Position) Score {
	var total Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		total = total.Add(sideMobility(pos, c).Scale(sign))
	}
	return total
}

func sideMobility(pos *board.Position, us board.Color) Score {
	area := mobilityArea(pos, us)
	own := pos.Pieces(us, board.NoPiece)

	var total Score

	total = total.Add(countMobility(pos, us, board.Knight, area, own, knightMobility[:]))
	total = total.Add(countMobility(pos, us, board.Bishop, area, own, bishopMobility[:]))
	total = total.Add(countMobility(pos, us, board.Rook, area, own, rookMobility[:]))
	total = total.Add(countMobility(pos, us, board.Queen, area, own, queenMobility[:]))

	return total
}

func countMobility(pos *board.Position, us board.Color, piece board.Piece, area, own board.Bitboard, table []Score) Score {
	var total Score

	bb := pos.Pieces(us, piece)
	for bb != 0 {
		sq := bb.LastPopSquare()
		bb &^= board.BitMask(sq)

		attacks := board.AttacksFrom(pos.Occupied(), sq, piece) &^ own
		n := (attacks & area).PopCount()
		if n >= len(table) {
			n = len(table) - 1
		}
		total = total.Add(table[n])
	}
	return total
}
