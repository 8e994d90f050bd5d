package eval

import "github.com/corvidchess/corvid/pkg/board"

// Piece-square tables, one packed score per square, from White's point of view (rank index 0
// is White's back rank). Non-pawn tables are file-mirrored: only columns for files a-d are
// given, column index = file >= 4 ? 7-file : file. The pawn table is asymmetric in file and
// stores all 8 columns. Black's value for a square is looked up after flipping the rank.
var (
	pawnPST = [8][8]Score{
		{},
		{S(-6, 4), S(4, 2), S(-2, 4), S(-8, 6), S(-8, 6), S(6, 2), S(10, 2), S(-4, 2)},
		{S(-8, 2), S(-2, 2), S(4, -2), S(10, -6), S(14, -6), S(2, -2), S(-4, 2), S(-12, 2)},
		{S(-4, 10), S(-2, 8), S(8, -2), S(18, -12), S(18, -12), S(4, -2), S(-4, 8), S(-10, 10)},
		{S(6, 24), S(8, 18), S(18, 6), S(28, -2), S(28, -2), S(18, 6), S(8, 18), S(6, 24)},
		{S(16, 58), S(22, 52), S(36, 38), S(44, 28), S(44, 28), S(36, 38), S(22, 52), S(16, 58)},
		{S(78, 112), S(88, 106), S(70, 96), S(62, 86), S(62, 86), S(70, 96), S(88, 106), S(78, 112)},
		{},
	}

	knightPST = [8][4]Score{
		{S(-84, -70), S(-38, -50), S(-24, -30), S(-16, -22)},
		{S(-38, -48), S(-18, -22), S(-2, -12), S(4, -4)},
		{S(-22, -30), S(0, -10), S(14, 8), S(20, 16)},
		{S(-14, -24), S(8, -2), S(22, 16), S(28, 24)},
		{S(-10, -22), S(10, -4), S(26, 14), S(34, 26)},
		{S(-16, -28), S(12, -10), S(28, 8), S(36, 18)},
		{S(-38, -46), S(-8, -22), S(6, -8), S(14, 2)},
		{S(-98, -72), S(-34, -46), S(-22, -28), S(-12, -18)},
	}

	bishopPST = [8][4]Score{
		{S(-28, -22), S(-8, -14), S(-14, -10), S(-18, -6)},
		{S(-6, -14), S(8, -4), S(4, -2), S(0, 2)},
		{S(-6, -10), S(8, -2), S(10, 4), S(8, 8)},
		{S(-8, -8), S(4, 0), S(10, 8), S(18, 12)},
		{S(-8, -8), S(4, 0), S(10, 8), S(18, 12)},
		{S(-8, -10), S(6, -2), S(6, 4), S(10, 8)},
		{S(-10, -12), S(4, -4), S(2, -2), S(0, 4)},
		{S(-26, -20), S(-10, -14), S(-16, -10), S(-20, -6)},
	}

	rookPST = [8][4]Score{
		{S(-6, 0), S(-2, 2), S(2, 2), S(6, 0)},
		{S(-14, -4), S(-2, 0), S(0, 0), S(2, -2)},
		{S(-12, -4), S(-4, 0), S(0, 0), S(0, 0)},
		{S(-12, -2), S(-4, 2), S(0, 2), S(2, 0)},
		{S(-10, -2), S(-2, 2), S(2, 2), S(4, 0)},
		{S(-10, -4), S(0, 0), S(4, 0), S(6, -2)},
		{S(0, -2), S(8, 0), S(10, 0), S(14, -2)},
		{S(-6, 2), S(-2, 4), S(2, 4), S(6, 2)},
	}

	queenPST = [8][4]Score{
		{S(-6, -18), S(-2, -10), S(-2, -10), S(0, -4)},
		{S(-4, -12), S(4, -4), S(6, 0), S(6, 4)},
		{S(-2, -6), S(4, 0), S(6, 8), S(6, 10)},
		{S(0, -2), S(6, 4), S(8, 12), S(8, 16)},
		{S(0, -2), S(6, 4), S(8, 12), S(8, 16)},
		{S(-2, -8), S(6, -2), S(8, 6), S(8, 10)},
		{S(-6, -14), S(0, -4), S(2, 2), S(2, 4)},
		{S(-10, -20), S(-4, -10), S(-2, -8), S(0, -4)},
	}

	kingPST = [8][4]Score{
		{S(-8, -52), S(28, -22), S(14, -14), S(-18, -10)},
		{S(-12, -32), S(6, -8), S(-6, 6), S(-22, 10)},
		{S(-18, -22), S(-10, 4), S(-24, 14), S(-30, 18)},
		{S(-24, -18), S(-20, 8), S(-32, 18), S(-38, 22)},
		{S(-30, -18), S(-26, 8), S(-38, 18), S(-44, 22)},
		{S(-22, -22), S(-18, 4), S(-30, 14), S(-36, 18)},
		{S(-10, -32), S(-2, -8), S(-14, 6), S(-20, 10)},
		{S(4, -52), S(40, -22), S(22, -14), S(-4, -10)},
	}
)

func mirrorFile(f board.File) int {
	if f >= 4 {
		return int(7 - f)
	}
	return int(f)
}

func relRank(c board.Color, sq board.Square) int {
	if c == board.White {
		return int(sq.Rank())
	}
	return 7 - int(sq.Rank())
}

func pst(c board.Color, piece board.Piece, sq board.Square) Score {
	r := relRank(c, sq)

	switch piece {
	case board.Pawn:
		return pawnPST[r][int(sq.File())]
	case board.Knight:
		return knightPST[r][mirrorFile(sq.File())]
	case board.Bishop:
		return bishopPST[r][mirrorFile(sq.File())]
	case board.Rook:
		return rookPST[r][mirrorFile(sq.File())]
	case board.Queen:
		return queenPST[r][mirrorFile(sq.File())]
	case board.King:
		return kingPST[r][mirrorFile(sq.File())]
	default:
		return ZeroScore
	}
}

// pieceSquareTables returns the packed piece-square-table balance (White − Black).
func pieceSquareTables(pos *board.Position) Score {
	var total Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		for piece := board.ZeroPiece; piece < board.NumPieces; piece++ {
			bb := pos.Pieces(c, piece)
			for bb != 0 {
				sq := bb.LastPopSquare()
				bb &^= board.BitMask(sq)
				total = total.Add(pst(c, piece, sq).Scale(sign))
			}
		}
	}
	return total
}
