package eval

import "github.com/corvidchess/corvid/pkg/board"

var (
	knightOutpost = S(54, 34)
	bishopOutpost = S(31, 25)
)

// enemyHalfOrCenter returns the squares in the far half of the board relative to us (ranks
// 5-8 for White, ranks 1-4 for Black), where an outpost is meaningful. Central squares on
// our own half are not included.
func enemyHalfOrCenter(us board.Color) board.Bitboard {
	var m board.Bitboard
	if us == board.White {
		for r := board.Rank5; r < board.NumRanks; r++ {
			m |= board.BitRank(r)
		}
	} else {
		for r := board.ZeroRank; r <= board.Rank4; r++ {
			m |= board.BitRank(r)
		}
	}
	return m
}

// outposts returns the packed outpost balance (White − Black): own knights/bishops sitting
// deep in enemy territory, defended by a pawn and unattackable by an enemy pawn (§4.2.12).
func outposts(pos *board.Position) Score {
	var total Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		total = total.Add(sideOutposts(pos, c).Scale(sign))
	}
	return total
}

func sideOutposts(pos *board.Position, us board.Color) Score {
	them := us.Opponent()
	zone := enemyHalfOrCenter(us)
	ownPawns := pos.Pieces(us, board.Pawn)
	enemyPawns := pos.Pieces(them, board.Pawn)

	var total Score

	check := func(piece board.Piece, bonus Score) {
		bb := pos.Pieces(us, piece) & zone
		for bb != 0 {
			sq := bb.LastPopSquare()
			bb &^= board.BitMask(sq)

			defended := board.PawnCaptureboard(us, ownPawns)&board.BitMask(sq) != 0
			attacked := board.PawnCaptureboard(them, enemyPawns)&board.BitMask(sq) != 0
			if defended && !attacked {
				total = total.Add(bonus)
			}
		}
	}

	check(board.Knight, knightOutpost)
	check(board.Bishop, bishopOutpost)

	return total
}
