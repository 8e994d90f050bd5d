package eval

import "github.com/corvidchess/corvid/pkg/board"

const openPositionSquares = 24 // fewer occupied squares than this counts as "open" (§4.2.8)

var (
	knightPairOpen, knightPairClosed = S(20, 10), S(50, 30)
	bishopPairOpen, bishopPairClosed = S(60, 40), S(30, 10)
)

// minorPairs returns the packed bishop/knight-pair bonus (White − Black). Open positions
// favour the bishop pair more; closed positions favour keeping a knight pair.
func minorPairs(pos *board.Position) Score {
	open := pos.Occupied().PopCount() < openPositionSquares

	var total Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		var s Score
		if pos.Pieces(c, board.Knight).PopCount() >= 2 {
			if open {
				s = s.Add(knightPairOpen)
			} else {
				s = s.Add(knightPairClosed)
			}
		}
		if pos.Pieces(c, board.Bishop).PopCount() >= 2 {
			if open {
				s = s.Add(bishopPairOpen)
			} else {
				s = s.Add(bishopPairClosed)
			}
		}
		total = total.Add(s.Scale(sign))
	}
	return total
}

var colorWeaknessPenalty = S(-3, -8)

func isLightSquare(sq board.Square) bool {
	return (int(sq.Rank())+int(sq.File()))%2 == 0
}

func lightDarkPawnCounts(pawns board.Bitboard) (light, dark int) {
	for pawns != 0 {
		sq := pawns.LastPopSquare()
		pawns &^= board.BitMask(sq)
		if isLightSquare(sq) {
			light++
		} else {
			dark++
		}
	}
	return
}

func hasBishopOnColor(bishops board.Bitboard, light bool) bool {
	for bishops != 0 {
		sq := bishops.LastPopSquare()
		bishops &^= board.BitMask(sq)
		if isLightSquare(sq) == light {
			return true
		}
	}
	return false
}

// colorWeakness penalizes a side that lacks a bishop of one square color for having an
// excess of pawns fixed on squares of the complementary color (§4.2.11).
func colorWeakness(pos *board.Position) Score {
	var total Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		bishops := pos.Pieces(c, board.Bishop)
		light, dark := lightDarkPawnCounts(pos.Pieces(c, board.Pawn))

		var s Score
		if !hasBishopOnColor(bishops, true) && dark > light {
			s = s.Add(colorWeaknessPenalty.Scale(dark - light))
		}
		if !hasBishopOnColor(bishops, false) && light > dark {
			s = s.Add(colorWeaknessPenalty.Scale(light - dark))
		}
		total = total.Add(s.Scale(sign))
	}
	return total
}

// mopUp rewards driving the losing king to the edge and keeping the two kings close, only
// applied when one side leads by more than 200 material and the game has entered the
// endgame phase (§4.2, "Endgame mop-up").
func mopUp(pos *board.Position, g int) Score {
	lead := int(material(pos).MG())
	if lead < 0 {
		lead = -lead
	}
	if lead <= 200 || g >= EndgamePhase {
		return ZeroScore
	}

	winner := board.White
	if int(material(pos).MG()) < 0 {
		winner = board.Black
	}
	loser := winner.Opponent()

	winnerKing, loserKing := pos.KingSquare(winner), pos.KingSquare(loser)

	cmd := centerDistance(loserKing)
	kd := kingDistance(winnerKing, loserKing)

	raw := 10*cmd + 4*(14-kd)
	scaled := raw * (OpeningPhase - g) / OpeningPhase

	bonus := S(0, int16(scaled))
	if winner == board.White {
		return bonus
	}
	return bonus.Negate()
}

func centerDistance(sq board.Square) int {
	r, f := int(sq.Rank()), int(sq.File())
	rd, fd := r-3, f-3
	if rd < 0 {
		rd = -rd - 1
	}
	if fd < 0 {
		fd = -fd - 1
	}
	d := rd
	if fd > d {
		d = fd
	}
	return d
}

func kingDistance(a, b board.Square) int {
	rd := int(a.Rank()) - int(b.Rank())
	if rd < 0 {
		rd = -rd
	}
	fd := int(a.File()) - int(b.File())
	if fd < 0 {
		fd = -fd
	}
	if rd > fd {
		return rd
	}
	return fd
}
