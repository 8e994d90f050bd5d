package eval

import "github.com/corvidchess/corvid/pkg/board"

var (
	shieldFirstBonus  = S(20, 10)
	shieldSecondBonus = S(10, 5)

	halfOpenPenalty = S(-20, -30)
	openPenalty     = S(-40, -50)
)

// castledKingSquares returns the king's file and true if the king sits on a castled square
// (g- or c-file, back rank); the pawn shield covers that file and its two neighbours.
func castledKingSquares(c board.Color, sq board.Square) (board.File, bool) {
	back := board.Rank1
	if c == board.Black {
		back = board.Rank8
	}
	if sq.Rank() != back {
		return 0, false
	}

	// Kingside castled square = g-file, queenside = c-file.
	gFile, _ := board.ParseFile('g')
	cFile, _ := board.ParseFile('c')
	switch sq.File() {
	case gFile, cFile:
		return sq.File(), true
	default:
		return 0, false
	}
}

func kingShield(pos *board.Position, us board.Color) Score {
	sq := pos.KingSquare(us)
	file, ok := castledKingSquares(us, sq)
	if !ok {
		return ZeroScore
	}

	own := pos.Pieces(us, board.Pawn)
	firstRank, secondRank := us.Sign(), 2*us.Sign()
	baseRank := int(sq.Rank())

	var total Score
	for df := -1; df <= 1; df++ {
		f := int(file) + df
		if f < 0 || f > 7 {
			continue
		}
		first := baseRank + firstRank
		second := baseRank + secondRank
		if first >= 0 && first <= 7 && own.IsSet(board.NewSquare(board.File(f), board.Rank(first))) {
			total = total.Add(shieldFirstBonus)
		} else if second >= 0 && second <= 7 && own.IsSet(board.NewSquare(board.File(f), board.Rank(second))) {
			total = total.Add(shieldSecondBonus)
		}
	}
	return total
}

func kingFileSafety(pos *board.Position, us board.Color) Score {
	sq := pos.KingSquare(us)

	own := pos.Pieces(us, board.Pawn)
	enemy := pos.Pieces(us.Opponent(), board.Pawn)

	var total Score
	for df := -1; df <= 1; df++ {
		f := int(sq.File()) + df
		if f < 0 || f > 7 {
			continue
		}
		file := board.BitFile(board.File(f))

		hasOwn := own&file != 0
		hasEnemy := enemy&file != 0

		switch {
		case !hasOwn && !hasEnemy:
			total = total.Add(openPenalty)
		case !hasOwn && hasEnemy:
			total = total.Add(halfOpenPenalty)
		}
	}
	return total
}

// kingSafety returns the packed king-safety balance (White − Black): shielding pawns and
// open/half-open king files (§4.2.10).
func kingSafety(pos *board.Position) Score {
	var total Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		s := kingShield(pos, c).Add(kingFileSafety(pos, c))
		total = total.Add(s.Scale(sign))
	}
	return total
}
