package eval

import "github.com/corvidchess/corvid/pkg/board"

// passedBonus is indexed by rank from the pawn's own side (rank 1 .. rank 6; the pawn can
// never be on rank 0 or 7 of its own perspective).
var passedBonus = [8]Score{
	0: ZeroScore,
	1: S(2, 38),
	2: S(15, 36),
	3: S(22, 50),
	4: S(64, 81),
	5: S(166, 184),
	6: S(284, 269),
	7: ZeroScore,
}

var (
	doubledPenalty  = S(-11, -51)
	isolatedPenalty = S(-1, -20)
	backwardPenalty = S(-6, -10)
)

func adjacentFiles(f board.File) board.Bitboard {
	var m board.Bitboard
	if f > 0 {
		m |= board.BitFile(f - 1)
	}
	if f < board.NumFiles-1 {
		m |= board.BitFile(f + 1)
	}
	return m
}

func inFrontMask(c board.Color, r board.Rank) board.Bitboard {
	var m board.Bitboard
	if c == board.White {
		for rr := r + 1; rr < board.NumRanks; rr++ {
			m |= board.BitRank(rr)
		}
	} else {
		for rr := board.ZeroRank; rr < r; rr++ {
			m |= board.BitRank(rr)
		}
	}
	return m
}

// pawnStructure returns the packed pawn-structure balance (White − Black): passed, doubled,
// isolated and backward pawns (§4.2.3-6).
func pawnStructure(pos *board.Position) Score {
	var total Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		total = total.Add(sidePawnScoreGuard(pos, c).Scale(sign))
	}
	return total
}

func sidePawnScoreGuard(pos *board.Position, c board.Color) Score {
	own, enemy := pos.Pieces(c, board.Pawn), pos.Pieces(c.Opponent(), board.Pawn)

	var total Score

	for f := board.ZeroFile; f < board.NumFiles; f++ {
		count := (own & board.BitFile(f)).PopCount()
		if count > 1 {
			total = total.Add(doubledPenalty.Scale(count - 1))
		}
	}

	bb := own
	for bb != 0 {
		sq := bb.LastPopSquare()
		bb &^= board.BitMask(sq)

		f, r := sq.File(), sq.Rank()
		adj := adjacentFiles(f)
		front := inFrontMask(c, r)

		if (enemy&(board.BitFile(f)|adj))&front == 0 && own&board.BitFile(f)&front == 0 {
			rank := int(r)
			if c == board.Black {
				rank = 7 - rank
			}
			total = total.Add(passedBonus[rank])
		}

		if own&adj == 0 {
			total = total.Add(isolatedPenalty)
		}

		if isBackward(pos, c, sq) {
			total = total.Add(backwardPenalty)
		}
	}
	return total
}

func isBackward(pos *board.Position, c board.Color, sq board.Square) bool {
	own, enemy := pos.Pieces(c, board.Pawn), pos.Pieces(c.Opponent(), board.Pawn)

	var stop board.Square
	var guardRank board.Rank
	if c == board.White {
		if sq.Rank() == board.Rank8 {
			return false
		}
		stop = board.NewSquare(sq.File(), sq.Rank()+1)
		if sq.Rank() == board.Rank1 {
			return false
		}
		guardRank = sq.Rank() - 1
	} else {
		if sq.Rank() == board.Rank1 {
			return false
		}
		stop = board.NewSquare(sq.File(), sq.Rank()-1)
		if sq.Rank() == board.Rank8 {
			return false
		}
		guardRank = sq.Rank() + 1
	}

	guard := adjacentFiles(sq.File()) & board.BitRank(guardRank)
	if own&guard != 0 {
		return false
	}

	return board.PawnCaptureboard(c.Opponent(), enemy)&board.BitMask(stop) != 0
}
