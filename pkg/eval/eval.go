package eval

import "github.com/corvidchess/corvid/pkg/board"

// Evaluator computes a side-to-move-relative static evaluation of a position, in centipawns.
// Positive values favour the side to move.
type Evaluator interface {
	Evaluate(pos *board.Position, turn board.Color) int
}

// Static is the engine's static evaluator (C2): material, piece-square tables, pawn
// structure, mobility, king safety, minor-piece pairs, color weakness and outposts, blended
// by game phase (C1) and negated for Black to move.
type Static struct{}

func (Static) Evaluate(pos *board.Position, turn board.Color) int {
	var total Score
	total = total.Add(material(pos))
	total = total.Add(pieceSquareTables(pos))
	total = total.Add(pawnStructure(pos))
	total = total.Add(mobility(pos))
	total = total.Add(kingSafety(pos))
	total = total.Add(minorPairs(pos))
	total = total.Add(colorWeakness(pos))
	total = total.Add(outposts(pos))
	total = total.Add(imbalance(pos, board.White)).Sub(imbalance(pos, board.Black))

	g := phase(pos)
	total = total.Add(mopUp(pos, g))

	score := Blend(total, g)
	return turn.Sign() * score
}
