package search

import "github.com/corvidchess/corvid/pkg/board"

// qsearch implements the capture-only quiescence tail (spec.md §4.5), invoked at the
// horizon of the main search to stabilise leaf evaluations against the "horizon effect" of
// stopping mid-capture-sequence.
func (w *Worker) qsearch(ply int, alpha, beta int) (int, Line) {
	if w.aborted() {
		return NullScore, nil
	}
	if w.b.Position().HasInsufficientMaterial() {
		return 0, nil
	}
	if ply >= MaxPly {
		return w.evaluate(), nil
	}

	w.stack[ply].kind = QuiescenceNode

	key := w.b.Hash()
	if e, ok := w.tt.Probe(key); ok {
		if score := w.tt.LookupEval(key, 0, ply, alpha, beta); score != LookupFailed {
			return score, e.line
		}
	}

	turn := w.b.Turn()
	inCheck := w.b.Position().IsChecked(turn)

	static := w.staticEvalAt(ply)
	w.stack[ply].static, w.stack[ply].hasStatic = static, true

	if !inCheck {
		if static >= beta {
			return beta, nil
		}
		if static > alpha {
			alpha = static
		}
	}

	moves := w.b.Position().PseudoLegalMoves(turn, true, board.QueenPromotion)
	moves = orderMoves(moves, turn, board.Move{}, board.Move{}, board.Move{}, w.hist)

	raised := false
	var pv Line

	for _, m := range moves {
		if !w.b.PushMove(m) {
			continue
		}
		w.nodes++

		score, rest := w.qsearch(ply+1, -beta, -alpha)
		score = negateMate(score)

		w.b.PopMove()

		if w.aborted() {
			return NullScore, nil
		}
		if score > alpha {
			alpha = score
			raised = true
			pv = Prepend(m, rest)
		}
		if score >= beta {
			w.tt.Store(key, 0, ply, beta, LowerBound, Prepend(m, rest), static)
			return beta, Prepend(m, rest)
		}
	}

	bound := UpperBound
	if raised {
		bound = ExactBound
	}
	w.tt.Store(key, 0, ply, alpha, bound, pv, static)
	return alpha, pv
}

// negateMate negates a child score for the parent's perspective. Mate distance is already
// encoded via the absolute ply counter threaded through the recursion, so no extra
// adjustment is needed here; NullScore (an aborted result) is passed through unchanged.
func negateMate(score int) int {
	if score == NullScore {
		return NullScore
	}
	return -score
}
