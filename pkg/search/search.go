package search

import (
	"math"

	"github.com/corvidchess/corvid/pkg/board"
)

// Late-move reduction/pruning tables (spec.md §3). R is precomputed once; lmrTable[depth]
// and lmrTable index are clamped to 63 so a runaway depth/move-index never indexes out of
// bounds.
var lmrTable [64][64]int

func init() {
	for depth := 1; depth < 64; depth++ {
		for idx := 1; idx < 64; idx++ {
			r := int(math.Round(math.Log(float64(depth))*math.Log(float64(idx))/2)) - 1
			if r < 0 {
				r = 0
			}
			lmrTable[depth][idx] = r
		}
	}
}

func lmp(depth int) int {
	return (3 + depth*depth) / 2
}

// futilityMargin is FM[improving][depth] = 165*(depth-(improving?0:1)) (spec.md §3).
func futilityMargin(improving bool, depth int) int {
	if improving {
		return 165 * depth
	}
	return 165 * (depth - 1)
}

const razorPawnValue = 100

// search implements the main alpha-beta contract of spec.md §4.6: iterative deepening
// drives repeated calls at increasing depth; quiescence search is entered at the horizon.
func (w *Worker) search(ply, depth, alpha, beta int, nullOK bool) (int, Line) {
	if w.aborted() {
		return NullScore, nil
	}
	if ply > 0 {
		if w.b.Result().Outcome == board.Draw {
			return 0, nil
		}
		if w.b.Position().HasInsufficientMaterial() {
			return 0, nil
		}
	}
	if ply >= MaxPly {
		return w.evaluate(), nil
	}
	if depth <= 0 {
		return w.qsearch(ply, alpha, beta)
	}

	if ply > w.selDepth {
		w.selDepth = ply
	}

	if ply > 0 {
		if a := -Checkmate + ply; alpha < a {
			alpha = a
		}
		if b := Checkmate - ply - 1; beta > b {
			beta = b
		}
		if alpha >= beta {
			return alpha, nil
		}
	}

	w.stack[ply].kind = NormalNode
	w.stack[ply].nullOK = nullOK

	key := w.b.Hash()
	var ttMove board.Move
	if e, ok := w.tt.Probe(key); ok {
		ttMove = e.line.Head()
		if ply > 0 && int(e.depth) >= depth {
			if score := w.tt.LookupEval(key, depth, ply, alpha, beta); score != LookupFailed {
				if ttMove != (board.Move{}) && isQuietMove(ttMove) && predictsCutoff(e.bound, score, beta) {
					w.killers.Add(ply, ttMove)
					w.hist.Add(w.b.Turn(), ttMove, depth)
				}
				w.stack[ply].class = TTCutNode
				return score, e.line
			}
		}
	}

	turn := w.b.Turn()
	inCheck := w.b.Position().IsChecked(turn)

	var static int
	if !inCheck {
		static = w.staticEvalAt(ply)
		w.stack[ply].static, w.stack[ply].hasStatic = static, true
	} else {
		w.stack[ply].hasStatic = false
	}
	improving := w.improvingAt(ply, inCheck)

	futility := false

	if ply > 0 && !inCheck {
		// Razoring: a hopeless-looking shallow node falls back to quiescence.
		if depth <= 3 && static+razorPawnValue < beta {
			qscore, _ := w.qsearch(ply, alpha, beta)
			if w.aborted() {
				return NullScore, nil
			}
			if depth == 1 || qscore < beta {
				margin := static + razorPawnValue*depth
				return max(qscore, margin), nil
			}
		}

		if depth <= 3 && static+futilityMargin(improving, depth) <= alpha {
			futility = true
		}

		// Null-move pruning.
		if depth > 2 && static >= beta && nullOK && !inCheck {
			w.b.PushNull()
			score, _ := w.search(ply+1, depth-3, -beta, -beta+1, false)
			score = negateMate(score)
			w.b.PopNull()

			if w.aborted() {
				return NullScore, nil
			}
			if score >= beta {
				if IsMateScore(score) {
					score = beta
				}
				return score, nil
			}
		}

		// ProbCut: a speculative reduced-depth capture search used to prove a cutoff.
		if depth > w.cfg.ProbCutDepthReduction && !IsMateScore(beta) {
			if score, line, ok := w.probCut(ply, depth, beta, improving); ok {
				return score, line
			}
			if w.aborted() {
				return NullScore, nil
			}
		}
	}

	// Internal iterative deepening: populate the TT move when none is known yet.
	if ply > 0 && depth > w.cfg.IIDDepthReduction+1 && ttMove == (board.Move{}) {
		w.search(ply, depth-w.cfg.IIDDepthReduction, alpha, beta, nullOK)
		if w.aborted() {
			return NullScore, nil
		}
		if e, ok := w.tt.Probe(key); ok {
			ttMove = e.line.Head()
		}
	}

	extensions := w.stack[ply].extensions
	if inCheck && extensions < w.maxExtensions() {
		depth++
		extensions++
		w.stack[ply].extensions = extensions
	}

	k0, k1 := w.killers.Get(ply)
	moves := w.b.Position().PseudoLegalMoves(turn, false, board.QueenPromotion)
	moves = orderMoves(moves, turn, ttMove, k0, k1, w.hist)

	hasLegalMove := false
	raised := false
	bound := UpperBound
	var pv Line

	lateMoveThreshold := w.cfg.LMRMinThreshold + len(moves)/8

	i := -1
	for _, m := range moves {
		if containsMove(w.rootExclude, m) && ply == 0 {
			continue
		}
		if !w.b.PushMove(m) {
			continue
		}
		i++
		hasLegalMove = true

		givesCheck := w.b.Position().IsChecked(w.b.Turn())
		quiet := m.IsQuiet()

		if futility && i > 0 && quiet && !givesCheck {
			w.b.PopMove()
			continue
		}
		if ply > 0 && depth < w.cfg.ShallowDepthThreshold && i > lmp(depth) && quiet && !givesCheck {
			w.b.PopMove()
			continue
		}

		w.nodes++

		r := 1
		reduced := false
		if ply > 0 && i > lateMoveThreshold && !inCheck && !givesCheck {
			pastLMP := i > lmp(depth)
			notKiller := m != k0 && m != k1
			if pastLMP || (quiet && notKiller) {
				rr := lmrTable[clamp63(depth)][clamp63(i)] * w.cfg.LMRPercentage / 100
				r += rr
				reduced = true
			}
		}
		if extensions < w.maxExtensions() && isPassedPawnPenultimatePush(w.b.Position(), turn, m) {
			r--
			extensions++
			w.stack[ply].extensions = extensions
		}

		score, rest := w.search(ply+1, depth-r, -beta, -alpha, true)
		score = negateMate(score)
		if !w.aborted() && reduced && score > alpha {
			score, rest = w.search(ply+1, depth-1, -beta, -alpha, true)
			score = negateMate(score)
		}

		if !w.aborted() && m.IsPromotion() && score == 0 {
			for _, promo := range []board.Piece{board.Knight, board.Rook, board.Bishop} {
				alt := m
				alt.Promotion = promo
				w.b.PopMove()
				if !w.b.PushMove(alt) {
					w.b.PushMove(m) // restore the original move so the PopMove below stays balanced
					break
				}
				altScore, altRest := w.search(ply+1, depth-1, -beta, -alpha, true)
				altScore = negateMate(altScore)
				if altScore > 0 {
					score, rest, m = altScore, altRest, alt
					break
				}
				w.b.PopMove()
				w.b.PushMove(m)
			}
		}

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
			w.tt.Store(key, depth, ply, beta, LowerBound, pv, static)
			if quiet {
				w.hist.Add(turn, m, depth)
				w.killers.Add(ply, m)
			}
			return beta, pv
		}
	}

	if !hasLegalMove {
		if inCheck {
			return -(Checkmate - ply), nil
		}
		return 0, nil
	}

	if raised {
		bound = ExactBound
	}
	w.tt.Store(key, depth, ply, alpha, bound, pv, static)
	return alpha, pv
}

func clamp63(n int) int {
	if n < 0 {
		return 0
	}
	if n > 63 {
		return 63
	}
	return n
}

func containsMove(moves []board.Move, m board.Move) bool {
	for _, x := range moves {
		if x == m {
			return true
		}
	}
	return false
}

// isPassedPawnPenultimatePush reports whether m moves a pawn, by a push or a capture, to the
// rank just before promotion while no enemy pawn stands on its file or an adjacent file, on
// any rank. It is the sole check-free extension trigger named in spec.md §4.6.
func isPassedPawnPenultimatePush(pos *board.Position, mover board.Color, m board.Move) bool {
	if m.Piece != board.Pawn {
		return false
	}

	penultimate := board.Rank7
	if mover == board.Black {
		penultimate = board.Rank2
	}
	if m.To.Rank() != penultimate {
		return false
	}

	enemy := pos.Pieces(mover.Opponent(), board.Pawn)
	for df := -1; df <= 1; df++ {
		f := int(m.To.File()) + df
		if f < 0 || f > 7 {
			continue
		}
		if enemy&board.BitFile(board.File(f)) != 0 {
			return false
		}
	}
	return true
}

// probCut is a speculative reduced-depth capture search used to prove a beta cutoff
// cheaply (spec.md §4.6). It returns ok=true with a usable score/line only when the
// derived window is proven both in quiescence and in a reduced full search.
func (w *Worker) probCut(ply, depth, beta int, improving bool) (int, Line, bool) {
	derived := beta + 191
	if improving {
		derived -= 54
	}

	turn := w.b.Turn()
	moves := w.b.Position().PseudoLegalMoves(turn, true, board.QueenPromotion)
	moves = orderMoves(moves, turn, board.Move{}, board.Move{}, board.Move{}, w.hist)

	for _, m := range moves {
		if !w.b.PushMove(m) {
			continue
		}

		qscore, _ := w.qsearch(ply+1, -derived, -derived+1)
		qscore = negateMate(qscore)

		if w.aborted() {
			w.b.PopMove()
			return 0, nil, false
		}

		if qscore >= derived {
			fscore, fline := w.search(ply+1, depth-w.cfg.ProbCutDepthReduction, -derived, -derived+1, true)
			fscore = negateMate(fscore)

			if w.aborted() {
				w.b.PopMove()
				return 0, nil, false
			}

			if fscore >= derived {
				line := Prepend(m, fline)
				w.b.PopMove()
				w.tt.Store(w.b.Hash(), depth, ply, fscore, LowerBound, line, w.stack[ply].static)
				return fscore, line, true
			}
		}

		w.b.PopMove()
	}
	return 0, nil, false
}
