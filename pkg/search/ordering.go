package search

import (
	"sort"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

const (
	ttMoveScore  = 30000
	captureBase  = 10000
	killerScore0 = 9000
	killerScore1 = 8000
)

// Killers holds, per ply, the up to two quiet moves that most recently caused a beta
// cutoff. A new killer is promoted to slot 0; the old slot 0 demotes to slot 1.
type Killers struct {
	moves [MaxPly][2]board.Move
}

// Add records m as the newest killer at ply, unless it is already the top killer.
func (k *Killers) Add(ply int, m board.Move) {
	if ply >= MaxPly {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

// Get returns the two killer moves at ply.
func (k *Killers) Get(ply int) (board.Move, board.Move) {
	if ply >= MaxPly {
		return board.Move{}, board.Move{}
	}
	return k.moves[ply][0], k.moves[ply][1]
}

// History is a [color][from][to] table of cutoff counts, incremented by depth^2 whenever a
// quiet move causes a beta cutoff. Used to rank quiet moves that are neither the TT move
// nor a killer.
type History struct {
	counts [board.NumColors][64][64]int
}

// Add bumps the history score for a quiet move that caused a cutoff at the given depth.
func (h *History) Add(turn board.Color, m board.Move, depth int) {
	h.counts[turn][m.From][m.To] += depth * depth
}

func (h *History) score(turn board.Color, m board.Move) int {
	return h.counts[turn][m.From][m.To]
}

// Clear zeros every history entry.
func (h *History) Clear() {
	*h = History{}
}

// orderMoves scores and stably sorts moves descending by priority (spec.md §4.4): the TT
// move first, then captures by MVV-LVA, then killers, then history for the remaining
// quiet moves. With fewer than two moves the list is returned unchanged.
func orderMoves(moves []board.Move, turn board.Color, ttMove board.Move, k0, k1 board.Move, hist *History) []board.Move {
	if len(moves) < 2 {
		return moves
	}

	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = moveScore(m, turn, ttMove, k0, k1, hist)
	}

	idx := make([]int, len(moves))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	ordered := make([]board.Move, len(moves))
	for i, j := range idx {
		ordered[i] = moves[j]
	}
	return ordered
}

func moveScore(m board.Move, turn board.Color, ttMove, k0, k1 board.Move, hist *History) int {
	if ttMove != (board.Move{}) && m == ttMove {
		return ttMoveScore
	}
	if m.IsCapture() {
		return captureBase + 100*eval.NominalValue(m.Capture) - eval.NominalValue(m.Piece)
	}
	if m == k0 {
		return killerScore0
	}
	if m == k1 {
		return killerScore1
	}
	return hist.score(turn, m)
}
