package board

import (
	"fmt"
	"strings"
)

// MoveType indicates the kind of move, used to maintain the no-progress counter and to
// drive Zobrist/make-unmake bookkeeping. The no-progress counter is reset by any
// non-Normal move.
type MoveType uint8

const (
	Normal MoveType = iota
	Push            // single-square pawn move
	Jump            // two-square pawn move
	EnPassant
	QueenSideCastle
	KingSideCastle
	Capture
	Promotion
	CapturePromotion
)

// Move is a packed, not-necessarily-legal move: origin and destination squares, the
// moved piece, the captured piece (NoPiece if none) and the promotion piece (NoPiece if
// none), plus the move kind used to recognize en-passant and castling. All fields are
// plain values, so two Moves are value-comparable with ==.
type Move struct {
	Type      MoveType
	From, To  Square
	Piece     Piece // piece making the move
	Capture   Piece // captured piece, if any
	Promotion Piece // promotion piece, if any
}

// IsCapture returns true iff the move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == CapturePromotion || m.Type == EnPassant
}

// IsPromotion returns true iff the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Type == Promotion || m.Type == CapturePromotion
}

// IsCastle returns true iff the move is a castling move.
func (m Move) IsCastle() bool {
	return m.Type == QueenSideCastle || m.Type == KingSideCastle
}

// IsQuiet returns true iff the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// PromotionMode restricts which promotion pieces move generation produces. Used to narrow
// the branching factor deep in the search tree, where underpromotions are almost never best.
type PromotionMode uint8

const (
	AllPromotions   PromotionMode = iota
	QueenPromotion                // only generate queen promotions
)

// promotionPieces lists the pieces generated for a pawn promotion under the given mode.
func promotionPieces(mode PromotionMode) []Piece {
	if mode == QueenPromotion {
		return []Piece{Queen}
	}
	return []Piece{Queen, Rook, Bishop, Knight}
}

// ParseMove parses a move in pure (long) algebraic coordinate notation, such as "a2a4" or
// "a7a8q". The parsed move carries no contextual metadata (castling/en-passant/piece
// identity); callers recover the full move by matching it, with Equals, against the moves
// generated for the current position.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from square in move %q: %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to square in move %q: %w", str, err)
	}

	m := Move{From: from, To: to}
	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion in move %q", str)
		}
		m.Promotion = promo
	}
	return m, nil
}

// Equals reports whether two moves have the same origin, destination and promotion piece.
// The other fields are ignored, so a move from ParseMove matches the corresponding
// generated move. Exposed as a method for use as a predicate value (board.Move.Equals).
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// String renders the move in long algebraic notation: <from><to>[<promotion>], matching
// the wire encoding of spec.md §6.
func (m Move) String() string {
	if m.Promotion != NoPiece {
		return strings.ToLower(fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion))
	}
	return strings.ToLower(fmt.Sprintf("%v%v", m.From, m.To))
}

// PrintMoves formats a sequence of moves as a space-separated long algebraic list.
func PrintMoves(moves []Move) string {
	s := ""
	for i, m := range moves {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
