package board

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit set of squares: bit 63 is A8, bit 0 is H1. Piece placement, attack
// sets and occupancy are all represented this way so move generation reduces to bitwise ops,
// leaning on CPU support for popcount and bit scan.
type Bitboard uint64

const EmptyBitboard Bitboard = 0

func (b Bitboard) IsSet(sq Square) bool {
	return b&BitMask(sq) != 0
}

// PopCount returns the number of set squares.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LastPopSquare returns the least-significant set square, or 64 if b is empty.
func (b Bitboard) LastPopSquare() Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

func (b Bitboard) String() string {
	var sb strings.Builder
	for i := ZeroSquare; i < NumSquares; i++ {
		if i != 0 && i%8 == 0 {
			sb.WriteRune('/')
		}
		if b.IsSet(NumSquares - 1 - i) {
			sb.WriteRune('X')
		} else {
			sb.WriteRune('-')
		}
	}
	return sb.String()
}

// BitMask returns a bitboard with only sq populated.
func BitMask(sq Square) Bitboard {
	return Bitboard(1 << sq)
}

// BitRank returns a bitboard with every square of rank r populated.
func BitRank(r Rank) Bitboard {
	return Bitboard(0xff << (r << 3))
}

// BitFile returns a bitboard with every square of file f populated.
func BitFile(f File) Bitboard {
	return Bitboard(0x0101010101010101 << f)
}

// PawnCaptureboard returns the squares pawns at the given positions could capture on, for c.
func PawnCaptureboard(c Color, pawns Bitboard) Bitboard {
	if c == White {
		return ((pawns << 9) &^ BitFile(FileH)) | ((pawns << 7) &^ BitFile(FileA))
	}
	return ((pawns >> 9) &^ BitFile(FileA)) | ((pawns >> 7) &^ BitFile(FileH))
}

// PawnMoveboard returns the single-step forward targets of pawns, excluding occupied squares.
func PawnMoveboard(all Bitboard, c Color, pawns Bitboard) Bitboard {
	if c == White {
		return (pawns << 8) &^ all
	}
	return (pawns >> 8) &^ all
}

// PawnPromotionRank returns Rank8 for White, Rank1 for Black.
func PawnPromotionRank(c Color) Bitboard {
	if c == White {
		return BitRank(Rank8)
	}
	return BitRank(Rank1)
}

// PawnJumpRank returns the destination rank of a two-square pawn jump: Rank4 for White,
// Rank5 for Black.
func PawnJumpRank(c Color) Bitboard {
	if c == White {
		return BitRank(Rank4)
	}
	return BitRank(Rank5)
}

// Attackboard returns the attack set of a non-pawn piece at sq against the given occupancy.
func Attackboard(occ RotatedBitboard, sq Square, piece Piece) Bitboard {
	switch piece {
	case King:
		return KingAttackboard(sq)
	case Queen:
		return QueenAttackboard(occ, sq)
	case Rook:
		return RookAttackboard(occ, sq)
	case Bishop:
		return BishopAttackboard(occ, sq)
	case Knight:
		return KnightAttackboard(sq)
	default:
		panic("invalid piece")
	}
}

// KingAttackboard returns the king's attack set at sq.
func KingAttackboard(sq Square) Bitboard {
	return kingAttacks[sq]
}

// KnightAttackboard returns the knight's attack set at sq.
func KnightAttackboard(sq Square) Bitboard {
	return knightAttacks[sq]
}

var (
	kingAttacks   [NumSquares]Bitboard
	knightAttacks [NumSquares]Bitboard
)

// init precomputes the king and knight attack sets once: both depend only on geometry, not
// on occupancy, so every square's set is fixed for the lifetime of the process.
func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		center := BitMask(sq)

		// Ring of 8 neighbors, cropped at the A/H file wrap and then masked off center.
		ring := center
		ring |= ((ring << 1) &^ BitFile(FileH)) | ((ring >> 1) &^ BitFile(FileA))
		ring |= ring<<8 | ring>>8
		kingAttacks[sq] = ring &^ center

		// Knight jumps as two "L" shapes: one square orthogonal then two across, and vice
		// versa, each cropped at the files they'd otherwise wrap around.
		adjacent := ((center << 1) &^ BitFile(FileH)) | ((center >> 1) &^ BitFile(FileA))
		skip := ((center << 2) &^ (BitFile(FileG) | BitFile(FileH))) | ((center >> 2) &^ (BitFile(FileA) | BitFile(FileB)))
		knightAttacks[sq] = adjacent<<16 | adjacent>>16 | skip<<8 | skip>>8
	}
}

// RotatedBitboard tracks the same occupancy in four orientations at once: the natural
// orientation plus three rotations that turn files and diagonals into contiguous runs. That
// lets sliding-piece attacks be looked up by table instead of ray-traced on every query. The
// "rotations" are really relabelings of which squares are adjacent in memory; the diagonal
// variants additionally carry a per-square length/offset since diagonals aren't all 8 long.
type RotatedBitboard struct {
	natural, byFile, diagA1H8, diagA8H1 Bitboard
}

// NewRotatedBitboard builds a RotatedBitboard from a natural-orientation occupancy.
func NewRotatedBitboard(bb Bitboard) RotatedBitboard {
	var ret RotatedBitboard
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if bb.IsSet(sq) {
			ret = ret.Xor(sq)
		}
	}
	return ret
}

// Mask returns the occupancy in natural orientation.
func (r RotatedBitboard) Mask() Bitboard {
	return r.natural
}

// Xor toggles sq's occupancy in all four orientations.
func (r RotatedBitboard) Xor(sq Square) RotatedBitboard {
	return RotatedBitboard{
		natural:  r.natural ^ BitMask(sq),
		byFile:   r.byFile ^ BitMask(fileOrder[sq]),
		diagA1H8: r.diagA1H8 ^ BitMask(diagA1H8Order[sq]),
		diagA8H1: r.diagA8H1 ^ BitMask(diagA8H1Order[sq]),
	}
}

func (r RotatedBitboard) String() string {
	return fmt.Sprintf("%v [byFile=%v, diagA1H8=%v, diagA8H1=%v]", r.natural, r.byFile, r.diagA1H8, r.diagA8H1)
}

// slidingStates bounds the number of distinct occupancy patterns a rook or bishop can see
// along one rank, file or diagonal: 8 bits, 256 states.
const slidingStates = 256

// fileOrder maps a natural-orientation square to its position once the board is relabeled
// so that files read out contiguously the way ranks already do.
//
// 63 62 61 60 59 58 57 56          63 55 47 39 31 23 15  7
// 55 54 53 52 51 50 49 48          62 54 46 38 30 22 14  6
// 47 46 45 44 43 42 41 40 byFile   61 53 45 37 29 21 13  5
// 39 38 37 36 35 34 33 32 ----->   60 52 44 36 28 20 12  4
// 31 30 29 28 27 26 25 24          59 51 43 35 27 19 11  3
// 23 22 21 20 19 18 17 16          58 50 42 34 26 18 10  2
// 15 14 13 12 11 10  9  8          57 49 41 33 25 17  9  1
//  7  6  5  4  3  2  1  0          56 48 40 32 24 16  8  0
//
// Each file then occupies a fixed 8-bit mask at offset file<<3.
var fileOrder = [NumSquares]Square{
	0, 8, 16, 24, 32, 40, 48, 56,
	1, 9, 17, 25, 33, 41, 49, 57,
	2, 10, 18, 26, 34, 42, 50, 58,
	3, 11, 19, 27, 35, 43, 51, 59,
	4, 12, 20, 28, 36, 44, 52, 60,
	5, 13, 21, 29, 37, 45, 53, 61,
	6, 14, 22, 30, 38, 46, 54, 62,
	7, 15, 23, 31, 39, 47, 55, 63,
}

// RookAttackboard returns the rook's attack set at sq given occ, via two table lookups: one
// for the occupied-rank state, one for the occupied-file state.
func RookAttackboard(occ RotatedBitboard, sq Square) Bitboard {
	rankState := occ.natural >> (sq.Rank() << 3) & 0xff
	fileState := occ.byFile >> (sq.File() << 3) & 0xff
	return rookAlongRank[sq][rankState] | rookAlongFile[sq][fileState]
}

var (
	rookAlongRank [NumSquares][slidingStates]Bitboard
	rookAlongFile [NumSquares][slidingStates]Bitboard
)

// init ray-traces every (square, occupancy-state) pair once for the rook tables. For example
// a rook on index 2 of an 8-bit line with blockers at indices 3 and 7 attacks indices 0, 1
// and 3: tracing includes the first blocker found in each direction and stops there.
func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		for state := EmptyBitboard; state < slidingStates; state++ {
			tmp := EmptyBitboard
			for i := Square(sq.File()) + 1; i < 8; i++ {
				tmp |= BitMask(i + Square(sq.Rank()<<3))
				if BitMask(i)&state != 0 {
					break
				}
			}
			for i := int(sq.File()) - 1; i > -1; i-- {
				tmp |= BitMask(Square(i) + Square(sq.Rank()<<3))
				if BitMask(Square(i))&state != 0 {
					break
				}
			}
			rookAlongRank[sq][state] = tmp
		}
	}

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		for state := EmptyBitboard; state < slidingStates; state++ {
			tmp := EmptyBitboard
			for i := Square(sq.Rank()) + 1; i < 8; i++ {
				tmp |= BitMask(Square(sq.File()) + i<<3)
				if BitMask(i)&state != 0 {
					break
				}
			}
			for i := int(sq.Rank()) - 1; i > -1; i-- {
				tmp |= BitMask(Square(sq.File()) + Square(i<<3))
				if BitMask(Square(i))&state != 0 {
					break
				}
			}
			rookAlongFile[sq][state] = tmp
		}
	}
}

// diagA1H8Order maps a natural-orientation square to its position once the board is
// relabeled along diagonals parallel to a1-h8.
//
// 63 62 61 60 59 58 57 56          35 42 48 53 57 60 62 63
// 55 54 53 52 51 50 49 48          27 34 41 47 52 56 59 61
// 47 46 45 44 43 42 41 40 diagA1H8 20 26 33 40 46 51 55 58
// 39 38 37 36 35 34 33 32 ------>  14 19 25 32 39 45 50 54
// 31 30 29 28 27 26 25 24           9 13 18 24 31 38 44 49
// 23 22 21 20 19 18 17 16           5  8 12 17 23 30 37 43
// 15 14 13 12 11 10  9  8           2  4  7 11 16 22 29 36
//  7  6  5  4  3  2  1  0           0  1  3  6 10 15 21 28
//
// Unlike ranks and files, diagonals vary in length (1 to 8 squares), so each square also
// carries a mask (diagA1H8Mask, the bit-width of its diagonal) and an offset
// (diagA1H8Offset, where that diagonal starts) used to carve its state out of the full
// rotated word.
var diagA1H8Order = [NumSquares]Square{
	28, 21, 15, 10, 6, 3, 1, 0,
	36, 29, 22, 16, 11, 7, 4, 2,
	43, 37, 30, 23, 17, 12, 8, 5,
	49, 44, 38, 31, 24, 18, 13, 9,
	54, 50, 45, 39, 32, 25, 19, 14,
	58, 55, 51, 46, 40, 33, 26, 20,
	61, 59, 56, 52, 47, 41, 34, 27,
	63, 62, 60, 57, 53, 48, 42, 35,
}

var diagA1H8Mask = [NumSquares]int{
	255, 127, 63, 31, 15, 7, 3, 1,
	127, 255, 127, 63, 31, 15, 7, 3,
	63, 127, 255, 127, 63, 31, 15, 7,
	31, 63, 127, 255, 127, 63, 31, 15,
	15, 31, 63, 127, 255, 127, 63, 31,
	7, 15, 31, 63, 127, 255, 127, 63,
	3, 7, 15, 31, 63, 127, 255, 127,
	1, 3, 7, 15, 31, 63, 127, 255,
}

var diagA1H8Offset = [NumSquares]int{
	28, 21, 15, 10, 6, 3, 1, 0,
	36, 28, 21, 15, 10, 6, 3, 1,
	43, 36, 28, 21, 15, 10, 6, 3,
	49, 43, 36, 28, 21, 15, 10, 6,
	54, 49, 43, 36, 28, 21, 15, 10,
	58, 54, 49, 43, 36, 28, 21, 15,
	61, 58, 54, 49, 43, 36, 28, 21,
	63, 61, 58, 54, 49, 43, 36, 28,
}

// diagA8H1Order maps a natural-orientation square to its position once the board is
// relabeled along diagonals parallel to a8-h1, with diagA8H1Mask/diagA8H1Offset playing the
// same role as their A1H8 counterparts above.
var diagA8H1Order = [NumSquares]Square{
	0, 1, 3, 6, 10, 15, 21, 28,
	2, 4, 7, 11, 16, 22, 29, 36,
	5, 8, 12, 17, 23, 30, 37, 43,
	9, 13, 18, 24, 31, 38, 44, 49,
	14, 19, 25, 32, 39, 45, 50, 54,
	20, 26, 33, 40, 46, 51, 55, 58,
	27, 34, 41, 47, 52, 56, 59, 61,
	35, 42, 48, 53, 57, 60, 62, 63,
}

var diagA8H1Mask = [NumSquares]int{
	1, 3, 7, 15, 31, 63, 127, 255,
	3, 7, 15, 31, 63, 127, 255, 127,
	7, 15, 31, 63, 127, 255, 127, 63,
	15, 31, 63, 127, 255, 127, 63, 31,
	31, 63, 127, 255, 127, 63, 31, 15,
	63, 127, 255, 127, 63, 31, 15, 7,
	127, 255, 127, 63, 31, 15, 7, 3,
	255, 127, 63, 31, 15, 7, 3, 1,
}

var diagA8H1Offset = [NumSquares]int{
	0, 1, 3, 6, 10, 15, 21, 28,
	1, 3, 6, 10, 15, 21, 28, 36,
	3, 6, 10, 15, 21, 28, 36, 43,
	6, 10, 15, 21, 28, 36, 43, 49,
	10, 15, 21, 28, 36, 43, 49, 54,
	15, 21, 28, 36, 43, 49, 54, 58,
	21, 28, 36, 43, 49, 54, 58, 61,
	28, 36, 43, 49, 54, 58, 61, 63,
}

// BishopAttackboard returns the bishop's attack set at sq given occ, via two diagonal table
// lookups that are then unioned.
func BishopAttackboard(occ RotatedBitboard, sq Square) Bitboard {
	a1h8State := int(occ.diagA1H8>>diagA1H8Offset[sq]) & diagA1H8Mask[sq]
	a8h1State := int(occ.diagA8H1>>diagA8H1Offset[sq]) & diagA8H1Mask[sq]
	return bishopAlongA1H8[sq][a1h8State] | bishopAlongA8H1[sq][a8h1State]
}

var (
	bishopAlongA1H8 [NumSquares][slidingStates]Bitboard
	bishopAlongA8H1 [NumSquares][slidingStates]Bitboard
)

// init ray-traces every (square, diagonal-state) pair once for the bishop tables, with the
// same rule used for rooks (include the first blocker, stop there), applied to both
// diagonal directions.
func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		for state := EmptyBitboard; state <= Bitboard(diagA1H8Mask[sq]); state++ {
			tmp := EmptyBitboard
			for i := 1; i < minOf(8-sq.Rank(), 8-sq.File()); i++ {
				tmp |= BitMask(Square(sq.Rank().V()+i)<<3 + Square(sq.File().V()+i))
				if BitMask(Square(minOf(sq.Rank(), sq.File())+i))&state != 0 {
					break
				}
			}
			for i := 1; i < minOf(sq.Rank(), sq.File())+1; i++ {
				tmp |= BitMask(Square(sq.Rank().V()-i)<<3 + Square(sq.File().V()-i))
				if BitMask(Square(minOf(sq.Rank(), sq.File())-i))&state != 0 {
					break
				}
			}
			bishopAlongA1H8[sq][state] = tmp
		}
	}

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		for state := EmptyBitboard; state <= Bitboard(diagA8H1Mask[sq]); state++ {
			tmp := EmptyBitboard
			for i := 1; i < minOf(8-sq.Rank(), sq.File()+1); i++ {
				tmp |= BitMask(Square(sq.Rank().V()+i)<<3 + Square(sq.File().V()-i))
				if BitMask(Square(minOf(sq.Rank(), 7-sq.File())+i))&state != 0 {
					break
				}
			}
			for i := 1; i < minOf(sq.Rank()+1, 8-sq.File()); i++ {
				tmp |= BitMask(Square(sq.Rank().V()-i)<<3 + Square(sq.File().V()+i))
				if BitMask(Square(minOf(sq.Rank(), 7-sq.File())-i))&state != 0 {
					break
				}
			}
			bishopAlongA8H1[sq][state] = tmp
		}
	}
}

// QueenAttackboard returns the queen's attack set at sq: the union of rook and bishop.
func QueenAttackboard(occ RotatedBitboard, sq Square) Bitboard {
	return RookAttackboard(occ, sq) | BishopAttackboard(occ, sq)
}

// minOf returns the smaller of r and f as a plain int, used to index the diagonal-length
// tables above.
func minOf(r Rank, f File) int {
	if int(r) < int(f) {
		return int(r)
	}
	return int(f)
}
