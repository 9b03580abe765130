package hexboard

import (
	"fmt"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Board is the mutable hex-chess position: the occupied squares, the pending
// en passant target (if any) and the side to move. Not thread-safe; callers
// needing concurrent access (search, rollouts) should Clone.
type Board struct {
	Occupied      map[Hex]Piece
	EnPassant     lang.Optional[Hex] // landing square of a pawn that just double-jumped, capturable en passant
	CurrentPlayer Color
}

// NewBoard returns an empty board with White to move.
func NewBoard() *Board {
	return &Board{
		Occupied:      map[Hex]Piece{},
		CurrentPlayer: White,
	}
}

// NewBoardFromPlacements builds a board from an initial piece placement, such
// as the bundled starting position (see startpos).
func NewBoardFromPlacements(placements map[Hex]Piece, turn Color) *Board {
	occupied := make(map[Hex]Piece, len(placements))
	for h, p := range placements {
		occupied[h] = p
	}
	return &Board{
		Occupied:      occupied,
		CurrentPlayer: turn,
	}
}

// Clone returns a deep copy of the board, used by MCTS workers and rollouts
// where apply/revert is costlier than a fresh copy (see design notes).
func (b *Board) Clone() *Board {
	occupied := make(map[Hex]Piece, len(b.Occupied))
	for h, p := range b.Occupied {
		occupied[h] = p
	}
	return &Board{
		Occupied:      occupied,
		EnPassant:     b.EnPassant,
		CurrentPlayer: b.CurrentPlayer,
	}
}

// At returns the piece on the hex, if any.
func (b *Board) At(h Hex) (Piece, bool) {
	p, ok := b.Occupied[h]
	return p, ok
}

// IsEmpty reports whether the hex holds no piece.
func (b *Board) IsEmpty(h Hex) bool {
	_, ok := b.Occupied[h]
	return !ok
}

// King returns the hex of the given color's king. Panics if absent, which
// would be a corrupt board: every in-play board has exactly one king per side.
func (b *Board) King(c Color) Hex {
	for h, p := range b.Occupied {
		if p.Kind == King && p.Color == c {
			return h
		}
	}
	panic(fmt.Sprintf("board has no %v king", c))
}

// convertEnPassantToVirtualPawn returns the square final would need to match
// board.EnPassant for the move to be an en passant capture: the captured
// pawn's actual square, file-shifted toward the mover (−1 for White, +1 for Black).
func convertEnPassantToVirtualPawn(final Hex, mover Color) Hex {
	shift := int8(-1)
	if mover == Black {
		shift = 1
	}
	return Hex{Rank: final.Rank, File: final.File + shift}
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pieces=%v, turn=%v, ep=%v}", len(b.Occupied), b.CurrentPlayer, b.EnPassant)
}
