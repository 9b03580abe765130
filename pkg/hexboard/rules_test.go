package hexboard_test

import (
	"testing"

	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/corvid-games/glinski/pkg/hexboard/startpos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckForMatesCheckmate(t *testing.T) {
	placements := map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a4"): {Kind: hexboard.King, Color: hexboard.White},
		mustHex(t, "c4"): {Kind: hexboard.King, Color: hexboard.Black},
		mustHex(t, "a6"): {Kind: hexboard.Rook, Color: hexboard.Black},
	}
	b := hexboard.NewBoardFromPlacements(placements, hexboard.White)
	assert.Equal(t, hexboard.Checkmate, b.Result())
}

func TestCheckForMatesStalemate(t *testing.T) {
	placements := map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a4"): {Kind: hexboard.King, Color: hexboard.White},
		mustHex(t, "c4"): {Kind: hexboard.King, Color: hexboard.Black},
		mustHex(t, "c7"): {Kind: hexboard.Rook, Color: hexboard.Black},
	}
	b := hexboard.NewBoardFromPlacements(placements, hexboard.White)
	assert.Equal(t, hexboard.Stalemate, b.Result())
}

func TestCheckForMatesNone(t *testing.T) {
	placements := map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a4"): {Kind: hexboard.King, Color: hexboard.White},
		mustHex(t, "c4"): {Kind: hexboard.King, Color: hexboard.Black},
		mustHex(t, "c8"): {Kind: hexboard.Rook, Color: hexboard.Black},
	}
	b := hexboard.NewBoardFromPlacements(placements, hexboard.White)
	assert.Equal(t, hexboard.Ongoing, b.Result())
}

func TestLegalMovesNeverLeaveKingAttacked(t *testing.T) {
	placements, err := startpos.Default()
	require.NoError(t, err)
	b := hexboard.NewBoardFromPlacements(placements, hexboard.White)

	for _, m := range b.AllLegalMoves() {
		mover, _ := b.At(m.Start)
		undo := b.Apply(m)
		assert.False(t, b.InCheck(mover.Color), "move %v left %v king attacked", m, mover.Color)
		b.Revert(m, undo)
	}
}
