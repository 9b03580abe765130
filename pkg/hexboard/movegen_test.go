package hexboard_test

import (
	"testing"

	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/corvid-games/glinski/pkg/hexboard/startpos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRookAtF6 checks the 30-square raycast off an otherwise empty board.
func TestRookAtF6(t *testing.T) {
	b := hexboard.NewBoard()
	f6, ok := hexboard.ParseHex("f6")
	require.True(t, ok)
	b.Occupied[f6] = hexboard.Piece{Kind: hexboard.Rook, Color: hexboard.White}

	want := []string{
		"a1", "b2", "c3", "d4", "e5", "e6", "d6", "c6", "b6", "a6", "f1", "f2", "f3", "f4",
		"f5", "f7", "f8", "f9", "f10", "f11", "g5", "h4", "i3", "k2", "l1", "g6", "h6", "i6",
		"k6", "l6",
	}

	dests := b.LegalMoves(f6).Dests
	assert.Len(t, dests, len(want))
	for _, w := range want {
		h, ok := hexboard.ParseHex(w)
		require.True(t, ok, w)
		assert.Contains(t, dests, h, w)
	}
}

func startingBoard(t *testing.T) *hexboard.Board {
	t.Helper()
	placements, err := startpos.Default()
	require.NoError(t, err)
	return hexboard.NewBoardFromPlacements(placements, hexboard.White)
}

func TestStartingBoardPawnsHaveTwoForwardMovesNoCaptures(t *testing.T) {
	b := startingBoard(t)
	for h, p := range b.Occupied {
		if p.Kind != hexboard.Pawn {
			continue
		}
		dests := b.LegalMoves(h).Dests
		assert.Len(t, dests, 2, "pawn at %v", h)
	}
}

func TestStartingBoardKnightsHaveTwoMoves(t *testing.T) {
	b := startingBoard(t)
	for h, p := range b.Occupied {
		if p.Kind != hexboard.Knight {
			continue
		}
		dests := b.LegalMoves(h).Dests
		assert.Len(t, dests, 2, "knight at %v", h)
	}
}

func TestStartingBoardIsOngoing(t *testing.T) {
	b := startingBoard(t)
	assert.Equal(t, hexboard.Ongoing, b.Result())
	assert.False(t, b.InCheck(hexboard.White))
	assert.False(t, b.InCheck(hexboard.Black))
}

func TestApplyThenRevertRestoresBoard(t *testing.T) {
	b := startingBoard(t)
	before := b.Clone()

	moves := b.AllLegalMoves()
	require.NotEmpty(t, moves)
	m := moves[0]

	undo := b.Apply(m)
	assert.NotEqual(t, before.CurrentPlayer, b.CurrentPlayer)

	b.Revert(m, undo)
	assert.Equal(t, before.Occupied, b.Occupied)
	assert.Equal(t, before.CurrentPlayer, b.CurrentPlayer)
	assert.Equal(t, before.EnPassant, b.EnPassant)
}

func mustHex(t *testing.T, s string) hexboard.Hex {
	t.Helper()
	h, ok := hexboard.ParseHex(s)
	require.True(t, ok, s)
	return h
}

func TestDoubleJumpThenEnPassantCapture(t *testing.T) {
	placements := map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a1"): {Kind: hexboard.King, Color: hexboard.White},
		mustHex(t, "l6"): {Kind: hexboard.King, Color: hexboard.Black},
		mustHex(t, "b1"): {Kind: hexboard.Pawn, Color: hexboard.White},
		mustHex(t, "c3"): {Kind: hexboard.Pawn, Color: hexboard.Black},
	}
	b := hexboard.NewBoardFromPlacements(placements, hexboard.White)

	_, err := b.RegisterMove(hexboard.Move{Start: mustHex(t, "b1"), Final: mustHex(t, "b3"), FinalPiece: hexboard.Pawn})
	require.NoError(t, err)

	ep, ok := b.EnPassant.V()
	require.True(t, ok)
	assert.Equal(t, mustHex(t, "b3"), ep)

	_, err = b.RegisterMove(hexboard.Move{Start: mustHex(t, "c3"), Final: mustHex(t, "b2"), FinalPiece: hexboard.Pawn})
	require.NoError(t, err)

	assert.True(t, b.IsEmpty(mustHex(t, "b3")), "captured pawn should be removed")
	capturedPiece, stillThere := b.At(mustHex(t, "b2"))
	assert.True(t, stillThere)
	assert.Equal(t, hexboard.Black, capturedPiece.Color)
}

func TestRegisterMoveRejectsWrongTurn(t *testing.T) {
	b := startingBoard(t)
	start, _ := hexboard.ParseHex("b7")
	final, _ := hexboard.ParseHex("b6")
	before := b.Clone()

	_, err := b.RegisterMove(hexboard.Move{Start: start, Final: final, FinalPiece: hexboard.Pawn})
	assert.Error(t, err)
	assert.Equal(t, before.Occupied, b.Occupied)
	assert.Equal(t, before.CurrentPlayer, b.CurrentPlayer)
}

func TestQueenDeliversCheckmate(t *testing.T) {
	placements := map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a4"): {Kind: hexboard.King, Color: hexboard.White},
		mustHex(t, "c4"): {Kind: hexboard.King, Color: hexboard.Black},
		mustHex(t, "d2"): {Kind: hexboard.Queen, Color: hexboard.Black},
	}
	b := hexboard.NewBoardFromPlacements(placements, hexboard.Black)

	_, err := b.RegisterMove(hexboard.Move{Start: mustHex(t, "d2"), Final: mustHex(t, "b2"), FinalPiece: hexboard.Queen})
	require.NoError(t, err)

	assert.Equal(t, hexboard.Checkmate, b.Result())
	assert.True(t, b.InCheck(hexboard.White))
}
