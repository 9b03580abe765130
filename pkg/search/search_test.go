package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvid-games/glinski/pkg/eval"
	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/corvid-games/glinski/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) hexboard.Hex {
	t.Helper()
	h, ok := hexboard.ParseHex(s)
	require.True(t, ok, s)
	return h
}

func TestAlphaBetaDepthZeroReturnsStaticEval(t *testing.T) {
	b := hexboard.NewBoardFromPlacements(map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a4"): {Kind: hexboard.King, Color: hexboard.White},
		mustHex(t, "c4"): {Kind: hexboard.King, Color: hexboard.Black},
		mustHex(t, "a5"): {Kind: hexboard.Queen, Color: hexboard.White},
	}, hexboard.White)

	ev := eval.Material{}
	ab := search.AlphaBeta{Eval: ev}

	_, score, moves, err := ab.Search(context.Background(), b, 0)
	require.NoError(t, err)
	assert.Empty(t, moves)
	assert.Equal(t, ev.Evaluate(context.Background(), b), score)
}

func TestAlphaBetaMatchesNegamax(t *testing.T) {
	placements := map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a4"): {Kind: hexboard.King, Color: hexboard.White},
		mustHex(t, "l6"): {Kind: hexboard.King, Color: hexboard.Black},
		mustHex(t, "f6"): {Kind: hexboard.Rook, Color: hexboard.White},
		mustHex(t, "g8"): {Kind: hexboard.Pawn, Color: hexboard.Black},
		mustHex(t, "c2"): {Kind: hexboard.Knight, Color: hexboard.White},
	}
	ev := eval.Material{}

	for depth := 0; depth <= 2; depth++ {
		ab := search.AlphaBeta{Eval: ev}
		b1 := hexboard.NewBoardFromPlacements(placements, hexboard.White)
		_, abScore, _, err := ab.Search(context.Background(), b1, depth)
		require.NoError(t, err)

		nm := search.Negamax{Eval: ev}
		b2 := hexboard.NewBoardFromPlacements(placements, hexboard.White)
		_, nmScore, _, err := nm.Search(context.Background(), b2, depth)
		require.NoError(t, err)

		assert.Equal(t, nmScore, abScore, "depth=%v", depth)
	}
}

func TestChooseMoveFindsMateInOne(t *testing.T) {
	placements := map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a4"): {Kind: hexboard.King, Color: hexboard.White},
		mustHex(t, "c4"): {Kind: hexboard.King, Color: hexboard.Black},
		mustHex(t, "d2"): {Kind: hexboard.Queen, Color: hexboard.Black},
	}
	b := hexboard.NewBoardFromPlacements(placements, hexboard.Black)

	m, err := search.ChooseMove(context.Background(), b, eval.Material{}, 500)
	require.NoError(t, err)

	undo := b.Apply(m)
	assert.Equal(t, hexboard.Checkmate, b.Result())
	b.Revert(m, undo)
}

func TestChooseMoveHonorsDeadline(t *testing.T) {
	b := startingBoardForSearchTest(t)

	start := time.Now()
	_, err := search.ChooseMove(context.Background(), b, eval.Material{}, 50)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func startingBoardForSearchTest(t *testing.T) *hexboard.Board {
	t.Helper()
	placements := map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a4"): {Kind: hexboard.King, Color: hexboard.White},
		mustHex(t, "c6"): {Kind: hexboard.King, Color: hexboard.Black},
		mustHex(t, "f6"): {Kind: hexboard.Rook, Color: hexboard.White},
		mustHex(t, "g8"): {Kind: hexboard.Rook, Color: hexboard.Black},
		mustHex(t, "e4"): {Kind: hexboard.Pawn, Color: hexboard.White},
		mustHex(t, "e7"): {Kind: hexboard.Pawn, Color: hexboard.Black},
	}
	return hexboard.NewBoardFromPlacements(placements, hexboard.White)
}
