package eval_test

import (
	"context"
	"testing"

	"github.com/corvid-games/glinski/pkg/eval"
	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) hexboard.Hex {
	t.Helper()
	h, ok := hexboard.ParseHex(s)
	require.True(t, ok, s)
	return h
}

func TestMaterialEvaluateWhitePerspective(t *testing.T) {
	b := hexboard.NewBoardFromPlacements(map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a5"): {Kind: hexboard.Queen, Color: hexboard.White},
	}, hexboard.White)
	assert.EqualValues(t, 9, eval.Material{}.Evaluate(context.Background(), b))

	b = hexboard.NewBoardFromPlacements(map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a5"): {Kind: hexboard.Queen, Color: hexboard.White},
		mustHex(t, "b5"): {Kind: hexboard.Queen, Color: hexboard.White},
	}, hexboard.White)
	assert.EqualValues(t, 18, eval.Material{}.Evaluate(context.Background(), b))

	b = hexboard.NewBoardFromPlacements(map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a5"): {Kind: hexboard.Queen, Color: hexboard.White},
		mustHex(t, "b5"): {Kind: hexboard.Queen, Color: hexboard.White},
		mustHex(t, "c3"): {Kind: hexboard.Queen, Color: hexboard.Black},
	}, hexboard.White)
	assert.EqualValues(t, 9, eval.Material{}.Evaluate(context.Background(), b))
}

func TestMaterialEvaluateFlipsWithSideToMove(t *testing.T) {
	placements := map[hexboard.Hex]hexboard.Piece{
		mustHex(t, "a5"): {Kind: hexboard.Queen, Color: hexboard.White},
	}
	white := hexboard.NewBoardFromPlacements(placements, hexboard.White)
	black := hexboard.NewBoardFromPlacements(placements, hexboard.Black)

	assert.EqualValues(t, 9, eval.Material{}.Evaluate(context.Background(), white))
	assert.EqualValues(t, -9, eval.Material{}.Evaluate(context.Background(), black))
}
