// Package startpos bundles the Glinski hex-chess starting position as an
// embedded JSON map, standing in for the on-disk file a full deployment
// would load from.
package startpos

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/corvid-games/glinski/pkg/hexboard"
)

//go:embed starting_position.json
var bundled embed.FS

type placement struct {
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

func parseKind(s string) (hexboard.PieceKind, bool) {
	switch s {
	case "pawn":
		return hexboard.Pawn, true
	case "rook":
		return hexboard.Rook, true
	case "knight":
		return hexboard.Knight, true
	case "bishop":
		return hexboard.Bishop, true
	case "queen":
		return hexboard.Queen, true
	case "king":
		return hexboard.King, true
	default:
		return hexboard.NoPiece, false
	}
}

func parseColor(s string) (hexboard.Color, bool) {
	switch s {
	case "white":
		return hexboard.White, true
	case "black":
		return hexboard.Black, true
	default:
		return hexboard.White, false
	}
}

// Default returns a fresh copy of the standard Glinski starting placement,
// White to move.
func Default() (map[hexboard.Hex]hexboard.Piece, error) {
	data, err := bundled.ReadFile("starting_position.json")
	if err != nil {
		return nil, fmt.Errorf("startpos: read bundled position: %w", err)
	}

	var raw map[string]placement
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("startpos: parse bundled position: %w", err)
	}

	out := make(map[hexboard.Hex]hexboard.Piece, len(raw))
	for sq, pl := range raw {
		h, ok := hexboard.ParseHex(sq)
		if !ok {
			return nil, fmt.Errorf("startpos: invalid square %q", sq)
		}
		kind, ok := parseKind(pl.Kind)
		if !ok {
			return nil, fmt.Errorf("startpos: invalid piece kind %q at %s", pl.Kind, sq)
		}
		color, ok := parseColor(pl.Color)
		if !ok {
			return nil, fmt.Errorf("startpos: invalid color %q at %s", pl.Color, sq)
		}
		out[h] = hexboard.Piece{Kind: kind, Color: color}
	}
	return out, nil
}

// MustDefault is Default, panicking on error - used at process start where
// a malformed bundled position is a build defect, not a runtime condition.
func MustDefault() map[hexboard.Hex]hexboard.Piece {
	pos, err := Default()
	if err != nil {
		panic(err)
	}
	return pos
}
