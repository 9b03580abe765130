package protocol

import (
	"strings"

	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/corvid-games/glinski/pkg/session"
)

// colorWire renders a session.PlayerColor the way the wire enum is cased
// elsewhere in this package (GameOutcome, GameEndReason): PascalCase.
func colorWire(c session.PlayerColor) string {
	switch c {
	case session.Black:
		return "Black"
	case session.White:
		return "White"
	default:
		return "Both"
	}
}

// NewBoardState renders a live board into its wire form.
func NewBoardState(b *hexboard.Board) BoardState {
	view := make(map[string]PieceView, len(b.Occupied))
	for h, p := range b.Occupied {
		view[h.String()] = PieceView{Kind: p.Kind.String(), Color: p.Color.String()}
	}
	return BoardState{
		Op:            OpBoardState,
		Board:         view,
		CurrentPlayer: b.CurrentPlayer.String(),
	}
}

// hexStrings renders a hex slice to its wire form, in the order produced by
// move generation.
func hexStrings(hs []hexboard.Hex) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.String()
	}
	return out
}

// parsePieceKind accepts the same lowercase names hexboard.PieceKind.String()
// produces, case-insensitively, and rejects Pawn/King: a client-chosen
// promotion target must be one of Rook, Knight, Bishop or Queen.
func parsePieceKind(s string) (hexboard.PieceKind, bool) {
	switch strings.ToLower(s) {
	case "rook":
		return hexboard.Rook, true
	case "knight":
		return hexboard.Knight, true
	case "bishop":
		return hexboard.Bishop, true
	case "queen":
		return hexboard.Queen, true
	default:
		return hexboard.NoPiece, false
	}
}
