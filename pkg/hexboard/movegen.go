package hexboard

import "github.com/seekerror/stdlib/pkg/lang"

// PseudoMoves is the result of generating moves for a single piece before
// legality (check) filtering: the destinations, an optional double-jump
// landing square (pawns only, used to set up en passant) and the subset of
// destinations that are promotions.
type PseudoMoves struct {
	Dests      []Hex
	DoubleJump lang.Optional[Hex]
	Promotions []Hex
}

func (b *Board) pseudoMovesFor(from Hex, p Piece) PseudoMoves {
	switch p.Kind {
	case Rook, Bishop, Queen, King:
		return PseudoMoves{Dests: b.slidingDests(from, p)}
	case Knight:
		return PseudoMoves{Dests: b.knightDests(from, p)}
	case Pawn:
		return b.pawnMoves(from, p)
	default:
		return PseudoMoves{}
	}
}

func (b *Board) slidingDests(from Hex, p Piece) []Hex {
	var dirs []direction
	single := false
	switch p.Kind {
	case Rook:
		dirs = rookDirections
	case Bishop:
		dirs = bishopDirections
	case Queen:
		dirs = queenDirections
	case King:
		dirs = queenDirections
		single = true
	}
	w := newArmWalker(from, dirs, single)
	var out []Hex
	for {
		h, ok := w.Next()
		if !ok {
			break
		}
		if occ, present := b.At(h); present {
			if occ.Color != p.Color {
				out = append(out, h)
			}
			w.DropArm()
			continue
		}
		out = append(out, h)
	}
	return out
}

func (b *Board) knightDests(from Hex, p Piece) []Hex {
	c := ToCube(from)
	var out []Hex
	for _, d := range knightOffsets {
		h, ok := FromCube(c.Q+d.dq, c.R+d.dr)
		if !ok {
			continue
		}
		if occ, present := b.At(h); present && occ.Color == p.Color {
			continue
		}
		out = append(out, h)
	}
	return out
}

// forwardDir, captureDirs give each color's forward step and the two
// attacking diagonals, all expressed as cube-space direction vectors.
func forwardDir(c Color) direction {
	if c == White {
		return direction{0, 1}
	}
	return direction{0, -1}
}

func captureDirs(c Color) [2]direction {
	if c == White {
		return [2]direction{{-1, 0}, {1, 1}}
	}
	return [2]direction{{1, 0}, {-1, -1}}
}

// canDoubleJump reports whether a pawn on the given cube coordinate still
// sits on its color's starting diagonal and may therefore advance two
// squares. Glinski pawn start squares aren't a single rank: each side's
// nine starting pawns straddle two of the board's three axes.
func canDoubleJump(c Color, cube Cube) bool {
	if c == White {
		return (cube.S == 6 && cube.Q < 6) || (cube.R == 4 && cube.Q >= 6)
	}
	return (cube.S == 4 && cube.Q > 4) || (cube.R == 6 && cube.Q <= 5)
}

// isPromotionHex reports whether h lies on the far edge a color's pawns
// advance toward: the last file of its rank for White, file 0 for Black.
func isPromotionHex(c Color, h Hex) bool {
	if c == White {
		length, _ := RankLength(h.Rank)
		return h.File == length-1
	}
	return h.File == 0
}

func (b *Board) pawnMoves(from Hex, p Piece) PseudoMoves {
	var out PseudoMoves
	c := ToCube(from)
	fwd := forwardDir(p.Color)

	if h, ok := FromCube(c.Q+fwd.dq, c.R+fwd.dr); ok && b.IsEmpty(h) {
		out.Dests = append(out.Dests, h)
		if isPromotionHex(p.Color, h) {
			out.Promotions = append(out.Promotions, h)
		}
		if canDoubleJump(p.Color, c) {
			if h2, ok2 := FromCube(c.Q+2*fwd.dq, c.R+2*fwd.dr); ok2 && b.IsEmpty(h2) {
				out.Dests = append(out.Dests, h2)
				out.DoubleJump = lang.Some(h2)
			}
		}
	}

	for _, d := range captureDirs(p.Color) {
		h, ok := FromCube(c.Q+d.dq, c.R+d.dr)
		if !ok {
			continue
		}
		if occ, present := b.At(h); present {
			if occ.Color != p.Color {
				out.Dests = append(out.Dests, h)
				if isPromotionHex(p.Color, h) {
					out.Promotions = append(out.Promotions, h)
				}
			}
			continue
		}
		if ep, ok := b.EnPassant.V(); ok && convertEnPassantToVirtualPawn(h, p.Color) == ep {
			out.Dests = append(out.Dests, h)
		}
	}

	return out
}
