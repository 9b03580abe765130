package hexboard

import (
	"fmt"

	"github.com/seekerror/stdlib/pkg/lang"
)

// attacksSquare reports whether the piece at from (of the given color)
// pseudo-legally reaches target, ignoring check - used only to test whether
// an enemy piece attacks a particular square.
func (b *Board) attacksSquare(from Hex, p Piece, target Hex) bool {
	for _, h := range b.pseudoMovesFor(from, p).Dests {
		if h == target {
			return true
		}
	}
	return false
}

// PieceAt pairs a hex with the piece occupying it.
type PieceAt struct {
	Hex   Hex
	Piece Piece
}

func (b *Board) piecesOf(c Color) []PieceAt {
	out := make([]PieceAt, 0, 16)
	for h, p := range b.Occupied {
		if p.Color == c {
			out = append(out, PieceAt{Hex: h, Piece: p})
		}
	}
	return out
}

// Attackers returns every piece of color by that pseudo-legally attacks
// target, or nil if none do.
func (b *Board) Attackers(target Hex, by Color) []PieceAt {
	var out []PieceAt
	for _, pa := range b.piecesOf(by) {
		if b.attacksSquare(pa.Hex, pa.Piece, target) {
			out = append(out, pa)
		}
	}
	return out
}

// IsAttacked reports whether any piece of color by attacks target.
func (b *Board) IsAttacked(target Hex, by Color) bool {
	return len(b.Attackers(target, by)) > 0
}

// InCheck reports whether c's king is currently attacked.
func (b *Board) InCheck(c Color) bool {
	return b.IsAttacked(b.King(c), c.Opponent())
}

// LegalMoves returns the legal destinations for the piece on from, along
// with any double-jump landing square and the promotion subset, filtered so
// that none leave the mover's own king in check.
func (b *Board) LegalMoves(from Hex) PseudoMoves {
	p, ok := b.At(from)
	if !ok {
		return PseudoMoves{}
	}
	pm := b.pseudoMovesFor(from, p)

	delete(b.Occupied, from)
	defer func() { b.Occupied[from] = p }()

	if p.Kind == King {
		pm.Dests = b.filterKingDests(pm.Dests, p)
		return pm
	}

	kingHex := b.King(p.Color)
	savedEP := b.EnPassant
	b.EnPassant = lang.Optional[Hex]{}
	attackers := b.Attackers(kingHex, p.Color.Opponent())
	b.EnPassant = savedEP

	if len(attackers) == 0 {
		return pm
	}

	pm.Dests = filterHexes(pm.Dests, func(dest Hex) bool {
		existing, hadExisting := b.At(dest)
		b.Occupied[dest] = p
		safe := true
		for _, a := range attackers {
			if a.Hex == dest {
				continue
			}
			if b.attacksSquare(a.Hex, a.Piece, kingHex) {
				safe = false
				break
			}
		}
		delete(b.Occupied, dest)
		if hadExisting {
			b.Occupied[dest] = existing
		}
		return safe
	})
	pm.Promotions = intersectHexes(pm.Promotions, pm.Dests)
	return pm
}

func (b *Board) filterKingDests(dests []Hex, king Piece) []Hex {
	return filterHexes(dests, func(dest Hex) bool {
		existing, hadExisting := b.At(dest)
		b.Occupied[dest] = king
		safe := !b.IsAttacked(dest, king.Color.Opponent())
		delete(b.Occupied, dest)
		if hadExisting {
			b.Occupied[dest] = existing
		}
		return safe
	})
}

func filterHexes(hs []Hex, keep func(Hex) bool) []Hex {
	var out []Hex
	for _, h := range hs {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

func intersectHexes(a, b []Hex) []Hex {
	var out []Hex
	for _, h := range a {
		for _, g := range b {
			if h == g {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

// AllLegalMoves enumerates every legal move for the side to move, expanding
// pawn promotions into one Move per promotable kind.
func (b *Board) AllLegalMoves() []Move {
	var out []Move
	for _, pa := range b.piecesOf(b.CurrentPlayer) {
		pm := b.LegalMoves(pa.Hex)
		for _, dest := range pm.Dests {
			if pa.Piece.Kind == Pawn && containsHex(pm.Promotions, dest) {
				for _, k := range []PieceKind{Queen, Rook, Bishop, Knight} {
					out = append(out, Move{Start: pa.Hex, Final: dest, FinalPiece: k})
				}
				continue
			}
			out = append(out, Move{Start: pa.Hex, Final: dest, FinalPiece: pa.Piece.Kind})
		}
	}
	return out
}

func containsHex(hs []Hex, h Hex) bool {
	for _, g := range hs {
		if g == h {
			return true
		}
	}
	return false
}

// Outcome describes why the game has ended.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
)

func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Result reports whether the side to move has any legal move, and if not,
// whether it is mated or merely stalemated.
func (b *Board) Result() Outcome {
	for _, pa := range b.piecesOf(b.CurrentPlayer) {
		if len(b.LegalMoves(pa.Hex).Dests) > 0 {
			return Ongoing
		}
	}
	if b.InCheck(b.CurrentPlayer) {
		return Checkmate
	}
	return Stalemate
}

// Undo captures what Revert needs to undo an Apply: the captured piece (if
// any) and where it sat - which differs from m.Final for en passant - plus
// the prior en passant target.
type Undo struct {
	Captured      lang.Optional[Piece]
	CapturedAt    Hex
	PrevEnPassant lang.Optional[Hex]
	MovingKind    PieceKind
}

// RegisterMoveError reports why a move could not be registered.
type RegisterMoveError struct {
	Reason string
}

func (e *RegisterMoveError) Error() string { return e.Reason }

// RegisterMove validates and applies a move that a player has submitted,
// including promotion choice validation. It is the entry point used by the
// session layer; engines that only need legality already established should
// call Apply directly.
func (b *Board) RegisterMove(m Move) (Undo, error) {
	p, ok := b.At(m.Start)
	if !ok {
		return Undo{}, &RegisterMoveError{Reason: "no piece at start hex"}
	}
	if p.Color != b.CurrentPlayer {
		return Undo{}, &RegisterMoveError{Reason: "not your turn"}
	}

	legal := b.LegalMoves(m.Start)
	if !containsHex(legal.Dests, m.Final) {
		return Undo{}, &RegisterMoveError{Reason: "illegal move"}
	}
	if containsHex(legal.Promotions, m.Final) {
		if !m.FinalPiece.IsPromotable() {
			return Undo{}, &RegisterMoveError{Reason: "missing or invalid promotion choice"}
		}
	} else if m.FinalPiece != p.Kind {
		return Undo{}, &RegisterMoveError{Reason: "final piece does not match mover"}
	}

	return b.Apply(m), nil
}

// Apply performs the move unconditionally - the caller is responsible for
// having already established legality - and returns an Undo for Revert.
// Handles capture, en passant removal, the en passant flag, promotion and
// the turn flip.
func (b *Board) Apply(m Move) Undo {
	mover := b.CurrentPlayer
	p, ok := b.At(m.Start)
	if !ok {
		panic(fmt.Sprintf("hexboard: Apply: no piece at %v", m.Start))
	}

	u := Undo{PrevEnPassant: b.EnPassant, MovingKind: p.Kind}

	var doubleJump lang.Optional[Hex]
	if p.Kind == Pawn {
		doubleJump = b.pseudoMovesFor(m.Start, p).DoubleJump
	}

	delete(b.Occupied, m.Start)

	if captured, present := b.At(m.Final); present {
		u.Captured = lang.Some(captured)
		u.CapturedAt = m.Final
	} else if p.Kind == Pawn {
		if ep, ok := b.EnPassant.V(); ok {
			if victim := convertEnPassantToVirtualPawn(m.Final, mover); victim == ep {
				if capturedPawn, present := b.At(ep); present {
					u.Captured = lang.Some(capturedPawn)
					u.CapturedAt = ep
					delete(b.Occupied, ep)
				}
			}
		}
	}

	placed := p
	if m.FinalPiece != NoPiece {
		placed.Kind = m.FinalPiece
	}
	b.Occupied[m.Final] = placed

	b.EnPassant = lang.Optional[Hex]{}
	if dj, ok := doubleJump.V(); ok && dj == m.Final {
		b.EnPassant = lang.Some(m.Final)
	}

	b.CurrentPlayer = mover.Opponent()
	return u
}

// Revert undoes a move applied by Apply.
func (b *Board) Revert(m Move, u Undo) {
	placed, ok := b.At(m.Final)
	if !ok {
		panic(fmt.Sprintf("hexboard: Revert: no piece at %v", m.Final))
	}
	placed.Kind = u.MovingKind
	delete(b.Occupied, m.Final)
	b.Occupied[m.Start] = placed

	if captured, ok := u.Captured.V(); ok {
		b.Occupied[u.CapturedAt] = captured
	}

	b.EnPassant = u.PrevEnPassant
	b.CurrentPlayer = b.CurrentPlayer.Opponent()
}
