package hexboard

import "fmt"

// Move represents a candidate or applied move. FinalPiece differs from the
// moving piece's kind only when the move is a promotion.
type Move struct {
	Start      Hex
	Final      Hex
	FinalPiece PieceKind
}

// IsPromotion reports whether this move changes the piece kind, i.e. the
// mover arrives as something other than what it left as.
func (m Move) IsPromotion(moving PieceKind) bool {
	return m.FinalPiece != NoPiece && m.FinalPiece != moving
}

func (m Move) Equals(o Move) bool {
	return m.Start == o.Start && m.Final == o.Final && m.FinalPiece == o.FinalPiece
}

func (m Move) String() string {
	if m.FinalPiece != NoPiece {
		return fmt.Sprintf("%v%v=%v", m.Start, m.Final, m.FinalPiece)
	}
	return fmt.Sprintf("%v%v", m.Start, m.Final)
}
