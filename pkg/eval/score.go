package eval

import (
	"fmt"

	"github.com/corvid-games/glinski/pkg/hexboard"
)

// Score is a signed position score in pawns. Evaluators and searches report
// it from the side to move's perspective: positive favors the side to move.
// Score must be +/- 1,000,000.
type Score int32

const (
	NegInf         = MinScore - 1
	MinScore Score = -1000000
	MaxScore Score = 1000000
	Inf            = MaxScore + 1
)

func (s Score) String() string {
	return fmt.Sprintf("%d", s)
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black.
func Unit(c hexboard.Color) Score {
	if c == hexboard.White {
		return 1
	}
	return -1
}

// Crop crops a Score into [MinScore;MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
