// Package search implements move search for hex-chess: a plain negamax
// alpha-beta searcher driven by an iterative-deepening harness.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corvid-games/glinski/pkg/eval"
	"github.com/corvid-games/glinski/pkg/hexboard"
)

// ErrHalted is an error indicating that the search was halted before a ply
// completed.
var ErrHalted = errors.New("search halted")

// ErrNoLegalMove indicates a search ran against a position with no legal
// move to choose from.
var ErrNoLegalMove = errors.New("no legal move available")

// Search is a fixed-depth search algorithm.
type Search interface {
	// Search searches the given board to the given ply depth and returns the
	// node count, the score and principal variation from the side to move's
	// perspective. Returns ErrHalted if cancelled before depth 0 completed.
	Search(ctx context.Context, b *hexboard.Board, depth int) (nodes uint64, score eval.Score, moves []hexboard.Move, err error)
}

// PV represents the principal variation for some search depth.
type PV struct {
	Depth int
	Moves []hexboard.Move
	Score eval.Score
	Nodes uint64
	Time  time.Duration
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, p.Moves)
}

// Best returns the first move of the principal variation, if any.
func (p PV) Best() (hexboard.Move, bool) {
	if len(p.Moves) == 0 {
		return hexboard.Move{}, false
	}
	return p.Moves[0], true
}
