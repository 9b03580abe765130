package search

import (
	"context"

	"github.com/corvid-games/glinski/pkg/eval"
	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Negamax implements naive full-width negamax search with no pruning. Useful
// for comparison and validation against AlphaBeta: both must return the same
// score (and, barring ties, the same move) at any given depth. Pseudo-code:
//
// function negamax(node, depth) is
//
//	if depth = 0 or node is a terminal node then
//	    return the heuristic value of node, from the side to move's perspective
//	value := −∞
//	for each child of node do
//	    value := max(value, −negamax(child, depth − 1))
//	return value
//
// See: https://en.wikipedia.org/wiki/Negamax.
type Negamax struct {
	Eval eval.Evaluator
}

func (n Negamax) Search(ctx context.Context, b *hexboard.Board, depth int) (uint64, eval.Score, []hexboard.Move, error) {
	run := &runNegamax{eval: n.Eval, b: b}
	score, moves := run.search(ctx, depth)
	if contextx.IsCancelled(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runNegamax struct {
	eval  eval.Evaluator
	b     *hexboard.Board
	nodes uint64
}

func (r *runNegamax) search(ctx context.Context, depth int) (eval.Score, []hexboard.Move) {
	if contextx.IsCancelled(ctx) {
		return 0, nil
	}

	r.nodes++

	switch r.b.Result() {
	case hexboard.Checkmate:
		return eval.MinScore, nil
	case hexboard.Stalemate:
		return 0, nil
	}

	if depth == 0 {
		return r.eval.Evaluate(ctx, r.b), nil
	}

	best := eval.MinScore - 1
	var pv []hexboard.Move

	for _, m := range r.b.AllLegalMoves() {
		undo := r.b.Apply(m)
		score, rem := r.search(ctx, depth-1)
		score = -score
		r.b.Revert(m, undo)

		if score > best {
			best = score
			pv = append([]hexboard.Move{m}, rem...)
		}
	}

	return best, pv
}
