package search

import (
	"context"

	"github.com/corvid-games/glinski/pkg/eval"
	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// AlphaBeta implements negamax alpha-beta pruning. Pseudo-code:
//
// function negamax(node, depth, α, β) is
//
//	if depth = 0 or node is a terminal node then
//	    return the heuristic value of node, from the side to move's perspective
//	value := −∞
//	for each child of node do
//	    value := max(value, −negamax(child, depth − 1, −β, −α))
//	    α := max(α, value)
//	    if α ≥ β then
//	        break (* β cutoff *)
//	return value
//
// See: https://en.wikipedia.org/wiki/Negamax.
type AlphaBeta struct {
	Eval eval.Evaluator
	// Seed, if set, is searched first at the root. Iterative deepening uses
	// this to seed each depth with the previous depth's best move.
	Seed lang.Optional[hexboard.Move]
}

func (a AlphaBeta) Search(ctx context.Context, b *hexboard.Board, depth int) (uint64, eval.Score, []hexboard.Move, error) {
	run := &runAlphaBeta{eval: a.Eval, b: b, seed: a.Seed}
	score, moves := run.search(ctx, depth, eval.MinScore-1, eval.MaxScore+1)
	if run.halted {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runAlphaBeta struct {
	eval  eval.Evaluator
	b     *hexboard.Board
	nodes uint64

	seed   lang.Optional[hexboard.Move]
	seeded bool

	halted bool // set once a cancellation cut the search short
}

// orderedMoves returns the board's legal moves, with the root seed move (if
// any) moved to the front. The seed only applies to the very first call,
// which is always the root: search descends depth-first, so any recursive
// call happens strictly after the root's own orderedMoves call.
func (r *runAlphaBeta) orderedMoves() []hexboard.Move {
	moves := r.b.AllLegalMoves()
	if r.seeded {
		return moves
	}
	r.seeded = true

	if sm, ok := r.seed.V(); ok {
		for i, m := range moves {
			if m.Equals(sm) {
				moves[0], moves[i] = moves[i], moves[0]
				break
			}
		}
	}
	return moves
}

// search returns the score and principal variation for the side to move.
func (r *runAlphaBeta) search(ctx context.Context, depth int, alpha, beta eval.Score) (eval.Score, []hexboard.Move) {
	// Only cancel below a shallow ply floor: the first couple of plies must
	// always finish so a caller is never left without any move at all.
	if depth > 2 && contextx.IsCancelled(ctx) {
		r.halted = true
		return 0, nil
	}

	r.nodes++

	switch r.b.Result() {
	case hexboard.Checkmate:
		return eval.MinScore, nil // side to move has no moves and is attacked: worst score for them
	case hexboard.Stalemate:
		return 0, nil
	}

	if depth == 0 {
		return r.eval.Evaluate(ctx, r.b), nil
	}

	best := eval.MinScore - 1
	var pv []hexboard.Move

	for _, m := range r.orderedMoves() {
		undo := r.b.Apply(m)
		score, rem := r.search(ctx, depth-1, -beta, -alpha)
		score = -score
		r.b.Revert(m, undo)

		if score > best {
			best = score
			pv = append([]hexboard.Move{m}, rem...)
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break // beta cutoff
		}
	}

	return best, pv
}
