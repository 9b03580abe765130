package search

import (
	"context"
	"sync"
	"time"

	"github.com/corvid-games/glinski/pkg/eval"
	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative is a search harness for iterative deepening search. Each
// iteration reruns AlphaBeta one ply deeper, seeded with the previous
// iteration's best move so it is searched first.
type Iterative struct {
	Eval eval.Evaluator
}

func (it *Iterative) Launch(ctx context.Context, b *hexboard.Board, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, it.Eval, b, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, ev eval.Evaluator, b *hexboard.Board, opt Options, out chan PV) {
	defer h.init.Close()
	defer close(out)

	if d, ok := opt.Deadline.V(); ok {
		if wait := time.Until(d); wait <= 0 {
			h.quit.Close()
		} else {
			time.AfterFunc(wait, func() { h.quit.Close() })
		}
	}

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	limit := MaxDepth
	if v, ok := opt.DepthLimit.V(); ok && int(v) < limit {
		limit = int(v)
	}

	var seed lang.Optional[hexboard.Move]
	for depth := 1; depth <= limit && !h.quit.IsClosed(); depth++ {
		start := time.Now()

		alg := AlphaBeta{Eval: ev, Seed: seed}
		nodes, score, moves, err := alg.Search(wctx, b, depth)
		if err != nil {
			if err == ErrHalted {
				return // Halt was called, or the deadline passed mid-ply.
			}
			logw.Errorf(ctx, "search failed at depth=%v: %v", depth, err)
			return
		}

		pv := PV{Depth: depth, Moves: moves, Score: score, Nodes: nodes, Time: time.Since(start)}
		logw.Debugf(ctx, "searched %v", pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if m, ok := pv.Best(); ok {
			seed = lang.Some(m)
		}
	}
}

func (h *handle) Halt() PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}

// ChooseMove runs iterative deepening alpha-beta against b for up to
// timeoutMs milliseconds (or until MaxDepth is reached) and returns the best
// move of the deepest completed iteration. Blocking: the caller should pass a
// context tied to an overall session lifetime, not a request lifetime.
func ChooseMove(ctx context.Context, b *hexboard.Board, ev eval.Evaluator, timeoutMs int) (hexboard.Move, error) {
	it := &Iterative{Eval: ev}
	deadline := time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)

	_, out := it.Launch(ctx, b, Options{Deadline: lang.Some(deadline)})

	var last PV
	for pv := range out {
		last = pv
	}

	if m, ok := last.Best(); ok {
		return m, nil
	}
	return hexboard.Move{}, ErrNoLegalMove
}
