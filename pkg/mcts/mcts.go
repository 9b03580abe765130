package mcts

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/corvid-games/glinski/pkg/hexboard"
)

// ErrNoLegalMove indicates ChooseMove ran against a position with no legal
// moves to choose from.
var ErrNoLegalMove = errors.New("no legal move available")

// ChooseMove builds a shared search tree rooted at b and runs tree_search
// from multiple worker goroutines until timeoutMs elapses or ctx is
// cancelled, then returns the root's most-visited move. workers <= 0 uses
// GOMAXPROCS.
func ChooseMove(ctx context.Context, b *hexboard.Board, timeoutMs, workers int) (hexboard.Move, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	root := NewNode()
	start := time.Now()
	deadline := start.Add(time.Duration(timeoutMs) * time.Millisecond)

	// stopped is the worker-pool shutdown flag, the way uci.go's d.closed and
	// d.active atomic.Bool fields gate its own goroutines rather than relying
	// on a channel close per worker.
	var stopped atomic.Bool
	timer := time.AfterFunc(time.Until(deadline), func() { stopped.Store(true) })
	defer timer.Stop()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(seed))
			work := b.Clone()
			for ctx.Err() == nil && !stopped.Load() {
				root.Visit(work, rng)
			}
		}(start.UnixNano() + int64(w))
	}
	wg.Wait()

	m, ok := BestMove(root)
	if !ok {
		return hexboard.Move{}, ErrNoLegalMove
	}
	return m, nil
}
