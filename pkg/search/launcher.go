package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/seekerror/stdlib/pkg/lang"
)

// MaxDepth is the hard ply cap on iterative deepening search.
const MaxDepth = 20

// Options hold dynamic search options for a launched search.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth. Capped at
	// MaxDepth regardless.
	DepthLimit lang.Optional[uint]
	// Deadline, if set, is the absolute wall-clock time after which no new
	// iteration is started and the current one is cancelled.
	Deadline lang.Optional[time.Time]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.Deadline.V(); ok {
		ret = append(ret, fmt.Sprintf("deadline=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher manages iterative deepening searches.
type Launcher interface {
	// Launch a new search from the given position. It expects an exclusive
	// board and returns a PV channel for iteratively deeper searches. If the
	// search is exhausted, the channel is closed. The search can be stopped
	// at any time.
	Launch(ctx context.Context, b *hexboard.Board, opt Options) (Handle, <-chan PV)
}

// Handle is an interface for the caller to manage a launched search.
type Handle interface {
	// Halt halts the search, if running, and returns its best PV so far.
	// Idempotent.
	Halt() PV
}
