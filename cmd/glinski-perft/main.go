// glinski-perft is a movegen debugging tool for the hexagonal board. See:
// https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/seekerror/logw"

	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/corvid-games/glinski/pkg/hexboard/startpos"
)

var (
	depth  = flag.Int("depth", 4, "Search depth")
	divide = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	placements, err := startpos.Default()
	if err != nil {
		logw.Exitf(ctx, "Invalid starting position: %v", err)
	}
	b := hexboard.NewBoardFromPlacements(placements, hexboard.White)

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := search(b, i, *divide && i == *depth)
		duration := time.Since(start)

		println(fmt.Sprintf("perft,%v,%v,%v", i, nodes, duration.Microseconds()))
	}
}

func search(b *hexboard.Board, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range b.AllLegalMoves() {
		u := b.Apply(m)
		count := search(b, depth-1, false)
		b.Revert(m, u)

		if d {
			println(fmt.Sprintf("%v: %v", m, count))
		}
		nodes += count
	}
	return nodes
}
