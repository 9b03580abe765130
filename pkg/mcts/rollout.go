package mcts

import (
	"math/rand"

	"github.com/corvid-games/glinski/pkg/hexboard"
)

// maxRolloutPlies caps a single rollout. Games that run this long without a
// decision are treated as noise and discarded rather than scored.
const maxRolloutPlies = 9999

// rollout plays uniformly random legal moves on b (the caller's private
// clone) until a terminal state or maxRolloutPlies, whichever comes first.
// Checkmate scores 4, stalemate scores 3 (a draw is worth 3/4 of a win),
// signed to White's absolute perspective: positive if White delivered the
// terminal move, negative if Black did. Returns ok=false if no terminal
// state was reached within the ply cap.
func rollout(rng *rand.Rand, b *hexboard.Board) (score int, ok bool) {
	for ply := 0; ply < maxRolloutPlies; ply++ {
		switch b.Result() {
		case hexboard.Checkmate:
			return signedTerminalScore(4, b), true
		case hexboard.Stalemate:
			return signedTerminalScore(3, b), true
		}

		moves := b.AllLegalMoves()
		m := moves[rng.Intn(len(moves))]
		b.Apply(m)
	}
	return 0, false
}

// signedTerminalScore signs raw (always the positive magnitude for a
// decisive rollout outcome) to White's perspective: the mover is whoever
// played the last move, i.e. the opponent of the side now to move.
func signedTerminalScore(raw int, b *hexboard.Board) int {
	mover := b.CurrentPlayer.Opponent()
	return raw * mover.Unit()
}
