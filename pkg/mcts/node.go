// Package mcts implements a shared-tree Monte Carlo Tree Search over the
// hex-chess rule engine: concurrent worker goroutines drill down from a
// single root, expanding nodes and running random rollouts, with per-node
// locking rather than a global tree lock.
package mcts

import (
	"math"
	"math/rand"
	"sync"

	"github.com/corvid-games/glinski/pkg/hexboard"
)

// Node is a shared search tree node. Nodes are shared by pointer identity:
// many worker goroutines may hold a reference to the same node concurrently.
// children == nil means unexpanded; children != nil but empty means terminal.
type Node struct {
	mu sync.RWMutex

	wins, losses int
	playouts     int
	children     []Child
}

// Child pairs a move with the node reached by playing it.
type Child struct {
	Move hexboard.Move
	Node *Node
}

// NewNode returns a fresh, unexpanded node.
func NewNode() *Node {
	return &Node{}
}

// Playouts returns the node's current visit count.
func (n *Node) Playouts() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.playouts
}

// Children returns a snapshot of the node's child list, or nil if the node
// is unexpanded.
func (n *Node) Children() []Child {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]Child(nil), n.children...)
}

func (n *Node) backprop(score int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if score > 0 {
		n.wins += score
	} else {
		n.losses -= score
	}
	n.playouts++
}

// Visit descends one path from n to a leaf, expanding and rolling out as
// needed, and backpropagates the result. b must be a board exclusively
// owned by the calling goroutine for the duration of the call; it is
// restored to its original state before Visit returns. Returns false if the
// rollout ran out of plies without reaching a terminal state: per spec, such
// a sample is discarded without updating any counters on the path.
func (n *Node) Visit(b *hexboard.Board, rng *rand.Rand) (score int, ok bool) {
	n.mu.Lock()
	fresh := n.children == nil
	if fresh {
		moves := b.AllLegalMoves()
		children := make([]Child, len(moves))
		for i, m := range moves {
			children[i] = Child{Move: m, Node: NewNode()}
		}
		rng.Shuffle(len(children), func(i, j int) { children[i], children[j] = children[j], children[i] })
		n.children = children
	}
	children := n.children
	n.mu.Unlock()

	if len(children) == 0 {
		// terminal: nothing to expand; score the final position itself.
		score, ok = rollout(rng, b.Clone())
		if ok {
			n.backprop(score)
		}
		return score, ok
	}

	// First-visit rollout: the first child (in shuffled order) that has not
	// yet completed a rollout is rolled out directly instead of selected.
	// Freshly materialized children all start at playouts == 0.
	for _, chosen := range children {
		if chosen.Node.Playouts() != 0 {
			continue
		}
		undo := b.Apply(chosen.Move)
		clone := b.Clone()
		score, ok = rollout(rng, clone)
		b.Revert(chosen.Move, undo)

		if ok {
			chosen.Node.backprop(score)
			n.backprop(score)
		}
		return score, ok
	}

	chosen := selectByUCB1(children, rng)
	undo := b.Apply(chosen.Move)
	score, ok = chosen.Node.Visit(b, rng)
	b.Revert(chosen.Move, undo)

	if ok {
		n.backprop(score)
	}
	return score, ok
}

// selectByUCB1 samples a child proportionally to its UCB1 score (weighted,
// not argmax, to broaden exploration under concurrent descent). A child
// that has never completed a rollout is scored with playouts=1 (in the
// logarithm and both denominators), to avoid a division or logarithm at
// zero; its own stored playouts counter is left at 0 so a later call can
// still recognize it as unvisited.
func selectByUCB1(children []Child, rng *rand.Rand) Child {
	weights := make([]float64, len(children))
	var total float64

	for i, c := range children {
		c.Node.mu.RLock()
		wins, playouts := c.Node.wins, c.Node.playouts
		c.Node.mu.RUnlock()

		n := playouts
		if n < 1 {
			n = 1
		}
		score := float64(wins)/float64(n) + 1.414*math.Sqrt(math.Log2(float64(n))/float64(n))
		weights[i] = score
		total += score
	}

	if total <= 0 {
		return children[rng.Intn(len(children))]
	}

	r := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if r <= cum {
			return children[i]
		}
	}
	return children[len(children)-1]
}

// BestMove returns the root's most-visited child move: visit count, not win
// rate. Returns false only if the root is terminal (no legal moves).
func BestMove(root *Node) (hexboard.Move, bool) {
	children := root.Children()
	if len(children) == 0 {
		return hexboard.Move{}, false
	}

	best := children[0]
	bestPlayouts := best.Node.Playouts()
	for _, c := range children[1:] {
		if p := c.Node.Playouts(); p > bestPlayouts {
			best, bestPlayouts = c, p
		}
	}
	return best.Move, true
}
