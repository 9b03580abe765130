// Package hexboard contains the Glinski hexagonal chess board representation,
// coordinate arithmetic, pseudo-legal move generation and the rule engine
// (legality filtering, check/mate detection, apply/revert).
package hexboard

import (
	"fmt"
	"strconv"
	"strings"
)

// rankLetters gives the serialized rank letter for rank index 0..10. 'j' is
// skipped by convention (it is visually close to 'i' on a hex board).
const rankLetters = "abcdefghikl"

// rankLengths is the Glinski board shape: number of files per rank, ranks a..l.
var rankLengths = [11]int8{6, 7, 8, 9, 10, 11, 10, 9, 8, 7, 6}

// NumRanks is the number of ranks on a Glinski board.
const NumRanks = 11

// Hex identifies a single cell on the board by (rank, file). Rank runs
// a..l (0..10, 'j' skipped); file is 0-based within the rank's length.
type Hex struct {
	Rank int8
	File int8
}

// InvalidHex is the sentinel for a hex that failed to parse or fell outside
// the board. It is not the zero value: Hex{} is a1.
var InvalidHex = Hex{Rank: -1, File: -1}

// RankLength returns the number of files in the given rank, or false if the
// rank index is out of range.
func RankLength(rank int8) (int8, bool) {
	if rank < 0 || rank >= NumRanks {
		return 0, false
	}
	return rankLengths[rank], true
}

// IsValid returns true iff the hex lies on the board.
func (h Hex) IsValid() bool {
	length, ok := RankLength(h.Rank)
	return ok && h.File >= 0 && h.File < length
}

// ParseHex parses a hex in letter-digit form, such as "f6" or "f11". Parsing
// is case-insensitive. 'j', out-of-range files and files that do not start
// with a digit 1-9 (such as "a01" or "a+1") are rejected.
func ParseHex(s string) (Hex, bool) {
	if len(s) < 2 {
		return InvalidHex, false
	}
	letter := strings.ToLower(s[:1])
	rank := int8(strings.IndexByte(rankLetters, letter[0]))
	if rank < 0 {
		return InvalidHex, false
	}

	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 || s[1] < '1' || s[1] > '9' {
		return InvalidHex, false
	}

	h := Hex{Rank: rank, File: int8(n - 1)}
	if !h.IsValid() {
		return InvalidHex, false
	}
	return h, true
}

// String renders the hex in lowercase letter-digit form.
func (h Hex) String() string {
	if !h.IsValid() {
		return "??"
	}
	return fmt.Sprintf("%c%d", rankLetters[h.Rank], h.File+1)
}

// Cube is a cube coordinate triple (q, r, s) with the invariant s = 5 + q - r.
// Used for straight-line and diagonal raycasts, which are linear in cube space.
type Cube struct {
	Q, R, S int8
}

// ToCube converts a hex to its cube coordinates. q is the rank; r is derived
// so that the central file of the board sits at r=5.
func ToCube(h Hex) Cube {
	length, _ := RankLength(h.Rank)
	q := h.Rank
	r := h.File + h.Rank + 6 - length - max8(0, h.Rank-5)
	s := 5 + q - r
	return Cube{Q: q, R: r, S: s}
}

// FromCube converts cube coordinates back to a hex. Returns false if the
// coordinates do not correspond to a hex on the board.
func FromCube(q, r int8) (Hex, bool) {
	rank := q
	length, ok := RankLength(rank)
	if !ok {
		return InvalidHex, false
	}
	file := r - rank - 6 + length + max8(0, rank-5)
	h := Hex{Rank: rank, File: file}
	if !h.IsValid() {
		return InvalidHex, false
	}
	return h, true
}

func max8(a, b int8) int8 {
	if a > b {
		return a
	}
	return b
}
