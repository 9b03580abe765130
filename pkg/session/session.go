// Package session implements the concurrent game/player registry: matching
// players into games, tracking per-player outbound channels and coordinating
// reconnection, grounded on the original server's session_handling module
// and adapted to the teacher's mutex-guarded-struct idiom.
package session

import (
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/corvid-games/glinski/pkg/hexboard/startpos"
)

// PlayerID and SessionID are both v4 UUIDs per spec.md §6.
type PlayerID = uuid.UUID
type SessionID = uuid.UUID

// PlayerColor is the observable color (or colors) a player occupies in a
// game. Both means the player holds every seat, i.e. single-player/self-play.
type PlayerColor uint8

const (
	Black PlayerColor = iota
	White
	Both
)

func (c PlayerColor) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

func fromBoardColor(c hexboard.Color) PlayerColor {
	if c == hexboard.White {
		return White
	}
	return Black
}

// Transmitter is an outbound channel to a single connected player. It carries
// already-encoded wire messages - encoding itself is the dispatcher's job, not
// the registry's - mirroring the original's treatment of the transmitter as
// an opaque transport handle (warp::ws::Message) rather than a typed message.
type Transmitter chan<- []byte

// PlayersPerGame tracks which player, if any, occupies each color slot. An
// unseated slot is the zero value of lang.Optional, the way a not-yet-set
// search deadline or depth limit is represented elsewhere in this module
// (pkg/search's Options).
type PlayersPerGame struct {
	Black, White lang.Optional[PlayerID]
}

// NewPlayersPerGame seats the first player into one of the two color slots,
// chosen pseudo-randomly from the low bits of the player's id: the low bit of
// the UUID's first 32-bit field, exactly as the original's
// `first_player.as_fields().0 % 2`.
func NewPlayersPerGame(first PlayerID) (PlayerColor, PlayersPerGame) {
	if binary.BigEndian.Uint32(first[0:4])%2 == 0 {
		return Black, PlayersPerGame{Black: lang.Some(first)}
	}
	return White, PlayersPerGame{White: lang.Some(first)}
}

// TryAddPlayer seats a second player into whichever slot is open. Returns
// (color, false) if both slots are already occupied - the original's "silent
// failure" rather than an error, since a full game is an expected race.
func (p *PlayersPerGame) TryAddPlayer(second PlayerID) (PlayerColor, bool) {
	if _, ok := p.Black.V(); !ok {
		p.Black = lang.Some(second)
		return Black, true
	}
	if _, ok := p.White.V(); !ok {
		p.White = lang.Some(second)
		return White, true
	}
	return 0, false
}

// CheckColor reports whether player holds the seat for the side to move.
func (p *PlayersPerGame) CheckColor(player PlayerID, toMove hexboard.Color) bool {
	switch fromBoardColor(toMove) {
	case Black:
		seat, ok := p.Black.V()
		return ok && seat == player
	case White:
		seat, ok := p.White.V()
		return ok && seat == player
	default:
		return false
	}
}

// CheckForPlayer reports the color(s) player occupies in this game, if any.
func (p *PlayersPerGame) CheckForPlayer(player PlayerID) (PlayerColor, bool) {
	black, hasBlack := p.Black.V()
	white, hasWhite := p.White.V()
	isBlack := hasBlack && black == player
	isWhite := hasWhite && white == player
	switch {
	case isBlack && isWhite:
		return Both, true
	case isBlack:
		return Black, true
	case isWhite:
		return White, true
	default:
		return 0, false
	}
}

// Game is one in-progress match: its board, its seated players and the
// transmitters used to broadcast state to them.
type Game struct {
	Board    *hexboard.Board
	Players  PlayersPerGame
	Channels map[PlayerID]Transmitter
}

func newGame(first PlayerID, tx Transmitter) (PlayerColor, *Game) {
	color, players := NewPlayersPerGame(first)
	return color, &Game{
		Board:    hexboard.NewBoardFromPlacements(startpos.MustDefault(), hexboard.White),
		Players:  players,
		Channels: map[PlayerID]Transmitter{first: tx},
	}
}
