package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/seekerror/logw"

	"github.com/corvid-games/glinski/pkg/hexboard"
)

// Registry is the concurrent game/player matchmaker: three maps (games,
// player-to-session, a joinable FIFO) behind a single writer-preferring lock,
// grounded on the original's SessionHandler (session_handling.rs). All
// mutating operations take the write lock; board-only reads take the read
// lock, matching spec.md §5's lock-level table.
type Registry struct {
	mu sync.RWMutex

	games           map[SessionID]*Game
	playerToSession map[PlayerID]SessionID
	joinable        []SessionID // FIFO: push_back at the tail, pop from the head
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		games:           map[SessionID]*Game{},
		playerToSession: map[PlayerID]SessionID{},
	}
}

// CreateGame creates a new game for player. In single-player mode both color
// slots are bound to player (PlayerColor Both); in multiplayer, player takes
// one pseudo-randomly assigned slot and the session is pushed onto the
// joinable queue. Any prior session the player held is destroyed first.
func (r *Registry) CreateGame(ctx context.Context, player PlayerID, multiplayer bool, tx Transmitter) (SessionID, PlayerColor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.createGameLocked(ctx, player, multiplayer, tx)
}

// createGameLocked is CreateGame's body, factored out so JoinAnyGame can
// fall back to it (and learn the assigned color) while already holding the
// write lock. Caller must hold the write lock.
func (r *Registry) createGameLocked(ctx context.Context, player PlayerID, multiplayer bool, tx Transmitter) (SessionID, PlayerColor) {
	r.destroyLocked(ctx, player)

	color, game := newGame(player, tx)
	if !multiplayer {
		color = Both
		game.Players.TryAddPlayer(player)
	}

	id := uuid.New()
	r.games[id] = game
	r.addPlayerToGameLocked(ctx, player, id)

	if multiplayer {
		r.joinable = append(r.joinable, id)
	}

	logw.Infof(ctx, "session %v created by %v (multiplayer=%v, color=%v)", id, player, multiplayer, color)
	return id, color
}

// JoinGame seats player into an existing session, if a color slot is free.
// Any prior session player held is destroyed first. On success the session
// is removed from the joinable queue and the transmitter is recorded.
func (r *Registry) JoinGame(ctx context.Context, player PlayerID, session SessionID, tx Transmitter) (PlayerColor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.joinGameLocked(ctx, player, session, tx)
}

// joinGameLocked is JoinGame's body. Caller must hold the write lock.
func (r *Registry) joinGameLocked(ctx context.Context, player PlayerID, session SessionID, tx Transmitter) (PlayerColor, bool) {
	r.destroyLocked(ctx, player)

	game, ok := r.games[session]
	if !ok {
		return 0, false
	}
	color, ok := game.Players.TryAddPlayer(player)
	if !ok {
		return 0, false
	}

	game.Channels[player] = tx
	r.addPlayerToGameLocked(ctx, player, session)
	r.removeJoinableLocked(session)

	logw.Infof(ctx, "player %v joined session %v as %v", player, session, color)
	return color, true
}

// JoinAnyGame pops sessions off the joinable queue until one is actually
// joined, or creates a fresh multiplayer session if none remain.
func (r *Registry) JoinAnyGame(ctx context.Context, player PlayerID, tx Transmitter) (SessionID, PlayerColor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.joinable) > 0 {
		id := r.joinable[0]
		r.joinable = r.joinable[1:]

		if color, ok := r.joinGameLocked(ctx, player, id, tx); ok {
			return id, color
		}
	}

	return r.createGameLocked(ctx, player, true, tx)
}

// Reconnect replaces the stored transmitter for an already-seated player and
// returns their session, color and the current board. ok is false if the
// player has no active session.
func (r *Registry) Reconnect(ctx context.Context, player PlayerID, tx Transmitter) (SessionID, PlayerColor, *hexboard.Board, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.playerToSession[player]
	if !ok {
		return SessionID{}, 0, nil, false
	}
	game, ok := r.games[id]
	if !ok {
		return SessionID{}, 0, nil, false
	}
	color, ok := game.Players.CheckForPlayer(player)
	if !ok {
		return SessionID{}, 0, nil, false
	}
	game.Channels[player] = tx

	logw.Infof(ctx, "player %v reconnected to session %v, color=%v", player, id, color)
	return id, color, game.Board, true
}

// Destroy broadcasts a resignation notice on every channel of session, then
// removes it from the games map and the joinable queue.
func (r *Registry) Destroy(ctx context.Context, player PlayerID, session SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.destroySessionLocked(ctx, session)
}

// DeletePlayer destroys the player's session, if any.
func (r *Registry) DeletePlayer(ctx context.Context, player PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.destroyLocked(ctx, player)
}

// destroyLocked destroys whatever session player currently belongs to, a
// no-op if they belong to none. Caller must hold the write lock.
func (r *Registry) destroyLocked(ctx context.Context, player PlayerID) {
	id, ok := r.playerToSession[player]
	if !ok {
		return
	}
	r.destroySessionLocked(ctx, id)
}

func (r *Registry) destroySessionLocked(ctx context.Context, session SessionID) {
	if game, ok := r.games[session]; ok {
		sendResignation(game.Channels)
		delete(r.games, session)
		logw.Infof(ctx, "session %v destroyed", session)
	}
	r.removeJoinableLocked(session)
}

// addPlayerToGameLocked records player's session, destroying any other
// session they were previously tracked under (a player can only ever be
// tracked under one session at a time).
func (r *Registry) addPlayerToGameLocked(ctx context.Context, player PlayerID, session SessionID) {
	if prev, ok := r.playerToSession[player]; ok && prev != session {
		r.destroySessionLocked(ctx, prev)
	}
	r.playerToSession[player] = session
}

func (r *Registry) removeJoinableLocked(session SessionID) {
	out := r.joinable[:0]
	for _, id := range r.joinable {
		if id != session {
			out = append(out, id)
		}
	}
	r.joinable = out
}

func (r *Registry) gameForPlayerLocked(player PlayerID) (*Game, bool) {
	id, ok := r.playerToSession[player]
	if !ok {
		return nil, false
	}
	game, ok := r.games[id]
	return game, ok
}

// BoardForPlayer returns the board of player's current game, read-locked
// (as is GameStarted), used for GetBoard per spec.md §5.
func (r *Registry) BoardForPlayer(player PlayerID) (*hexboard.Board, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.gameForPlayerLocked(player)
	if !ok {
		return nil, false
	}
	return game.Board, true
}

// GameStarted reports whether both color slots of player's current game are
// filled.
func (r *Registry) GameStarted(player PlayerID) (bool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.gameForPlayerLocked(player)
	if !ok {
		return false, false
	}
	_, hasBlack := game.Players.Black.V()
	_, hasWhite := game.Players.White.V()
	return hasBlack && hasWhite, true
}

// WithPlayerSession runs fn with exclusive access to player's current Game,
// under the registry's single write lock - the dispatcher's single critical
// section for GetMoves/RegisterMove, so a move's legality check, application
// and broadcast all happen atomically with respect to other connections,
// matching spec.md §5's ordering guarantee.
func (r *Registry) WithPlayerSession(player PlayerID, fn func(*Game)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	game, ok := r.gameForPlayerLocked(player)
	if !ok {
		return false
	}
	fn(game)
	return true
}

// sendResignation notifies every connected player of a session that it has
// ended by resignation. The dispatcher owns normal GameEnded encoding; this
// is the registry's own minimal notice for the teardown path, where no
// dispatcher call is in progress to construct a full message.
func sendResignation(channels map[PlayerID]Transmitter) {
	const resignationNotice = `{"op":"GameEnded","game_outcome":"Lost","reason":"Resignation"}`
	for _, tx := range channels {
		trySend(tx, []byte(resignationNotice))
	}
}

// trySend enqueues msg without blocking or panicking if the receiver has
// dropped its connection - a closed/full channel on broadcast is ignored per
// spec.md §7 ("dropped transmitters on broadcast are ignored").
func trySend(tx Transmitter, msg []byte) {
	defer func() { _ = recover() }()
	select {
	case tx <- msg:
	default:
	}
}

// Send enqueues an already-encoded wire message on tx without blocking, and
// without panicking if the peer's connection has already been torn down.
// Exported so the protocol dispatcher can reuse the registry's delivery
// semantics for ordinary replies and broadcasts.
func Send(tx Transmitter, msg []byte) {
	trySend(tx, msg)
}
