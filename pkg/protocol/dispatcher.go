package protocol

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/seekerror/logw"

	"github.com/corvid-games/glinski/pkg/hexboard"
	"github.com/corvid-games/glinski/pkg/session"
)

// Dispatcher routes decoded wire messages into the session registry and rule
// engine, per spec.md §4.G. It holds no per-connection state of its own - all
// state lives in the Registry - so a single Dispatcher safely serves every
// connection.
type Dispatcher struct {
	Registry *session.Registry
}

// NewDispatcher returns a dispatcher backed by reg.
func NewDispatcher(reg *session.Registry) *Dispatcher {
	return &Dispatcher{Registry: reg}
}

// Dispatch decodes one incoming wire message and routes it, replying on tx
// and, where the session has other occupants, broadcasting to their
// transmitters too. Per spec.md §7: malformed input is logged and dropped;
// rule rejections re-send BoardState; session rejections are silent no-ops.
func (d *Dispatcher) Dispatch(ctx context.Context, data []byte, tx session.Transmitter) {
	op, msg, err := DecodeIncoming(data)
	if err != nil {
		logw.Warningf(ctx, "dispatcher: dropping malformed message (op=%v): %v", op, err)
		return
	}

	logw.Debugf(ctx, "dispatcher: routing %v", op)

	switch m := msg.(type) {
	case *GetBoard:
		d.handleGetBoard(ctx, m, tx)
	case *GetMoves:
		d.handleGetMoves(ctx, m, tx)
	case *GetGameState:
		d.handleGetGameState(ctx, m, tx)
	case *RegisterMove:
		d.handleRegisterMove(ctx, m, tx)
	case *CreateGame:
		d.handleCreateGame(ctx, m, tx)
	case *JoinGame:
		d.handleJoinGame(ctx, m, tx)
	case *JoinAnyGame:
		d.handleJoinAnyGame(ctx, m, tx)
	case *TryReconnect:
		d.handleTryReconnect(ctx, m, tx)
	}
}

// parseUserID validates a wire user_id. A malformed UUID is input validation
// failure per §7: log and drop, emit nothing.
func parseUserID(ctx context.Context, raw string) (session.PlayerID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		logw.Warningf(ctx, "dispatcher: invalid user_id %q: %v", raw, err)
		return session.PlayerID{}, false
	}
	return id, true
}

func send(tx session.Transmitter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		// A marshal failure here means an outgoing struct is malformed - a
		// build defect, not a runtime condition worth surfacing to the peer.
		return
	}
	session.Send(tx, data)
}

func broadcast(g *session.Game, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	for _, peer := range g.Channels {
		session.Send(peer, data)
	}
}

func (d *Dispatcher) handleGetBoard(ctx context.Context, m *GetBoard, tx session.Transmitter) {
	player, ok := parseUserID(ctx, m.UserID)
	if !ok {
		return
	}
	board, ok := d.Registry.BoardForPlayer(player)
	if !ok {
		logw.Warningf(ctx, "dispatcher: GetBoard: no session for %v", player)
		return
	}
	send(tx, NewBoardState(board))
}

func (d *Dispatcher) handleGetMoves(ctx context.Context, m *GetMoves, tx session.Transmitter) {
	player, ok := parseUserID(ctx, m.UserID)
	if !ok {
		return
	}
	hex, ok := hexboard.ParseHex(m.Hexagon)
	if !ok {
		logw.Warningf(ctx, "dispatcher: GetMoves: invalid hexagon %q", m.Hexagon)
		return
	}

	d.Registry.WithPlayerSession(player, func(g *session.Game) {
		if _, present := g.Board.At(hex); !present {
			return
		}
		pm := g.Board.LegalMoves(hex)
		send(tx, NewValidMoves(hexStrings(pm.Dests), hexStrings(pm.Promotions)))
	})
}

func (d *Dispatcher) handleGetGameState(ctx context.Context, m *GetGameState, tx session.Transmitter) {
	player, ok := parseUserID(ctx, m.UserID)
	if !ok {
		return
	}
	started, ok := d.Registry.GameStarted(player)
	if !ok {
		logw.Warningf(ctx, "dispatcher: GetGameState: no session for %v", player)
		return
	}
	send(tx, NewGameStatus(started))
}

func (d *Dispatcher) handleRegisterMove(ctx context.Context, m *RegisterMove, tx session.Transmitter) {
	player, ok := parseUserID(ctx, m.UserID)
	if !ok {
		return
	}
	start, ok := hexboard.ParseHex(m.StartHexagon)
	if !ok {
		logw.Warningf(ctx, "dispatcher: RegisterMove: invalid start_hexagon %q", m.StartHexagon)
		return
	}
	final, ok := hexboard.ParseHex(m.FinalHexagon)
	if !ok {
		logw.Warningf(ctx, "dispatcher: RegisterMove: invalid final_hexagon %q", m.FinalHexagon)
		return
	}
	promotion := hexboard.NoPiece
	if m.PromotionChoice != nil {
		k, ok := parsePieceKind(*m.PromotionChoice)
		if !ok {
			logw.Warningf(ctx, "dispatcher: RegisterMove: invalid promotion_choice %q", *m.PromotionChoice)
			return
		}
		promotion = k
	}

	found := d.Registry.WithPlayerSession(player, func(g *session.Game) {
		d.registerMoveLocked(ctx, g, player, start, final, promotion, tx)
	})
	if !found {
		logw.Warningf(ctx, "dispatcher: RegisterMove: no session for %v", player)
	}
}

// registerMoveLocked applies the move or rejects it, all within the
// registry's single write-locked critical section (spec.md §5's ordering
// guarantee), and runs the mate/stalemate check RegisterMove is the only
// message that triggers (spec.md §4.G).
func (d *Dispatcher) registerMoveLocked(ctx context.Context, g *session.Game, player session.PlayerID, start, final hexboard.Hex, promotion hexboard.PieceKind, tx session.Transmitter) {
	if !g.Players.CheckColor(player, g.Board.CurrentPlayer) {
		send(tx, NewBoardState(g.Board))
		return
	}

	piece, present := g.Board.At(start)
	if !present {
		send(tx, NewBoardState(g.Board))
		return
	}

	finalPiece := promotion
	if finalPiece == hexboard.NoPiece {
		finalPiece = piece.Kind
	}

	mv := hexboard.Move{Start: start, Final: final, FinalPiece: finalPiece}
	if _, err := g.Board.RegisterMove(mv); err != nil {
		logw.Warningf(ctx, "dispatcher: RegisterMove rejected: %v", err)
		send(tx, NewBoardState(g.Board))
		return
	}

	switch g.Board.Result() {
	case hexboard.Checkmate:
		send(tx, NewGameEnded(Won, ReasonCheckmate))
		sendToOthers(g, player, NewGameEnded(Lost, ReasonCheckmate))
	case hexboard.Stalemate:
		broadcast(g, NewGameEnded(Drew, ReasonStalemate))
	}

	broadcast(g, NewBoardState(g.Board))
}

func sendToOthers(g *session.Game, exclude session.PlayerID, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	for peer, tx := range g.Channels {
		if peer == exclude {
			continue
		}
		session.Send(tx, data)
	}
}

func (d *Dispatcher) handleCreateGame(ctx context.Context, m *CreateGame, tx session.Transmitter) {
	player, ok := parseUserID(ctx, m.UserID)
	if !ok {
		return
	}
	id, color := d.Registry.CreateGame(ctx, player, m.IsMultiplayer, tx)
	board, _ := d.Registry.BoardForPlayer(player)

	send(tx, JoinGameSuccess{Op: OpJoinGameSuccess, Color: colorWire(color), Session: id.String()})
	send(tx, NewBoardState(board))
}

func (d *Dispatcher) handleJoinGame(ctx context.Context, m *JoinGame, tx session.Transmitter) {
	player, ok := parseUserID(ctx, m.UserID)
	if !ok {
		return
	}
	id, err := uuid.Parse(m.GameID)
	if err != nil {
		logw.Warningf(ctx, "dispatcher: JoinGame: invalid game_id %q: %v", m.GameID, err)
		return
	}

	color, ok := d.Registry.JoinGame(ctx, player, id, tx)
	if !ok {
		// Session rejection: full or nonexistent game. Silent no-op per §7.
		return
	}
	board, _ := d.Registry.BoardForPlayer(player)

	send(tx, JoinGameSuccess{Op: OpJoinGameSuccess, Color: colorWire(color), Session: id.String()})
	send(tx, NewBoardState(board))

	d.Registry.WithPlayerSession(player, func(g *session.Game) {
		sendToOthers(g, player, OpponentJoined{Op: OpOpponentJoined, Session: id.String()})
	})
}

func (d *Dispatcher) handleJoinAnyGame(ctx context.Context, m *JoinAnyGame, tx session.Transmitter) {
	player, ok := parseUserID(ctx, m.UserID)
	if !ok {
		return
	}
	id, color := d.Registry.JoinAnyGame(ctx, player, tx)
	board, _ := d.Registry.BoardForPlayer(player)

	send(tx, JoinGameSuccess{Op: OpJoinGameSuccess, Color: colorWire(color), Session: id.String()})
	send(tx, NewBoardState(board))

	d.Registry.WithPlayerSession(player, func(g *session.Game) {
		sendToOthers(g, player, OpponentJoined{Op: OpOpponentJoined, Session: id.String()})
	})
}

func (d *Dispatcher) handleTryReconnect(ctx context.Context, m *TryReconnect, tx session.Transmitter) {
	player, ok := parseUserID(ctx, m.UserID)
	if !ok {
		return
	}
	id, color, board, ok := d.Registry.Reconnect(ctx, player, tx)
	if !ok {
		// No existing session to reconnect to: silent no-op per §7.
		return
	}

	send(tx, JoinGameSuccess{Op: OpJoinGameSuccess, Color: colorWire(color), Session: id.String()})
	send(tx, NewBoardState(board))
}
