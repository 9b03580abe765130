// Package protocol defines the wire message shapes of spec.md §6 and the
// dispatcher that routes them into the session registry and rule engine
// (§4.G). Wire framing (HTTP/WebSocket, TLS) is out of scope per spec.md §1;
// this package only defines and moves the JSON envelopes that cross it,
// grounded on the original server's websocket_messaging module.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Op is the wire envelope's discriminant field, shared by both directions.
type Op string

const (
	OpGetBoard     Op = "GetBoard"
	OpGetMoves     Op = "GetMoves"
	OpGetGameState Op = "GetGameState"
	OpRegisterMove Op = "RegisterMove"
	OpCreateGame   Op = "CreateGame"
	OpJoinGame     Op = "JoinGame"
	OpJoinAnyGame  Op = "JoinAnyGame"
	OpTryReconnect Op = "TryReconnect"

	OpValidMoves      Op = "ValidMoves"
	OpBoardState      Op = "BoardState"
	OpJoinGameSuccess Op = "JoinGameSuccess"
	OpOpponentJoined  Op = "OpponentJoined"
	OpJoinGameFailure Op = "JoinGameFailure"
	OpGameEnded       Op = "GameEnded"
	OpGameStatus      Op = "GameStatus"
)

type envelope struct {
	Op Op `json:"op"`
}

// Incoming wire requests, one struct per spec.md §6 "Incoming" entry.

type GetBoard struct {
	UserID string `json:"user_id"`
}

type GetMoves struct {
	UserID  string `json:"user_id"`
	Hexagon string `json:"hexagon"`
}

type GetGameState struct {
	UserID string `json:"user_id"`
}

type RegisterMove struct {
	UserID          string  `json:"user_id"`
	StartHexagon    string  `json:"start_hexagon"`
	FinalHexagon    string  `json:"final_hexagon"`
	PromotionChoice *string `json:"promotion_choice,omitempty"`
}

type CreateGame struct {
	UserID        string `json:"user_id"`
	IsMultiplayer bool   `json:"is_multiplayer"`
}

type JoinGame struct {
	UserID string `json:"user_id"`
	GameID string `json:"game_id"`
}

type JoinAnyGame struct {
	UserID string `json:"user_id"`
}

type TryReconnect struct {
	UserID string `json:"user_id"`
}

// DecodeIncoming reads the envelope's op field and unmarshals data into the
// matching concrete incoming type. An unrecognized op or malformed envelope
// is an input-validation failure: the caller should log and drop it (§7),
// never treat it as a rule or session rejection.
func DecodeIncoming(data []byte) (Op, any, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", nil, fmt.Errorf("protocol: malformed envelope: %w", err)
	}

	var v any
	switch env.Op {
	case OpGetBoard:
		v = &GetBoard{}
	case OpGetMoves:
		v = &GetMoves{}
	case OpGetGameState:
		v = &GetGameState{}
	case OpRegisterMove:
		v = &RegisterMove{}
	case OpCreateGame:
		v = &CreateGame{}
	case OpJoinGame:
		v = &JoinGame{}
	case OpJoinAnyGame:
		v = &JoinAnyGame{}
	case OpTryReconnect:
		v = &TryReconnect{}
	default:
		return env.Op, nil, fmt.Errorf("protocol: unknown op %q", env.Op)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return env.Op, nil, fmt.Errorf("protocol: malformed %v payload: %w", env.Op, err)
	}
	return env.Op, v, nil
}

// Outgoing wire replies, one struct per spec.md §6 "Outgoing" entry. Each
// carries its own Op so json.Marshal alone produces a correctly tagged
// envelope - no custom MarshalJSON needed.

type ValidMoves struct {
	Op             Op       `json:"op"`
	Moves          []string `json:"moves"`
	PromotionMoves []string `json:"promotion_moves"`
}

func NewValidMoves(moves, promotionMoves []string) ValidMoves {
	return ValidMoves{Op: OpValidMoves, Moves: moves, PromotionMoves: promotionMoves}
}

// PieceView is the wire form of a hexboard.Piece.
type PieceView struct {
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

type BoardState struct {
	Op            Op                   `json:"op"`
	Board         map[string]PieceView `json:"board"`
	CurrentPlayer string               `json:"current_player"`
}

type JoinGameSuccess struct {
	Op      Op     `json:"op"`
	Color   string `json:"color"`
	Session string `json:"session"`
}

type OpponentJoined struct {
	Op      Op     `json:"op"`
	Session string `json:"session"`
}

type JoinGameFailure struct {
	Op Op `json:"op"`
}

// GameOutcome is the mover-relative result of a game-ending move.
type GameOutcome string

const (
	Won  GameOutcome = "Won"
	Drew GameOutcome = "Drew"
	Lost GameOutcome = "Lost"
)

// GameEndReason is why a game ended.
type GameEndReason string

const (
	ReasonCheckmate   GameEndReason = "Checkmate"
	ReasonStalemate   GameEndReason = "Stalemate"
	ReasonResignation GameEndReason = "Resignation"
)

type GameEnded struct {
	Op          Op            `json:"op"`
	GameOutcome GameOutcome   `json:"game_outcome"`
	Reason      GameEndReason `json:"reason"`
}

func NewGameEnded(outcome GameOutcome, reason GameEndReason) GameEnded {
	return GameEnded{Op: OpGameEnded, GameOutcome: outcome, Reason: reason}
}

type GameStatus struct {
	Op          Op   `json:"op"`
	GameStarted bool `json:"game_started"`
}

func NewGameStatus(started bool) GameStatus {
	return GameStatus{Op: OpGameStatus, GameStarted: started}
}
