package session_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-games/glinski/pkg/session"
)

func TestJoinAnyGameSeatsTwoPlayersOppositeColors(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry()

	tx1 := make(chan []byte, 4)
	tx2 := make(chan []byte, 4)

	p1 := uuid.New()
	p2 := uuid.New()

	id1, color1 := reg.JoinAnyGame(ctx, p1, tx1)
	id2, color2 := reg.JoinAnyGame(ctx, p2, tx2)

	assert.Equal(t, id1, id2, "second joiner should land in the first player's session")
	assert.NotEqual(t, color1, color2, "two occupants of the same game must hold opposite colors")
	assert.NotEqual(t, session.Both, color1)
	assert.NotEqual(t, session.Both, color2)
}

func TestCreateGameTwiceDestroysFirstAndNotifiesOccupant(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry()

	creator := uuid.New()
	opponent := uuid.New()

	txCreator := make(chan []byte, 4)
	txOpponent := make(chan []byte, 4)

	first, _ := reg.CreateGame(ctx, creator, true, txCreator)
	color, ok := reg.JoinGame(ctx, opponent, first, txOpponent)
	require.True(t, ok)
	assert.NotEqual(t, session.Both, color)

	second, _ := reg.CreateGame(ctx, creator, true, txCreator)
	assert.NotEqual(t, first, second)

	select {
	case msg := <-txOpponent:
		assert.Contains(t, string(msg), "GameEnded")
	default:
		t.Fatal("expected a resignation notice on the abandoned opponent's channel")
	}

	_, stillActive := reg.BoardForPlayer(opponent)
	assert.False(t, stillActive, "destroyed session should no longer be reachable by its other occupant")
}

func TestReconnectReturnsSameColorAndBoard(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry()

	player := uuid.New()
	tx1 := make(chan []byte, 4)
	tx2 := make(chan []byte, 4)

	_, color := reg.JoinAnyGame(ctx, player, tx1)

	_, gotColor, board, ok := reg.Reconnect(ctx, player, tx2)
	require.True(t, ok)
	assert.Equal(t, color, gotColor)
	require.NotNil(t, board)
	assert.Equal(t, 36, len(board.Occupied), "reconnect should return the live starting board")
}

func TestJoinGameFailsSilentlyWhenSessionFullOrMissing(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry()

	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	txa := make(chan []byte, 4)
	txb := make(chan []byte, 4)
	txc := make(chan []byte, 4)

	id, _ := reg.CreateGame(ctx, a, true, txa)
	_, ok := reg.JoinGame(ctx, b, id, txb)
	require.True(t, ok)

	_, ok = reg.JoinGame(ctx, c, id, txc)
	assert.False(t, ok, "a third player must not be able to join a full game")

	_, ok = reg.JoinGame(ctx, c, uuid.New(), txc)
	assert.False(t, ok, "joining a nonexistent session must fail silently")
}

func TestWithPlayerSessionSeesBothChannelsAfterJoin(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry()

	a := uuid.New()
	b := uuid.New()
	txa := make(chan []byte, 4)
	txb := make(chan []byte, 4)

	id, _ := reg.CreateGame(ctx, a, true, txa)
	_, ok := reg.JoinGame(ctx, b, id, txb)
	require.True(t, ok)

	var seen int
	found := reg.WithPlayerSession(a, func(g *session.Game) {
		seen = len(g.Channels)
	})
	require.True(t, found)
	assert.Equal(t, 2, seen)
}
