package game

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizduel/quizduel-backend/internal"
)

func rawMsg(t *testing.T, msgType string, data any) internal.Message[json.RawMessage] {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return internal.Message[json.RawMessage]{Type: msgType, Data: raw}
}

// Drives a full duel through the dispatch table the way two websocket
// clients would, asserting the wire-level event sequence.
func TestDispatchFullDuel(t *testing.T) {
	store := newMockStore()
	store.addDeck(1, 2)
	store.addUser(internal.User{ID: 1, Name: "alice", Elo: 1000})
	store.addUser(internal.User{ID: 2, Name: "bob", Elo: 1000})
	hub := newTestHub(store)

	alice := testClient("alice")
	bob := testClient("bob")

	out, err := hub.dispatch(alice, rawMsg(t, "find_game",
		map[string]any{"deckID": 1, "random": true, "username": "alice"}))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "waiting", msgType(out[0]))

	out, err = hub.dispatch(bob, rawMsg(t, "find_game",
		map[string]any{"deckID": 1, "random": true, "username": "bob"}))
	require.NoError(t, err)
	require.Len(t, out, 2)

	roomID := out[0].Msg.(internal.Message[any]).Data.(internal.FoundRoomData).RoomID
	path := map[string]any{"url": map[string]any{"pathname": fmt.Sprintf("/play/%d", roomID)}}

	for _, c := range []*internal.Client{alice, bob} {
		_, err = hub.dispatch(c, rawMsg(t, "begin_timing", path))
		require.NoError(t, err)
	}

	// Polling before anyone finishes yields nothing.
	out, err = hub.dispatch(alice, rawMsg(t, "query_room_finished", map[string]any{"roomID": roomID}))
	require.NoError(t, err)
	assert.Empty(t, out)

	room, err := hub.registry.Get(roomID)
	require.NoError(t, err)

	for _, c := range []*internal.Client{alice, bob} {
		for q := 0; q < len(room.Questions); q++ {
			out, err = hub.dispatch(c, rawMsg(t, "submit_answer", map[string]any{
				"url":        map[string]any{"pathname": fmt.Sprintf("/play/%d", roomID)},
				"questionID": q,
				"answerID":   room.Questions[q].Correct,
			}))
			require.NoError(t, err)
			require.Len(t, out, 1)
		}
		last := out[0].Msg.(internal.Message[any])
		assert.Equal(t, "end_quiz", last.Type)
	}

	out, err = hub.dispatch(bob, rawMsg(t, "query_room_finished", map[string]any{"roomID": roomID}))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "refresh", msgType(out[0]))
}

func TestDispatchJoinRoomViaChallengeLink(t *testing.T) {
	store := newMockStore()
	store.addDeck(1, 3)
	hub := newTestHub(store)

	creator := testClient("alice")
	out, err := hub.dispatch(creator, rawMsg(t, "find_game",
		map[string]any{"deckID": 1, "random": false, "username": "alice"}))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "got_room", msgType(out[0]))

	roomID := out[0].Msg.(internal.Message[any]).Data.(internal.GotRoomData).RoomID
	path := map[string]any{"url": map[string]any{"pathname": fmt.Sprintf("/play/%d", roomID)}}

	_, err = hub.dispatch(creator, rawMsg(t, "join_room", path))
	require.NoError(t, err)

	friend := testClient("bob")
	_, err = hub.dispatch(friend, rawMsg(t, "join_room", path))
	require.NoError(t, err)

	room, err := hub.registry.Get(roomID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, room.Participants)
}

func TestDispatchUnknownEventIgnored(t *testing.T) {
	hub := newTestHub(newMockStore())

	out, err := hub.dispatch(testClient("alice"), rawMsg(t, "no_such_event", map[string]any{}))
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestPublicErrorTaxonomy(t *testing.T) {
	cases := map[error]string{
		internal.ErrRoomNotFound:       "room not found",
		internal.ErrTimingNotStarted:   "begin timing before answering",
		internal.ErrQuestionOutOfRange: "question index out of range",
		internal.ErrDeckEmpty:          "deck has no questions",
		internal.ErrParticipantCount:   "match does not have two participants",
	}
	for err, want := range cases {
		assert.Equal(t, want, publicError(fmt.Errorf("context: %w", err)))
	}
	assert.Equal(t, "internal error", publicError(fmt.Errorf("database exploded")))
}
