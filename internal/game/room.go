package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quizduel/quizduel-backend/internal"
)

// ParseRoomPath extracts the room id from a play-page pathname such as
// "/play/7" or "/results/7". Doing this server-side keeps the client dumb.
func ParseRoomPath(pathname string) (int, error) {
	parts := strings.Split(pathname, "/")
	if len(parts) < 3 {
		return 0, fmt.Errorf("no room id in path %q: %w", pathname, internal.ErrRoomNotFound)
	}
	id, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("bad room id in path %q: %w", pathname, internal.ErrRoomNotFound)
	}
	return id, nil
}

// JoinRoom adds a participant to a room, used when accepting a challenge
// link. A name that is already in the room only gets its connection handle
// refreshed, so reopening the page does not create a phantom participant.
func (h *Hub) JoinRoom(roomID int, client *internal.Client) error {
	room, err := h.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if !room.HasParticipant(client.Username) {
		room.Participants = append(room.Participants, client.Username)
	}
	room.Clients[client.Username] = client

	h.log.Infof("[JoinRoom] %s joined room %d (%d participants)",
		client.Username, roomID, len(room.Participants))
	return nil
}

// BeginTiming starts the answer clock for one participant. The first
// question's delta is measured from this moment. A repeated begin_timing
// for the same name is ignored so a page reload cannot wipe a live score.
func (h *Hub) BeginTiming(roomID int, client *internal.Client) error {
	room, err := h.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if _, ok := room.Progress[client.Username]; ok {
		h.log.Warnf("[BeginTiming] %s already timing in room %d, ignoring", client.Username, roomID)
		return nil
	}

	room.Progress[client.Username] = &internal.Progress{
		LastAnswerAt: time.Now(),
	}

	h.log.Infof("[BeginTiming] %s started in room %d", client.Username, roomID)
	return nil
}
