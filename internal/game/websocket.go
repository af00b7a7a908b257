package game

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/quizduel/quizduel-backend/internal"
	"github.com/quizduel/quizduel-backend/internal/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection and starts the per-connection
// reader loop. The username travels as a query param; session mechanics
// belong to the web layer.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("[HandleWebSocket] upgrade failed: %v", err)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		username = "Anonymous"
	}

	client := &internal.Client{
		ID:       utils.GenerateID(8),
		Username: username,
		Conn:     conn,
	}

	go h.handleMessages(client)
}

// handleMessages reads events off one connection and routes them. A failed
// handler answers the offending connection only; it never takes down the
// process or touches other connections.
func (h *Hub) handleMessages(client *internal.Client) {
	defer func() {
		client.Conn.Close()
		if n := h.queue.CancelFor(client); n > 0 {
			h.log.Infof("[handleMessages] dropped %d tickets for %s on disconnect", n, client.Username)
		}
	}()

	h.log.Infof("[handleMessages] started for %s (%s)", client.Username, client.ID)

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			h.log.Infof("[handleMessages] read error for %s: %v", client.Username, err)
			break
		}

		var baseMsg internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &baseMsg); err != nil {
			h.log.Warnf("[handleMessages] bad envelope from %s: %v", client.Username, err)
			continue
		}

		out, err := h.dispatch(client, baseMsg)
		if err != nil {
			h.log.Warnf("[handleMessages] %s failed for %s: %v", baseMsg.Type, client.Username, err)
			h.sendError(client, err)
			continue
		}
		h.deliver(out)
	}
}

// dispatch routes one inbound event to its handler and collects the
// outbound envelopes.
func (h *Hub) dispatch(client *internal.Client, msg internal.Message[json.RawMessage]) ([]Envelope, error) {
	ctx := context.Background()

	switch msg.Type {
	case "find_game":
		var data internal.FindGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil, err
		}
		return h.FindGame(ctx, client, data)

	case "begin_timing":
		var data internal.BeginTimingData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil, err
		}
		roomID, err := ParseRoomPath(data.URL.Pathname)
		if err != nil {
			return nil, err
		}
		return nil, h.BeginTiming(roomID, client)

	case "submit_answer":
		var data internal.SubmitAnswerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil, err
		}
		return h.SubmitAnswer(client, data)

	case "join_room":
		var data internal.JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil, err
		}
		roomID, err := ParseRoomPath(data.URL.Pathname)
		if err != nil {
			return nil, err
		}
		return nil, h.JoinRoom(roomID, client)

	case "query_room_finished":
		var data internal.QueryRoomFinishedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil, err
		}
		return h.QueryRoomFinished(client, data)

	default:
		h.log.Warnf("[dispatch] unknown event %q from %s", msg.Type, client.Username)
		return nil, nil
	}
}

// deliver writes the collected envelopes, each under the target client's
// write mutex. A dead target is logged and skipped; the remaining
// envelopes still go out.
func (h *Hub) deliver(envelopes []Envelope) {
	for _, env := range envelopes {
		if env.To == nil || env.To.Conn == nil {
			continue
		}
		if err := env.To.SafeWriteJSON(env.Msg); err != nil {
			h.log.Warnf("[deliver] write to %s failed: %v", env.To.Username, err)
		}
	}
}

func (h *Hub) sendError(client *internal.Client, err error) {
	msg := internal.Message[internal.ErrorData]{
		Type: "error",
		Data: internal.ErrorData{Message: publicError(err)},
	}
	if client.Conn == nil {
		return
	}
	if werr := client.SafeWriteJSON(msg); werr != nil {
		h.log.Warnf("[sendError] write to %s failed: %v", client.Username, werr)
	}
}

// publicError maps internal failures onto the small taxonomy the client
// understands, hiding wrapped detail.
func publicError(err error) string {
	switch {
	case errors.Is(err, internal.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, internal.ErrTimingNotStarted):
		return "begin timing before answering"
	case errors.Is(err, internal.ErrQuestionOutOfRange):
		return "question index out of range"
	case errors.Is(err, internal.ErrDeckEmpty):
		return "deck has no questions"
	case errors.Is(err, internal.ErrParticipantCount):
		return "match does not have two participants"
	default:
		return "internal error"
	}
}
