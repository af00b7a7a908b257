package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizduel/quizduel-backend/internal"
)

// Ticket is an outstanding "random opponent" request for one deck. At most
// one ticket exists per deck; a second seeker consumes it instead of filing
// another.
type Ticket struct {
	ID        string
	Username  string
	Client    *internal.Client
	CreatedAt time.Time
}

// Queue pairs random-opponent seekers per deck. The single mutex makes the
// check-and-consume step atomic: two simultaneous seekers for one deck can
// never both file a ticket, nor both consume the same one.
type Queue struct {
	mu      sync.Mutex
	tickets map[int]*Ticket
}

func NewQueue() *Queue {
	return &Queue{tickets: make(map[int]*Ticket)}
}

// FileOrConsume either consumes the outstanding ticket for deckID and
// returns it, or files a new one for the caller. filed reports which
// happened. The returned ticket is exclusively owned by the caller.
func (q *Queue) FileOrConsume(deckID int, client *internal.Client, username string) (opponent *Ticket, filed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.tickets[deckID]; ok {
		delete(q.tickets, deckID)
		return t, false
	}

	q.tickets[deckID] = &Ticket{
		ID:        uuid.NewString(),
		Username:  username,
		Client:    client,
		CreatedAt: time.Now(),
	}
	return nil, true
}

// CancelFor drops any ticket filed by client, so a seeker that disconnects
// while waiting cannot be matched against a dead connection.
func (q *Queue) CancelFor(client *internal.Client) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	dropped := 0
	for deckID, t := range q.tickets {
		if t.Client == client {
			delete(q.tickets, deckID)
			dropped++
		}
	}
	return dropped
}

// WaitingOn reports whether a ticket is outstanding for deckID.
func (q *Queue) WaitingOn(deckID int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.tickets[deckID]
	return ok
}

// FindGame handles the find_game event. Random mode either parks the
// seeker on a ticket or matches them against the ticket holder; friend
// mode unconditionally creates an empty room for a challenge link.
func (h *Hub) FindGame(ctx context.Context, client *internal.Client, data internal.FindGameData) ([]Envelope, error) {
	questions, err := h.store.QuestionsByDeck(ctx, data.DeckID)
	if err != nil {
		return nil, err
	}

	if !data.Random {
		room, err := h.registry.Create(data.DeckID, questions)
		if err != nil {
			return nil, err
		}
		h.log.Infof("[FindGame] created friend room %d for deck %d", room.ID, data.DeckID)
		return []Envelope{
			envelope(client, "got_room", internal.GotRoomData{RoomID: room.ID}),
		}, nil
	}

	opponent, filed := h.queue.FileOrConsume(data.DeckID, client, data.Username)
	if filed {
		h.log.Infof("[FindGame] %s waiting for an opponent on deck %d", data.Username, data.DeckID)
		return []Envelope{
			envelope(client, "waiting", nil),
		}, nil
	}

	room, err := h.registry.Create(data.DeckID, questions)
	if err != nil {
		return nil, err
	}

	// Stored seeker first, then the seeker that completed the match.
	room.Mu.Lock()
	room.Participants = append(room.Participants, opponent.Username, data.Username)
	room.Clients[opponent.Username] = opponent.Client
	room.Clients[data.Username] = client
	room.Mu.Unlock()

	h.log.Infof("[FindGame] matched %s vs %s in room %d (deck %d)",
		opponent.Username, data.Username, room.ID, data.DeckID)

	found := internal.FoundRoomData{RoomID: room.ID}
	return []Envelope{
		envelope(opponent.Client, "found_room", found),
		envelope(client, "found_room", found),
	}, nil
}
