package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/quizduel/quizduel-backend/internal"
)

// Registry is the process-wide store of active match rooms. Room ids are
// assigned sequentially (id = slice index), so assignment and lookup go
// through the registry mutex; everything inside a room is guarded by the
// room's own mutex.
type Registry struct {
	mu    sync.RWMutex
	rooms []*internal.MatchRoom
}

func NewRegistry() *Registry {
	return &Registry{rooms: make([]*internal.MatchRoom, 0)}
}

// Create builds a room for deckID from the deck's full question set. Up to
// MaxQuestionsPerRoom questions are drawn without replacement and shuffled
// once; the resulting list never changes for the life of the room.
func (reg *Registry) Create(deckID int, questions []internal.Question) (*internal.MatchRoom, error) {
	if len(questions) == 0 {
		return nil, internal.ErrDeckEmpty
	}

	picked := make([]internal.Question, len(questions))
	copy(picked, questions)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if len(picked) > internal.MaxQuestionsPerRoom {
		picked = picked[:internal.MaxQuestionsPerRoom]
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	room := &internal.MatchRoom{
		ID:           len(reg.rooms),
		DeckID:       deckID,
		Questions:    picked,
		Participants: make([]string, 0, internal.MatchSize),
		Clients:      make(map[string]*internal.Client),
		Progress:     make(map[string]*internal.Progress),
		CreatedAt:    time.Now(),
	}
	reg.rooms = append(reg.rooms, room)

	return room, nil
}

// Get returns the room for id, or ErrRoomNotFound when the id was never
// assigned or the room has been evicted.
func (reg *Registry) Get(id int) (*internal.MatchRoom, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if id < 0 || id >= len(reg.rooms) || reg.rooms[id] == nil {
		return nil, internal.ErrRoomNotFound
	}
	return reg.rooms[id], nil
}

// Len returns the number of ids ever assigned, including evicted ones.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// Sweep evicts rooms older than ttl and returns how many were dropped.
// Evicted slots stay nil so later rooms keep their ids.
func (reg *Registry) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	evicted := 0
	for i, room := range reg.rooms {
		if room == nil {
			continue
		}
		if room.CreatedAt.Before(cutoff) {
			reg.rooms[i] = nil
			evicted++
		}
	}
	return evicted
}
