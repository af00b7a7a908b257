package game

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quizduel/quizduel-backend/internal"
)

// Store is the slice of the durable store the live match subsystem needs.
// The web layer owns everything else (decks, auth, profiles); the core only
// reads questions and user records and writes ratings and results.
type Store interface {
	QuestionsByDeck(ctx context.Context, deckID int) ([]internal.Question, error)
	UserByName(ctx context.Context, name string) (*internal.User, error)
	UpdateUserRating(ctx context.Context, user *internal.User) error
	SaveResult(ctx context.Context, res internal.MatchResult) error
	ResultExists(ctx context.Context, roomID int) (bool, error)
}

// Envelope pairs an outbound message with the connection it is addressed
// to. Handlers return envelopes instead of writing to sockets so their
// state transitions stay testable without a live connection.
type Envelope struct {
	To  *internal.Client
	Msg any
}

// Hub owns the shared mutable state of the live match subsystem: the room
// registry and the matchmaking queue. All event handlers are methods on it;
// nothing in this package is a package-level variable.
type Hub struct {
	registry *Registry
	queue    *Queue
	store    Store
	log      *logrus.Logger

	roomTTL time.Duration
}

// NewHub wires the live match subsystem. roomTTL bounds room retention;
// zero disables eviction.
func NewHub(store Store, log *logrus.Logger, roomTTL time.Duration) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		registry: NewRegistry(),
		queue:    NewQueue(),
		store:    store,
		log:      log,
		roomTTL:  roomTTL,
	}
}

// Registry exposes the room registry, mainly for the HTTP layer.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Run starts the room janitor and blocks until ctx is cancelled. Rooms are
// never evicted while a TTL of zero is configured.
func (h *Hub) Run(ctx context.Context) {
	if h.roomTTL <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := h.registry.Sweep(h.roomTTL); n > 0 {
				h.log.Infof("[Run] evicted %d expired rooms", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

func envelope(to *internal.Client, msgType string, data any) Envelope {
	return Envelope{To: to, Msg: internal.Message[any]{Type: msgType, Data: data}}
}
