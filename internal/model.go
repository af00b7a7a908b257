package internal

import (
	"sync"
	"time"
)

const (
	// MaxQuestionsPerRoom caps the number of questions drawn from a deck
	// for a single match.
	MaxQuestionsPerRoom = 5

	// AnswerWindowSeconds is the grace window for the time bonus. Answers
	// arriving after it score zero regardless of correctness.
	AnswerWindowSeconds = 10

	// PointsPerSecond is the score awarded per remaining second inside the
	// answer window.
	PointsPerSecond = 100

	// MatchSize is the number of participants a match settles with.
	MatchSize = 2

	// RatingSwing is the amount added to or subtracted from the rolling
	// rating average for a decisive result.
	RatingSwing = 400
)

// Question is a single multiple-choice question as stored in a deck.
// Correct is the index (0-3) of the right answer.
type Question struct {
	ID      int       `json:"id"`
	Text    string    `json:"question"`
	Answers [4]string `json:"answers"`
	Correct int       `json:"correct"`
	DeckID  int       `json:"deck_id"`
}

// Deck is a named set of questions owned by a user.
type Deck struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Creator   string    `json:"creator"`
	OwnerID   int       `json:"uid"`
	CreatedAt time.Time `json:"creation_time"`
}

// User is the durable player record the settlement engine reads and
// updates. Elo is a rolling weighted average, not a classic Elo delta.
type User struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	FriendID   string `json:"friend_id"`
	Elo        int    `json:"elo"`
	WinCount   int    `json:"win_count"`
	MatchCount int    `json:"match_count"`
}

// MatchResult is the one-time persisted outcome of a finished room.
type MatchResult struct {
	RoomID int `json:"room_id"`
	User1  int `json:"user1"`
	User2  int `json:"user2"`
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

// Progress tracks one participant's run through the question list. An
// entry exists only once the participant has sent begin_timing.
type Progress struct {
	LastAnswerAt time.Time `json:"last_answer_at"`
	Answered     int       `json:"answered"`
	Correct      int       `json:"correct"`
	Score        int       `json:"score"`
}

// MatchRoom is one active or completed match between two participants over
// a fixed question set. Questions never change after creation; Participants
// grows in join order.
type MatchRoom struct {
	ID     int `json:"room_id"`
	DeckID int `json:"deck_id"`

	// Questions is a shuffled subset of the deck, fixed at creation.
	Questions []Question `json:"-"`

	// Participants holds display names in join order. Clients maps each
	// name to its live connection and doubles as the room's event group.
	Participants []string           `json:"participants"`
	Clients      map[string]*Client `json:"-"`

	// Progress entries are created lazily by begin_timing and mutated only
	// by the owning participant's answer events.
	Progress map[string]*Progress `json:"-"`

	CreatedAt time.Time `json:"created_at"`

	// Settled latches once ratings and the result row have been written.
	Settled bool `json:"-"`

	Mu sync.RWMutex `json:"-"`
}
