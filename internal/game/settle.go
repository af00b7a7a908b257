package game

import (
	"context"
	"fmt"

	"github.com/quizduel/quizduel-backend/internal"
)

// ResultsView is what the results page renders: a waiting view carrying
// only the requester's score, or the final standings once both
// participants have finished.
type ResultsView struct {
	RoomID   int  `json:"roomID"`
	Finished bool `json:"finished"`

	Score      int `json:"score"`
	OppScore   int `json:"opp_score,omitempty"`
	Correct    int `json:"correct,omitempty"`
	OppCorrect int `json:"opp_correct,omitempty"`
	Total      int `json:"total"`

	Win  bool `json:"win"`
	Draw bool `json:"draw"`
	Elo  int  `json:"elo,omitempty"`
}

// QueryRoomFinished answers the results page's poll: a refresh event to
// the requesting connection once the room is finished, nothing otherwise.
func (h *Hub) QueryRoomFinished(client *internal.Client, data internal.QueryRoomFinishedData) ([]Envelope, error) {
	room, err := h.registry.Get(data.RoomID)
	if err != nil {
		return nil, err
	}

	room.Mu.RLock()
	finished := room.Finished()
	room.Mu.RUnlock()

	if !finished {
		return nil, nil
	}
	return []Envelope{envelope(client, "refresh", nil)}, nil
}

// Results builds the results view for one participant, running settlement
// the first time it is called on a finished room. Settlement is idempotent:
// the in-room latch and the results-row existence check together guarantee
// ratings move and the result row is written exactly once per room.
func (h *Hub) Results(ctx context.Context, roomID int, username string) (*ResultsView, error) {
	room, err := h.registry.Get(roomID)
	if err != nil {
		return nil, err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	view := &ResultsView{
		RoomID: roomID,
		Score:  room.ScoreOf(username),
		Total:  len(room.Questions),
	}

	if !room.Finished() {
		return view, nil
	}

	if len(room.Participants) != internal.MatchSize {
		return nil, fmt.Errorf("room %d has %d participants: %w",
			roomID, len(room.Participants), internal.ErrParticipantCount)
	}

	progress, ok := room.Progress[username]
	if !ok {
		return nil, fmt.Errorf("%s in room %d: %w", username, roomID, internal.ErrTimingNotStarted)
	}
	opponent := room.Opponent(username)

	if !room.Settled {
		recorded, err := h.store.ResultExists(ctx, roomID)
		if err != nil {
			return nil, err
		}
		if !recorded {
			if err := h.settle(ctx, room); err != nil {
				return nil, err
			}
		}
		room.Settled = true
	}

	view.Finished = true
	view.Correct = progress.Correct
	view.OppScore = opponent.Score
	view.OppCorrect = opponent.Correct
	view.Win = progress.Score == max(progress.Score, opponent.Score)
	view.Draw = view.Win && progress.Score == min(progress.Score, opponent.Score)

	if user, err := h.store.UserByName(ctx, username); err == nil {
		view.Elo = user.Elo
	}

	return view, nil
}

// settle updates both participants' ratings and writes the one result row.
// Caller holds the room lock and has verified the participant count.
//
// The rating is a rolling weighted average: the opponent's pre-match
// rating, shifted by RatingSwing for a decisive result, is folded into the
// player's history. Ties shift nobody.
func (h *Hub) settle(ctx context.Context, room *internal.MatchRoom) error {
	users := make([]*internal.User, internal.MatchSize)
	scores := make([]int, internal.MatchSize)
	oldElo := make([]int, internal.MatchSize)

	for i, name := range room.Participants {
		user, err := h.store.UserByName(ctx, name)
		if err != nil {
			return fmt.Errorf("settle room %d: %w", room.ID, err)
		}
		users[i] = user
		oldElo[i] = user.Elo
		scores[i] = room.ScoreOf(name)
	}

	best := max(scores[0], scores[1])
	worst := min(scores[0], scores[1])

	for i, user := range users {
		swing := 0
		switch {
		case scores[i] == best && scores[i] != worst:
			swing = internal.RatingSwing
			user.WinCount++
		case scores[i] == worst && scores[i] != best:
			swing = -internal.RatingSwing
		}

		user.Elo = (user.Elo*user.MatchCount + oldElo[1-i] + swing) / (user.MatchCount + 1)
		user.MatchCount++

		if err := h.store.UpdateUserRating(ctx, user); err != nil {
			return fmt.Errorf("settle room %d: %w", room.ID, err)
		}
	}

	res := internal.MatchResult{
		RoomID: room.ID,
		User1:  users[0].ID,
		User2:  users[1].ID,
		Score1: scores[0],
		Score2: scores[1],
	}
	if err := h.store.SaveResult(ctx, res); err != nil {
		return fmt.Errorf("settle room %d: %w", room.ID, err)
	}

	h.log.Infof("[settle] room %d recorded: %s=%d %s=%d",
		room.ID, room.Participants[0], scores[0], room.Participants[1], scores[1])
	return nil
}
