package game

import (
	"fmt"
	"time"

	"github.com/quizduel/quizduel-backend/internal"
)

// AnswerPoints computes the decaying time bonus for one answer. Elapsed
// time is truncated to whole seconds before it is subtracted from the
// window, so anything under a second scores full points and anything at or
// past the window clamps to zero.
func AnswerPoints(elapsed time.Duration) int {
	seconds := int(elapsed.Seconds())
	points := (internal.AnswerWindowSeconds - seconds) * internal.PointsPerSecond
	if points < 0 {
		return 0
	}
	return points
}

// SubmitAnswer scores one answer for one participant and returns the
// message for the submitting connection only: the next question with the
// running score, or end_quiz after the last one.
//
// The answered count always advances; score and correct count advance only
// when the choice is right AND it still earns points. A correct answer
// outside the window is worth nothing, including to the correct tally.
func (h *Hub) SubmitAnswer(client *internal.Client, data internal.SubmitAnswerData) ([]Envelope, error) {
	roomID, err := ParseRoomPath(data.URL.Pathname)
	if err != nil {
		return nil, err
	}
	room, err := h.registry.Get(roomID)
	if err != nil {
		return nil, err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	progress, ok := room.Progress[client.Username]
	if !ok {
		return nil, fmt.Errorf("%s in room %d: %w", client.Username, roomID, internal.ErrTimingNotStarted)
	}
	if data.QuestionID < 0 || data.QuestionID >= len(room.Questions) {
		return nil, fmt.Errorf("question %d of %d: %w",
			data.QuestionID, len(room.Questions), internal.ErrQuestionOutOfRange)
	}

	question := room.Questions[data.QuestionID]
	now := time.Now()
	points := AnswerPoints(now.Sub(progress.LastAnswerAt))

	progress.Answered++
	if data.AnswerID == question.Correct && points > 0 {
		progress.Score += points
		progress.Correct++
	}
	progress.LastAnswerAt = now

	h.log.Infof("[SubmitAnswer] %s room %d q%d: answered=%d correct=%d score=%d",
		client.Username, roomID, data.QuestionID, progress.Answered, progress.Correct, progress.Score)

	next := data.QuestionID + 1
	if next == len(room.Questions) {
		return []Envelope{
			envelope(client, "end_quiz", internal.EndQuizData{RoomID: roomID}),
		}, nil
	}

	nextQ := room.Questions[next]
	return []Envelope{
		envelope(client, "submit_question", internal.SubmitQuestionData{
			QuestionID: next,
			Question:   nextQ.Text,
			A0:         nextQ.Answers[0],
			A1:         nextQ.Answers[1],
			A2:         nextQ.Answers[2],
			A3:         nextQ.Answers[3],
			Score:      progress.Score,
		}),
	}, nil
}
