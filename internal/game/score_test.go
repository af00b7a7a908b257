package game

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizduel/quizduel-backend/internal"
)

func TestAnswerPoints(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"instant", 0, 1000},
		{"under a second truncates to zero", 900 * time.Millisecond, 1000},
		{"three seconds", 3 * time.Second, 700},
		{"just inside the window", 9*time.Second + 999*time.Millisecond, 100},
		{"window boundary", 10 * time.Second, 0},
		{"past the window clamps", 15 * time.Second, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AnswerPoints(tc.elapsed))
		})
	}
}

// playableRoom sets up a hub, a room with n questions (correct answer
// always index 0) and a participant that has begun timing.
func playableRoom(t *testing.T, n int) (*Hub, *internal.MatchRoom, *internal.Client) {
	t.Helper()

	store := newMockStore()
	hub := newTestHub(store)

	questions := deckOf(n)
	room, err := hub.registry.Create(1, questions)
	require.NoError(t, err)

	client := testClient("alice")
	require.NoError(t, hub.JoinRoom(room.ID, client))
	require.NoError(t, hub.BeginTiming(room.ID, client))

	return hub, room, client
}

func answerData(roomID, questionID, answerID int) internal.SubmitAnswerData {
	return internal.SubmitAnswerData{
		URL:        internal.PageURL{Pathname: pathFor(roomID)},
		QuestionID: questionID,
		AnswerID:   answerID,
	}
}

func pathFor(roomID int) string {
	return "/play/" + strconv.Itoa(roomID)
}

func TestSubmitAnswerFastCorrect(t *testing.T) {
	hub, room, client := playableRoom(t, 3)

	correct := room.Questions[0].Correct
	out, err := hub.SubmitAnswer(client, answerData(room.ID, 0, correct))
	require.NoError(t, err)

	progress := room.Progress[client.Username]
	assert.Equal(t, 1, progress.Answered)
	assert.Equal(t, 1, progress.Correct)
	assert.Equal(t, 1000, progress.Score)

	require.Len(t, out, 1)
	msg := out[0].Msg.(internal.Message[any])
	assert.Equal(t, "submit_question", msg.Type)

	data := msg.Data.(internal.SubmitQuestionData)
	assert.Equal(t, 1, data.QuestionID)
	assert.Equal(t, room.Questions[1].Text, data.Question)
	assert.Equal(t, 1000, data.Score)
}

func TestSubmitAnswerWrongChoice(t *testing.T) {
	hub, room, client := playableRoom(t, 3)

	wrong := room.Questions[0].Correct + 1
	_, err := hub.SubmitAnswer(client, answerData(room.ID, 0, wrong))
	require.NoError(t, err)

	progress := room.Progress[client.Username]
	assert.Equal(t, 1, progress.Answered, "answered always advances")
	assert.Equal(t, 0, progress.Correct)
	assert.Equal(t, 0, progress.Score)
}

func TestSubmitAnswerLateCorrectScoresNothing(t *testing.T) {
	hub, room, client := playableRoom(t, 3)

	room.Progress[client.Username].LastAnswerAt = time.Now().Add(-12 * time.Second)

	correct := room.Questions[0].Correct
	_, err := hub.SubmitAnswer(client, answerData(room.ID, 0, correct))
	require.NoError(t, err)

	progress := room.Progress[client.Username]
	assert.Equal(t, 1, progress.Answered)
	assert.Equal(t, 0, progress.Correct, "late answers do not count as correct")
	assert.Equal(t, 0, progress.Score)
}

func TestSubmitAnswerResetsClockPerQuestion(t *testing.T) {
	hub, room, client := playableRoom(t, 3)

	correct := room.Questions[0].Correct
	_, err := hub.SubmitAnswer(client, answerData(room.ID, 0, correct))
	require.NoError(t, err)

	// The next delta is measured from the previous answer, not from
	// begin_timing.
	progress := room.Progress[client.Username]
	assert.WithinDuration(t, time.Now(), progress.LastAnswerAt, time.Second)
}

func TestSubmitAnswerLastQuestionEndsQuiz(t *testing.T) {
	hub, room, client := playableRoom(t, 2)

	_, err := hub.SubmitAnswer(client, answerData(room.ID, 0, 0))
	require.NoError(t, err)

	out, err := hub.SubmitAnswer(client, answerData(room.ID, 1, 0))
	require.NoError(t, err)

	require.Len(t, out, 1)
	msg := out[0].Msg.(internal.Message[any])
	assert.Equal(t, "end_quiz", msg.Type)
	assert.Equal(t, internal.EndQuizData{RoomID: room.ID}, msg.Data)

	assert.Equal(t, 2, room.Progress[client.Username].Answered)
}

func TestSubmitAnswerUnknownRoom(t *testing.T) {
	hub, _, client := playableRoom(t, 2)

	_, err := hub.SubmitAnswer(client, answerData(99, 0, 0))
	assert.True(t, errors.Is(err, internal.ErrRoomNotFound))
}

func TestSubmitAnswerBeforeBeginTiming(t *testing.T) {
	hub, room, _ := playableRoom(t, 2)

	stranger := testClient("bob")
	require.NoError(t, hub.JoinRoom(room.ID, stranger))

	_, err := hub.SubmitAnswer(stranger, answerData(room.ID, 0, 0))
	assert.True(t, errors.Is(err, internal.ErrTimingNotStarted))
}

func TestSubmitAnswerOutOfRangeLeavesProgressUntouched(t *testing.T) {
	hub, room, client := playableRoom(t, 2)

	_, err := hub.SubmitAnswer(client, answerData(room.ID, 5, 0))
	assert.True(t, errors.Is(err, internal.ErrQuestionOutOfRange))

	progress := room.Progress[client.Username]
	assert.Equal(t, 0, progress.Answered, "no partial increments on failure")
	assert.Equal(t, 0, progress.Score)
}
