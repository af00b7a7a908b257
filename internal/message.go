package internal

// Message is the envelope for every event on the live channel, both
// directions. Type selects the handler; Data is handler-specific.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// PageURL mirrors the slice of window.location the client ships with
// events sent from the play page. The room id lives in the path
// ("/play/<roomID>"), which is easier to parse server-side.
type PageURL struct {
	Pathname string `json:"pathname"`
}

// FindGameData asks for a match on a deck: a random opponent when Random
// is set, otherwise a private room for a challenge link.
type FindGameData struct {
	DeckID   int    `json:"deckID"`
	Random   bool   `json:"random"`
	Username string `json:"username"`
}

type BeginTimingData struct {
	URL PageURL `json:"url"`
}

type SubmitAnswerData struct {
	URL        PageURL `json:"url"`
	QuestionID int     `json:"questionID"`
	AnswerID   int     `json:"answerID"`
}

type JoinRoomData struct {
	URL PageURL `json:"url"`
}

type QueryRoomFinishedData struct {
	RoomID int `json:"roomID"`
}

// Outbound payloads.

type FoundRoomData struct {
	RoomID int `json:"roomID"`
}

type GotRoomData struct {
	RoomID int `json:"roomID"`
}

type EndQuizData struct {
	RoomID int `json:"roomID"`
}

// SubmitQuestionData carries the next question to exactly one participant,
// along with their running score.
type SubmitQuestionData struct {
	QuestionID int    `json:"question_ID"`
	Question   string `json:"question"`
	A0         string `json:"a0"`
	A1         string `json:"a1"`
	A2         string `json:"a2"`
	A3         string `json:"a3"`
	Score      int    `json:"score"`
}

type ErrorData struct {
	Message string `json:"message"`
}
