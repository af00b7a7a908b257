package internal

import "errors"

// Sentinel errors for the live match subsystem. Handlers report these to
// the offending connection only; they never take the process down.
var (
	// ErrRoomNotFound covers unknown or evicted room ids and unknown decks.
	ErrRoomNotFound = errors.New("room not found")

	// ErrTimingNotStarted is returned when an answer arrives for a
	// participant that never sent begin_timing.
	ErrTimingNotStarted = errors.New("timing not started for participant")

	// ErrQuestionOutOfRange is returned when a submitted question index is
	// beyond the room's question list.
	ErrQuestionOutOfRange = errors.New("question index out of range")

	// ErrParticipantCount is returned when settlement is attempted on a
	// room without exactly two participants.
	ErrParticipantCount = errors.New("settlement requires exactly two participants")

	// ErrDeckEmpty is returned when a room is requested for a deck with no
	// questions.
	ErrDeckEmpty = errors.New("deck has no questions")
)
