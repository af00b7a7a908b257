package internal

// Methods (MatchRoom struct). None of these lock; callers hold Mu.

// HasParticipant reports whether name has already joined the room.
func (r *MatchRoom) HasParticipant(name string) bool {
	for _, p := range r.Participants {
		if p == name {
			return true
		}
	}
	return false
}

// Finished reports whether the match is complete: exactly two participants
// have begun timing and both have answered every question. Any other
// participant count means the room is still open.
func (r *MatchRoom) Finished() bool {
	if len(r.Progress) != MatchSize {
		return false
	}
	for _, p := range r.Progress {
		if p.Answered != len(r.Questions) {
			return false
		}
	}
	return true
}

// Opponent returns the progress entry belonging to the participant other
// than name, or nil if there is none.
func (r *MatchRoom) Opponent(name string) *Progress {
	for other, p := range r.Progress {
		if other != name {
			return p
		}
	}
	return nil
}

// ScoreOf returns the running score for name, or zero if the participant
// has not begun timing yet.
func (r *MatchRoom) ScoreOf(name string) int {
	if p, ok := r.Progress[name]; ok {
		return p.Score
	}
	return 0
}
