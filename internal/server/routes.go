package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/quizduel/quizduel-backend/internal"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Apply CORS middleware
	r.Use(s.corsMiddleware)

	r.HandleFunc("/health", s.healthHandler)

	r.HandleFunc("/ws", s.hub.HandleWebSocket)

	r.HandleFunc("/decks", s.decksHandler).Methods(http.MethodGet)
	r.HandleFunc("/decks/{deckID:[0-9]+}", s.deckQuestionsHandler).Methods(http.MethodGet)

	r.HandleFunc("/play/{roomID:[0-9]+}", s.playHandler).Methods(http.MethodGet)
	r.HandleFunc("/results/{roomID:[0-9]+}", s.resultsHandler).Methods(http.MethodGet)

	return r
}

// CORS middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "false")

		// If it's a websocket upgrade, skip further CORS checks
		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.db.Health())
}

func (s *Server) decksHandler(w http.ResponseWriter, r *http.Request) {
	decks, err := s.db.Decks(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, decks)
}

func (s *Server) deckQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	deckID, _ := strconv.Atoi(mux.Vars(r)["deckID"])

	questions, err := s.db.QuestionsByDeck(r.Context(), deckID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, questions)
}

// playHandler returns the first question of a room; the play page renders
// it before the websocket takes over.
func (s *Server) playHandler(w http.ResponseWriter, r *http.Request) {
	roomID, _ := strconv.Atoi(mux.Vars(r)["roomID"])

	room, err := s.hub.Registry().Get(roomID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	room.Mu.RLock()
	first := room.Questions[0]
	room.Mu.RUnlock()

	s.writeJSON(w, http.StatusOK, internal.SubmitQuestionData{
		QuestionID: 0,
		Question:   first.Text,
		A0:         first.Answers[0],
		A1:         first.Answers[1],
		A2:         first.Answers[2],
		A3:         first.Answers[3],
		Score:      0,
	})
}

// resultsHandler renders the waiting view or the final standings. It is
// the settlement trigger: the first request after both participants finish
// writes ratings and the result row.
func (s *Server) resultsHandler(w http.ResponseWriter, r *http.Request) {
	roomID, _ := strconv.Atoi(mux.Vars(r)["roomID"])
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	view, err := s.hub.Results(r.Context(), roomID, username)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("error encoding response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, internal.ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, internal.ErrTimingNotStarted),
		errors.Is(err, internal.ErrParticipantCount):
		status = http.StatusPreconditionFailed
	case errors.Is(err, internal.ErrQuestionOutOfRange):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.log.Errorf("request failed: %v", err)
	}
	http.Error(w, err.Error(), status)
}
