package game

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/quizduel/quizduel-backend/internal"
)

// mockStore is an in-memory Store for handler tests. It counts rating
// updates so settlement idempotency is observable.
type mockStore struct {
	mu        sync.Mutex
	questions map[int][]internal.Question
	users     map[string]*internal.User
	results   []internal.MatchResult

	ratingUpdates int
}

func newMockStore() *mockStore {
	return &mockStore{
		questions: make(map[int][]internal.Question),
		users:     make(map[string]*internal.User),
	}
}

func (m *mockStore) QuestionsByDeck(_ context.Context, deckID int) ([]internal.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.questions[deckID], nil
}

func (m *mockStore) UserByName(_ context.Context, name string) (*internal.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[name]
	if !ok {
		return nil, fmt.Errorf("user %q not found", name)
	}
	cp := *u
	return &cp, nil
}

func (m *mockStore) UpdateUserRating(_ context.Context, user *internal.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[user.Name]
	if !ok {
		return fmt.Errorf("user %q not found", user.Name)
	}
	*stored = *user
	m.ratingUpdates++
	return nil
}

func (m *mockStore) SaveResult(_ context.Context, res internal.MatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.results {
		if r.RoomID == res.RoomID {
			return fmt.Errorf("duplicate result for room %d", res.RoomID)
		}
	}
	m.results = append(m.results, res)
	return nil
}

func (m *mockStore) ResultExists(_ context.Context, roomID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.results {
		if r.RoomID == roomID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) addUser(u internal.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := u
	m.users[u.Name] = &cp
}

func (m *mockStore) addDeck(deckID int, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		m.questions[deckID] = append(m.questions[deckID], internal.Question{
			ID:      i + 1,
			Text:    fmt.Sprintf("question %d", i+1),
			Answers: [4]string{"a", "b", "c", "d"},
			Correct: i % 4,
			DeckID:  deckID,
		})
	}
}

func newTestHub(store Store) *Hub {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHub(store, log, 0)
}

func testClient(username string) *internal.Client {
	return &internal.Client{ID: "test-" + username, Username: username}
}
