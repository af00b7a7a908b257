package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"

	"github.com/quizduel/quizduel-backend/internal"
)

// Service is the durable store behind the live match subsystem and the
// deck-browsing façade. Users, decks and questions are owned by the web
// layer; the core only reads them and writes ratings and results.
type Service interface {
	// Health returns connectivity and pool statistics.
	Health() map[string]string

	// EnsureSchema creates the tables if they do not exist yet.
	EnsureSchema(ctx context.Context) error

	Decks(ctx context.Context) ([]internal.Deck, error)
	QuestionsByDeck(ctx context.Context, deckID int) ([]internal.Question, error)

	UserByName(ctx context.Context, name string) (*internal.User, error)
	UpdateUserRating(ctx context.Context, user *internal.User) error

	SaveResult(ctx context.Context, res internal.MatchResult) error
	ResultExists(ctx context.Context, roomID int) (bool, error)

	Close()
}

type service struct {
	db *pgxpool.Pool
}

var (
	database   = os.Getenv("DB_DATABASE")
	password   = os.Getenv("DB_PASSWORD")
	username   = os.Getenv("DB_USERNAME")
	port       = os.Getenv("DB_PORT")
	host       = os.Getenv("DB_HOST")
	dbInstance *service
)

// New connects to Postgres using the DB_* environment. The pool is a
// process-wide singleton.
func New() Service {
	if dbInstance != nil {
		return dbInstance
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		username, password, host, port, database)
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("unable to create connection pool: %v", err)
	}

	dbInstance = &service{db: pool}
	return dbInstance
}

// NewWithPool wraps an existing pool, used by tests that bring their own
// database.
func NewWithPool(pool *pgxpool.Pool) Service {
	return &service{db: pool}
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	poolStats := s.db.Stat()
	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["total_conns"] = strconv.FormatInt(int64(poolStats.TotalConns()), 10)
	stats["idle_conns"] = strconv.FormatInt(int64(poolStats.IdleConns()), 10)
	stats["acquired_conns"] = strconv.FormatInt(int64(poolStats.AcquiredConns()), 10)

	return stats
}

func (s *service) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schema)
	return err
}

func (s *service) Decks(ctx context.Context) ([]internal.Deck, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, creator, uid, creation_time FROM decks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []internal.Deck
	for rows.Next() {
		var d internal.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.Creator, &d.OwnerID, &d.CreatedAt); err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (s *service) QuestionsByDeck(ctx context.Context, deckID int) ([]internal.Question, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, question, answer1, answer2, answer3, answer4, correct, deck_id
		 FROM questions WHERE deck_id = $1 ORDER BY id`, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []internal.Question
	for rows.Next() {
		var q internal.Question
		if err := rows.Scan(&q.ID, &q.Text,
			&q.Answers[0], &q.Answers[1], &q.Answers[2], &q.Answers[3],
			&q.Correct, &q.DeckID); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *service) UserByName(ctx context.Context, name string) (*internal.User, error) {
	var u internal.User
	err := s.db.QueryRow(ctx,
		`SELECT id, name, friendid, elo, wincount, matchcount FROM users WHERE name = $1`,
		name).Scan(&u.ID, &u.Name, &u.FriendID, &u.Elo, &u.WinCount, &u.MatchCount)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", name, err)
	}
	return &u, nil
}

func (s *service) UpdateUserRating(ctx context.Context, user *internal.User) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET elo = $1, wincount = $2, matchcount = $3 WHERE id = $4`,
		user.Elo, user.WinCount, user.MatchCount, user.ID)
	return err
}

func (s *service) SaveResult(ctx context.Context, res internal.MatchResult) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO results (roomid, user1, user2, score1, score2)
		 VALUES ($1, $2, $3, $4, $5)`,
		res.RoomID, res.User1, res.User2, res.Score1, res.Score2)
	return err
}

func (s *service) ResultExists(ctx context.Context, roomID int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM results WHERE roomid = $1)`, roomID).Scan(&exists)
	return exists, err
}

func (s *service) Close() {
	log.Printf("Disconnected from database: %s", database)
	s.db.Close()
}
