package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/quizduel/quizduel-backend/internal/database"
	"github.com/quizduel/quizduel-backend/internal/game"
)

type Server struct {
	port int

	db  database.Service
	hub *game.Hub
	log *logrus.Logger
}

// New builds the HTTP server around an already-wired store and hub.
func New(db database.Service, hub *game.Hub, log *logrus.Logger) *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	s := &Server{
		port: port,
		db:   db,
		hub:  hub,
		log:  log,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
