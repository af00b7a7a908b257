package database

// schema mirrors the tables the web layer owns. Kept here so a fresh
// database (and the integration tests) can bootstrap without external
// migration tooling.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         SERIAL PRIMARY KEY,
	email      VARCHAR(100) UNIQUE,
	password   VARCHAR(100),
	name       VARCHAR(1000) NOT NULL,
	friendid   VARCHAR(10) DEFAULT '',
	elo        INTEGER NOT NULL DEFAULT 1000,
	wincount   INTEGER NOT NULL DEFAULT 0,
	matchcount INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS decks (
	id            SERIAL PRIMARY KEY,
	name          VARCHAR(64) NOT NULL,
	creator       VARCHAR(1000) NOT NULL DEFAULT '',
	uid           INTEGER NOT NULL DEFAULT 0,
	creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS questions (
	id      SERIAL PRIMARY KEY,
	question TEXT NOT NULL,
	answer1 TEXT NOT NULL,
	answer2 TEXT NOT NULL,
	answer3 TEXT NOT NULL,
	answer4 TEXT NOT NULL,
	correct INTEGER NOT NULL,
	deck_id INTEGER NOT NULL REFERENCES decks(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS results (
	id     SERIAL PRIMARY KEY,
	roomid INTEGER NOT NULL UNIQUE,
	user1  INTEGER NOT NULL REFERENCES users(id),
	user2  INTEGER NOT NULL REFERENCES users(id),
	score1 INTEGER NOT NULL,
	score2 INTEGER NOT NULL
);
`
