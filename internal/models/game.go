package models

import "time"

// Game is one complete quiz session. It owns its teams and questions.
type Game struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GameSummary is the list view of a game
type GameSummary struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	TeamCount     int       `json:"team_count"`
	QuestionCount int       `json:"question_count"`
}

// GameDetail is a game with its teams (id order) and questions (order_num order)
type GameDetail struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Teams     []Team     `json:"teams"`
	Questions []Question `json:"questions"`
}

// DefaultGameName is used when a game is created without a name
const DefaultGameName = "New Game"
