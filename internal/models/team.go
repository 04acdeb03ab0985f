package models

// Team is a participant group with a running point total
type Team struct {
	ID     int64  `json:"id" db:"id"`
	GameID int64  `json:"-" db:"game_id"`
	Name   string `json:"name" db:"name"`
	Points int    `json:"points" db:"points"`
	Color  string `json:"color" db:"color"`
}

// TeamUpdate carries a partial team update. Nil fields are left alone.
type TeamUpdate struct {
	Name   *string `json:"name"`
	Color  *string `json:"color"`
	Points *int    `json:"points"`
}

// Standing is a team annotated with its 1-based rank
type Standing struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Color  string `json:"color"`
	Rank   int    `json:"rank"`
}
