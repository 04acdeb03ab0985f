package models

// Question is one percentage-guessing prompt with a fixed correct value
type Question struct {
	ID            int64  `json:"id" db:"id"`
	GameID        int64  `json:"-" db:"game_id"`
	QuestionText  string `json:"question_text" db:"question_text"`
	CorrectAnswer int    `json:"correct_answer" db:"correct_answer"`
	OrderNum      int    `json:"order_num" db:"order_num"`
	IsAnswered    bool   `json:"is_answered" db:"is_answered"`
}

// QuestionUpdate carries a partial question update
type QuestionUpdate struct {
	QuestionText  *string `json:"question_text"`
	CorrectAnswer *int    `json:"correct_answer"`
}

// DefaultCorrectAnswer is used when a question is created without one
const DefaultCorrectAnswer = 50
