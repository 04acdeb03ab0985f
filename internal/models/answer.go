package models

// TeamAnswer is one team's recorded guess for one question.
// Difference is stored alongside the answer so history reads need no join.
type TeamAnswer struct {
	ID         int64 `json:"id" db:"id"`
	TeamID     int64 `json:"team_id" db:"team_id"`
	QuestionID int64 `json:"question_id" db:"question_id"`
	Answer     int   `json:"answer" db:"answer"`
	Difference int   `json:"difference" db:"difference"`
}

// AnswerInput is one (team, answer) pair of a submission
type AnswerInput struct {
	TeamID int64 `json:"team_id"`
	Answer int   `json:"answer"`
}

// SubmissionResult is the per-team outcome of a submission
type SubmissionResult struct {
	TeamID        int64  `json:"team_id"`
	TeamName      string `json:"team_name"`
	Answer        int    `json:"answer"`
	CorrectAnswer int    `json:"correct_answer"`
	Difference    int    `json:"difference"`
	NewPoints     int    `json:"new_points"`
}

// Submission is the response to a submit call, results in submission order
type Submission struct {
	QuestionID    int64              `json:"question_id"`
	CorrectAnswer int                `json:"correct_answer"`
	Results       []SubmissionResult `json:"results"`
}
