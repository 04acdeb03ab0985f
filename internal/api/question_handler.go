package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/percentquiz/scoring-backend/internal/models"
	"github.com/percentquiz/scoring-backend/internal/services"
)

// QuestionHandler handles question management and answer submission
type QuestionHandler struct {
	questions services.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type createQuestionRequest struct {
	QuestionText  *string `json:"question_text"`
	CorrectAnswer *int    `json:"correct_answer"`
}

type submitAnswersRequest struct {
	Answers []models.AnswerInput `json:"answers"`
}

// CreateQuestion appends a question to the game named by :id
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	gameID, ok := pathID(c)
	if !ok {
		return
	}

	var req createQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, writeTimeout)
	defer cancel()

	question, err := h.questions.CreateQuestion(ctx, gameID, req.QuestionText, req.CorrectAnswer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion applies any subset of question_text and correct_answer
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.QuestionUpdate
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, writeTimeout)
	defer cancel()

	question, err := h.questions.UpdateQuestion(ctx, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question and its answers
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, writeTimeout)
	defer cancel()

	if err := h.questions.DeleteQuestion(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "Question deleted")
}

// SubmitAnswers scores every team's answer to the question named by :id
func (h *QuestionHandler) SubmitAnswers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req submitAnswersRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, writeTimeout)
	defer cancel()

	submission, err := h.questions.SubmitAnswers(ctx, id, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}
