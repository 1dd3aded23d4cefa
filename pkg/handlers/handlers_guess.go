package handlers

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/arnavshah/standup-api-go/pkg/guess"
	"github.com/arnavshah/standup-api-go/pkg/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) questionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		writeError(c, http.StatusBadRequest, APIError{Code: BadRequest.Code, Message: "invalid question id"})
		return 0, false
	}
	return uint(id), true
}

// GetActiveQuestion returns the open question without its answer
func (h *Handler) GetActiveQuestion(c *gin.Context) {
	q, err := h.Guesses.ActiveQuestion()
	if err != nil {
		h.fail(c, "get active question", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": q.ID, "question": q.Question})
}

// SubmitGuess records a guess while a question is open
func (h *Handler) SubmitGuess(c *gin.Context) {
	var input models.GuessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	if _, err := h.Guesses.ActiveQuestion(); err != nil {
		h.fail(c, "submit guess", err)
		return
	}

	g, err := h.Guesses.SubmitGuess(input.Name, *input.Guess)
	if err != nil {
		h.fail(c, "submit guess", err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handler) ListQuestions(c *gin.Context) {
	questions, err := h.Guesses.ListQuestions()
	if err != nil {
		h.fail(c, "list questions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func (h *Handler) AddQuestion(c *gin.Context) {
	var input models.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	q, err := h.Guesses.AddQuestion(input.Question, *input.Answer)
	if err != nil {
		h.fail(c, "add question", err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *Handler) ActivateQuestion(c *gin.Context) {
	id, ok := h.questionID(c)
	if !ok {
		return
	}
	if err := h.Guesses.SetActive(id); err != nil {
		h.fail(c, "activate question", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question activated"})
}

func (h *Handler) DeactivateQuestion(c *gin.Context) {
	id, ok := h.questionID(c)
	if !ok {
		return
	}
	if err := h.Guesses.SetInactive(id); err != nil {
		h.fail(c, "deactivate question", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deactivated"})
}

// SetActiveQuestion activates the question in the body; id 0 closes every question
func (h *Handler) SetActiveQuestion(c *gin.Context) {
	var req struct {
		ID uint `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.Guesses.SetActive(req.ID); err != nil {
		h.fail(c, "set active question", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_id": req.ID})
}

func (h *Handler) ListGuesses(c *gin.Context) {
	guesses, err := h.Guesses.ListGuesses()
	if err != nil {
		h.fail(c, "list guesses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guesses": guesses})
}

func (h *Handler) ClearGuesses(c *gin.Context) {
	if err := h.Guesses.ClearGuesses(); err != nil {
		h.fail(c, "clear guesses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guesses cleared"})
}

// GetResults scores the current guesses against a question's answer
func (h *Handler) GetResults(c *gin.Context) {
	id, ok := h.questionID(c)
	if !ok {
		return
	}

	q, err := h.Guesses.GetQuestion(id)
	if err != nil {
		h.fail(c, "get results", err)
		return
	}
	guesses, err := h.Guesses.ListGuesses()
	if err != nil {
		h.fail(c, "get results", err)
		return
	}
	// ListGuesses is newest first; ties go to the earliest guess
	slices.Reverse(guesses)

	resp := models.QuestionResults{
		Question:    *q,
		Leaderboard: guess.Leaderboard(q.Answer, guesses),
	}
	if r, ok := guess.Closest(q.Answer, guesses); ok {
		resp.Closest = &r
	}
	if r, ok := guess.Farthest(q.Answer, guesses); ok {
		resp.Farthest = &r
	}
	c.JSON(http.StatusOK, resp)
}
