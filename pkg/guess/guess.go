package guess

import (
	"errors"
	"time"
)

var (
	ErrQuestionNotFound  = errors.New("QUESTION_NOT_FOUND")
	ErrNoActiveQuestion  = errors.New("NO_ACTIVE_QUESTION")
	ErrQuestionRequired  = errors.New("QUESTION_REQUIRED")
	ErrNameRequired      = errors.New("NAME_REQUIRED")
	ErrInvalidGuessValue = errors.New("INVALID_GUESS_VALUE")
)

// Question is a closest-guess prompt with its numeric answer
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"not null" json:"question"`
	Answer    float64   `gorm:"not null" json:"answer"`
	Active    bool      `gorm:"not null;default:false;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (Question) TableName() string { return "closest_guess_questions" }

// Guess is one player's answer. Each name holds a single guess.
type Guess struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;type:varchar(128);not null" json:"name"`
	Guess     float64   `gorm:"not null" json:"guess"`
	CreatedAt time.Time `json:"created_at"`
}

func (Guess) TableName() string { return "closest_guess" }

type Repo interface {
	AddQuestion(question string, answer float64) (*Question, error)
	ListQuestions() ([]Question, error)
	GetQuestion(id uint) (*Question, error)
	ActiveQuestion() (*Question, error)
	SetActive(id uint) error
	SetInactive(id uint) error
	SubmitGuess(name string, value float64) (*Guess, error)
	ListGuesses() ([]Guess, error)
	ClearGuesses() error
}
