package guess

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/arnavshah/standup-api-go/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RepoGorm struct {
	logger *zap.SugaredLogger
	db     *gorm.DB
}

func NewRepoGorm(logger *zap.SugaredLogger, db *gorm.DB) *RepoGorm {
	return &RepoGorm{
		logger: logger,
		db:     db,
	}
}

// AddQuestion stores a new, inactive question
func (repo *RepoGorm) AddQuestion(question string, answer float64) (*Question, error) {
	repo.logger.Debugw("AddQuestion()", "question", question)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrQuestionRequired
	}
	if math.IsNaN(answer) || math.IsInf(answer, 0) {
		return nil, ErrInvalidGuessValue
	}

	q := Question{Question: question, Answer: answer}
	if err := repo.db.Create(&q).Error; err != nil {
		repo.logger.Errorw("error adding question", "err", err)
		return nil, err
	}
	return &q, nil
}

// ListQuestions returns all questions, newest first
func (repo *RepoGorm) ListQuestions() ([]Question, error) {
	var questions []Question
	if err := repo.db.Order("created_at desc").Order("id desc").Find(&questions).Error; err != nil {
		repo.logger.Errorw("failed to list questions", "err", err)
		return nil, err
	}
	return questions, nil
}

func (repo *RepoGorm) GetQuestion(id uint) (*Question, error) {
	var q Question
	if err := repo.db.First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (repo *RepoGorm) ActiveQuestion() (*Question, error) {
	var q Question
	if err := repo.db.Where("active = ?", true).Order("id desc").First(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveQuestion
		}
		repo.logger.Errorw("failed to fetch active question", "err", err)
		return nil, err
	}
	return &q, nil
}

// SetActive makes id the only active question. id 0 deactivates every question.
func (repo *RepoGorm) SetActive(id uint) (err error) {
	defer func(start time.Time) { metrics.ObserveRepoOp("set_active_question", start, err) }(time.Now())
	repo.logger.Debugw("SetActive()", "id", id)

	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Question{}).Where("active = ?", true).Update("active", false).Error; err != nil {
			return err
		}
		if id == 0 {
			return nil
		}

		res := tx.Model(&Question{}).Where("id = ?", id).Update("active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrQuestionNotFound
		}
		return nil
	})
}

func (repo *RepoGorm) SetInactive(id uint) error {
	repo.logger.Debugw("SetInactive()", "id", id)

	res := repo.db.Model(&Question{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// SubmitGuess records a guess, replacing any earlier guess under the same name
func (repo *RepoGorm) SubmitGuess(name string, value float64) (g *Guess, err error) {
	defer func(start time.Time) { metrics.ObserveRepoOp("submit_guess", start, err) }(time.Now())

	name = strings.TrimSpace(name)
	repo.logger.Debugw("SubmitGuess()", "name", name)

	if name == "" {
		return nil, ErrNameRequired
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, ErrInvalidGuessValue
	}

	var stored Guess
	err = repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"guess", "created_at"}),
		}).Create(&Guess{Name: name, Guess: value}).Error; err != nil {
			return err
		}
		return tx.First(&stored, "name = ?", name).Error
	})
	if err != nil {
		repo.logger.Errorw("error submitting guess", "name", name, "err", err)
		return nil, err
	}
	return &stored, nil
}

// ListGuesses returns all guesses, newest first
func (repo *RepoGorm) ListGuesses() ([]Guess, error) {
	var guesses []Guess
	if err := repo.db.Order("created_at desc").Order("id desc").Find(&guesses).Error; err != nil {
		repo.logger.Errorw("failed to list guesses", "err", err)
		return nil, err
	}
	return guesses, nil
}

// ClearGuesses deletes every guess
func (repo *RepoGorm) ClearGuesses() error {
	repo.logger.Debugw("ClearGuesses()")
	return repo.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Guess{}).Error
}
