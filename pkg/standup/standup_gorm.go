package standup

import (
	"fmt"
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

// Upsert creates or replaces the entry for (person, standup date)
func (repo *RepoGorm) Upsert(in EntryInput) (e *Entry, err error) {
	defer func(start time.Time) { metrics.ObserveRepoOp("upsert_standup", start, err) }(time.Now())

	person := strings.TrimSpace(in.Person)
	repo.logger.Debugw("Upsert()", "person", person, "date", in.StandupDate)

	if person == "" {
		return nil, ErrPersonRequired
	}
	if strings.TrimSpace(in.Team) == "" {
		return nil, ErrTeamRequired
	}
	if _, err := time.Parse(DateLayout, in.StandupDate); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, in.StandupDate)
	}

	entry := Entry{
		Person:      person,
		Team:        strings.TrimSpace(in.Team),
		StandupDate: in.StandupDate,
		Yesterday:   emptyToNull(in.Yesterday),
		Today:       emptyToNull(in.Today),
		Blockers:    emptyToNull(in.Blockers),
		Wildcard:    emptyToNull(in.Wildcard),
	}

	var stored Entry
	err = repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "person"}, {Name: "standup_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"team", "yesterday", "today", "blockers", "wildcard", "updated_at"}),
		}).Create(&entry).Error; err != nil {
			return err
		}

		// the conflict path does not report the existing row's id on every driver
		return tx.First(&stored, "person = ? AND standup_date = ?", person, in.StandupDate).Error
	})
	if err != nil {
		repo.logger.Errorw("failed to upsert standup entry", "person", person, "err", err)
		return nil, err
	}

	return &stored, nil
}

// ListForDate returns the entries for a date ordered by person
func (repo *RepoGorm) ListForDate(date string) ([]Entry, error) {
	repo.logger.Debugw("ListForDate()", "date", date)

	var entries []Entry
	if err := repo.db.Where("standup_date = ?", date).Order("person asc").Find(&entries).Error; err != nil {
		repo.logger.Errorw("failed to list standup entries", "date", date, "err", err)
		return nil, fmt.Errorf("list standups for %s: %w", date, err)
	}
	return entries, nil
}
