package roster

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arnavshah/standup-api-go/internal/metrics"
	"github.com/arnavshah/standup-api-go/pkg/rotation"
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

// isDuplicate recognizes unique violations whether or not the driver translated them
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "UNIQUE constraint failed")
}

func (repo *RepoGorm) AddMember(name, team string) (m *Member, err error) {
	defer func(start time.Time) { metrics.ObserveRepoOp("add_member", start, err) }(time.Now())
	repo.logger.Debugw("AddMember()", "name", name, "team", team)

	name = strings.TrimSpace(name)
	team = strings.TrimSpace(team)
	if name == "" || team == "" {
		return nil, fmt.Errorf("%w: name and team are required", ErrInvalidMember)
	}

	member := Member{Name: name, Team: team}
	if err := repo.db.Create(&member).Error; err != nil {
		if isDuplicate(err) {
			repo.logger.Warnw("couldnt add member - already exists", "name", name)
			return nil, ErrMemberExists
		}
		repo.logger.Errorw("error adding member", "name", name, "error", err)
		return nil, err
	}

	return &member, nil
}

func (repo *RepoGorm) RemoveMember(name string) (err error) {
	defer func(start time.Time) { metrics.ObserveRepoOp("remove_member", start, err) }(time.Now())
	repo.logger.Debugw("RemoveMember()", "name", name)

	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member = ?", name).Delete(&Absence{}).Error; err != nil {
			return err
		}
		res := tx.Where("name = ?", name).Delete(&Member{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMemberNotFound
		}
		return nil
	})
}

func (repo *RepoGorm) ListMembers() ([]Member, error) {
	var members []Member
	if err := repo.db.Order("team asc").Order("name asc").Find(&members).Error; err != nil {
		repo.logger.Errorw("failed to list members", "err", err)
		return nil, err
	}
	return members, nil
}

// Roster groups the stored members by team
func (repo *RepoGorm) Roster() (rotation.Roster, error) {
	members, err := repo.ListMembers()
	if err != nil {
		return nil, err
	}

	r := make(rotation.Roster)
	for _, m := range members {
		r[m.Team] = append(r[m.Team], m.Name)
	}
	return r, nil
}

// MarkAbsent records an absence; marking the same absence twice is a no-op
func (repo *RepoGorm) MarkAbsent(member, date string) (err error) {
	defer func(start time.Time) { metrics.ObserveRepoOp("mark_absent", start, err) }(time.Now())
	repo.logger.Debugw("MarkAbsent()", "member", member, "date", date)

	if !ValidDate(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	return repo.db.Transaction(func(tx *gorm.DB) error {
		var m Member
		if err := tx.First(&m, "name = ?", member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "member"}, {Name: "date"}},
			DoNothing: true,
		}).Create(&Absence{Member: member, Date: date}).Error
	})
}

func (repo *RepoGorm) ClearAbsent(member, date string) error {
	repo.logger.Debugw("ClearAbsent()", "member", member, "date", date)

	if !ValidDate(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return repo.db.Where("member = ? AND date = ?", member, date).Delete(&Absence{}).Error
}

func (repo *RepoGorm) Absentees(date string) ([]string, error) {
	if !ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	var names []string
	if err := repo.db.Model(&Absence{}).Where("date = ?", date).Order("member asc").Pluck("member", &names).Error; err != nil {
		repo.logger.Errorw("failed to query absentees", "date", date, "err", err)
		return nil, err
	}
	return names, nil
}
