package roster

import (
	"errors"
	"time"

	"github.com/arnavshah/standup-api-go/pkg/rotation"
)

var (
	ErrMemberExists   = errors.New("MEMBER_EXISTS")
	ErrMemberNotFound = errors.New("MEMBER_NOT_FOUND")
	ErrInvalidMember  = errors.New("INVALID_MEMBER")
	ErrInvalidDate    = errors.New("INVALID_DATE")
)

const DateLayout = "2006-01-02"

// Member is a person on a team
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;type:varchar(128);not null" json:"name"`
	Team      string    `gorm:"index;type:varchar(64);not null" json:"team"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Member) TableName() string { return "team_members" }

// Absence marks a member as away for one standup date
type Absence struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Member    string    `gorm:"uniqueIndex:idx_member_date;type:varchar(128);not null" json:"member"`
	Date      string    `gorm:"uniqueIndex:idx_member_date;type:varchar(10);not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo interface {
	AddMember(name, team string) (*Member, error)
	RemoveMember(name string) error
	ListMembers() ([]Member, error)
	Roster() (rotation.Roster, error)
	MarkAbsent(member, date string) error
	ClearAbsent(member, date string) error
	Absentees(date string) ([]string, error)
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
