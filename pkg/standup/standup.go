package standup

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrPersonRequired = errors.New("PERSON_REQUIRED")
	ErrTeamRequired   = errors.New("TEAM_REQUIRED")
	ErrInvalidDate    = errors.New("INVALID_DATE")
)

const (
	DateLayout     = "2006-01-02"
	UnassignedTeam = "Unassigned"
)

// Entry is one person's standup notes for one day
type Entry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Person      string    `gorm:"uniqueIndex:idx_person_date;type:varchar(128);not null" json:"person"`
	Team        string    `gorm:"type:varchar(64);not null" json:"team"`
	StandupDate string    `gorm:"column:standup_date;uniqueIndex:idx_person_date;type:varchar(10);not null" json:"standup_date"`
	Yesterday   *string   `json:"yesterday"`
	Today       *string   `json:"today"`
	Blockers    *string   `json:"blockers"`
	Wildcard    *string   `json:"wildcard"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Entry) TableName() string { return "standup_entries" }

// EntryInput is the payload of an upsert. Blank text fields are stored as NULL.
type EntryInput struct {
	Person      string
	Team        string
	StandupDate string
	Yesterday   string
	Today       string
	Blockers    string
	Wildcard    string
}

type Repo interface {
	Upsert(in EntryInput) (*Entry, error)
	ListForDate(date string) ([]Entry, error)
}

// LocalISODate formats t as YYYY-MM-DD in its own location
func LocalISODate(t time.Time) string {
	return t.Format(DateLayout)
}

func emptyToNull(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// teamIndex returns the position of team in order, or len(order) for unknown teams
func teamIndex(order []string, team string) int {
	for i, t := range order {
		if t == team {
			return i
		}
	}
	return len(order)
}

// SortByTeam orders entries by team position in order, then by person ignoring case
func SortByTeam(entries []Entry, order []string) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := teamIndex(order, entries[i].Team), teamIndex(order, entries[j].Team)
		if ti != tj {
			return ti < tj
		}
		return strings.ToLower(entries[i].Person) < strings.ToLower(entries[j].Person)
	})
}

// TeamGroup is the entries of one team
type TeamGroup struct {
	Team    string  `json:"team"`
	Entries []Entry `json:"entries"`
}

// GroupByTeam sorts entries and groups them in team order. Entries whose team
// is not in order are collected last under UnassignedTeam.
func GroupByTeam(entries []Entry, order []string) []TeamGroup {
	sorted := append([]Entry(nil), entries...)
	SortByTeam(sorted, order)

	var groups []TeamGroup
	for _, e := range sorted {
		key := e.Team
		if teamIndex(order, key) == len(order) {
			key = UnassignedTeam
		}
		if len(groups) == 0 || groups[len(groups)-1].Team != key {
			groups = append(groups, TeamGroup{Team: key})
		}
		groups[len(groups)-1].Entries = append(groups[len(groups)-1].Entries, e)
	}
	return groups
}
