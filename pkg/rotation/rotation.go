// Package rotation computes the daily standup reading assignments: every
// present team member reads exactly one other present member's update, and
// nobody reads their own.
//
// The pairing is a cyclic shift of the sorted list of present members. The
// shift amount k is derived from the ISO week and weekday of the date and is
// always in [1, n-1], so the rotation has no fixed points. Identical inputs
// always produce identical output.
package rotation

import (
	"time"
)

const dateLayout = "2006-01-02"

// Pairing maps a reader to the member whose update they read
type Pairing map[string]string

// Meta describes the date-derived inputs of an assignment
type Meta struct {
	ISOWeek      int    `json:"iso_week"`
	Date         string `json:"date"`
	DayOfWeekISO int    `json:"day_of_week_iso"`
	Offset       int    `json:"offset"`
}

// Reading is one reader and their target. Target is empty when no pairing exists.
type Reading struct {
	Reader string `json:"reader"`
	Target string `json:"target,omitempty"`
}

// TeamView groups the readings of one team for display
type TeamView struct {
	Team    string    `json:"team"`
	Readers []Reading `json:"readers"`
}

// Assignment is the full result for one date
type Assignment struct {
	Meta    Meta       `json:"meta"`
	Present []string   `json:"present"`
	Pairs   Pairing    `json:"pairs"`
	Teams   []TeamView `json:"teams"`
}

// ISOWeek returns the ISO-8601 week number of the date
func ISOWeek(date time.Time) int {
	_, week := date.ISOWeek()
	return week
}

// DayIndex returns the weekday with Monday = 0 and Sunday = 6
func DayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// Offset returns the rotation offset for n present members. It is 0 when no
// derangement exists (n < 2) and within [1, n-1] otherwise.
func Offset(isoWeek, dayIndex, n int) int {
	if n < 2 {
		return 0
	}
	return 1 + (isoWeek*7+dayIndex)%(n-1)
}

// Assign computes the reading assignment for a date.
//
// An empty roster, an all-absent roster and a single present member are not
// errors: they produce an empty pairing.
func Assign(date time.Time, roster Roster, absent []string) (*Assignment, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	absentSet, err := roster.absentSet(absent)
	if err != nil {
		return nil, err
	}

	present := roster.present(absentSet)
	week := ISOWeek(date)
	day := DayIndex(date)
	n := len(present)
	k := Offset(week, day, n)

	pairs := make(Pairing, n)
	if n >= 2 {
		for i, reader := range present {
			pairs[reader] = present[(i+k)%n]
		}
	}

	return &Assignment{
		Meta: Meta{
			ISOWeek:      week,
			Date:         date.Format(dateLayout),
			DayOfWeekISO: day,
			Offset:       k,
		},
		Present: present,
		Pairs:   pairs,
		Teams:   teamViews(roster, absentSet, pairs),
	}, nil
}

// Pair returns only the reader -> target map for a date
func Pair(date time.Time, roster Roster, absent []string) (Pairing, error) {
	a, err := Assign(date, roster, absent)
	if err != nil {
		return nil, err
	}
	return a.Pairs, nil
}

// WeekDays returns Monday through Friday of the ISO week containing date.
// Each day is set to noon so the calendar day survives DST transitions.
func WeekDays(date time.Time) []time.Time {
	y, m, d := date.Date()
	monday := d - DayIndex(date)

	days := make([]time.Time, 0, 5)
	for i := 0; i < 5; i++ {
		days = append(days, time.Date(y, m, monday+i, 12, 0, 0, 0, date.Location()))
	}
	return days
}

// Week returns the assignments for Monday through Friday of the ISO week containing date
func Week(date time.Time, roster Roster, absent []string) ([]*Assignment, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}

	week := make([]*Assignment, 0, 5)
	for _, day := range WeekDays(date) {
		a, err := Assign(day, roster, absent)
		if err != nil {
			return nil, err
		}
		week = append(week, a)
	}
	return week, nil
}

func teamViews(roster Roster, absent map[string]bool, pairs Pairing) []TeamView {
	views := make([]TeamView, 0, len(roster))
	for _, team := range roster.Teams() {
		members := Roster{team: roster[team]}.present(absent)
		readers := make([]Reading, 0, len(members))
		for _, m := range members {
			readers = append(readers, Reading{Reader: m, Target: pairs[m]})
		}
		views = append(views, TeamView{Team: team, Readers: readers})
	}
	return views
}
